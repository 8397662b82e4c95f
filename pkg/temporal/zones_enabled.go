//go:build !notimezones

package temporal

import (
	"time"

	// Embedded zone database so zone names resolve without a system tzdata.
	_ "time/tzdata"
)

const zoneSupport = true

func loadLocation(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}
