//go:build notimezones

package temporal

import "time"

const zoneSupport = false

func loadLocation(string) (*time.Location, error) {
	return nil, ErrZoneSupport
}
