// Package strtemporal converts columns of date and time strings into typed
// Arrow temporal columns using strftime-style patterns.
//
// A string column goes in and comes out as one of three column types:
//   - Date: days since 1970-01-01 (date32)
//   - Time: nanoseconds since midnight (time64[ns])
//   - Datetime: timestamps in ns, us or ms, optionally tagged with a zone
//
// Values that do not match the pattern become null. A whole-column failure
// only happens when no pattern was given and none could be inferred from the
// data, or when a timezone was requested in a build without zone support.
//
// # Quick Start
//
//	col := columnar.NewStringColumn(memory.NewGoAllocator(), "day",
//	    []string{"2021-01-01", "garbage"}, nil)
//	defer col.Release()
//
//	out, err := temporal.ToDate(col, temporal.Options{Format: "%Y-%m-%d"})
//	if err != nil {
//	    return err
//	}
//	defer out.Release()
//
// Leaving Format empty sniffs the pattern from the first non-null value.
// Setting NonExact extracts the first matching date embedded in surrounding
// text instead of requiring the whole value to match.
//
// # Key Packages
//
//	pkg/strptime      - Pattern compiler, parser, formatter and sniffing catalog
//	pkg/temporal      - Column conversion, caching, non-exact scan, zone resolution
//	pkg/columnar      - Arrow-backed string and temporal columns, column store
//	pkg/config        - YAML and environment driven conversion settings
//	pkg/errors        - Structured error handling
//	pkg/logger        - Structured logging with zap
//	pkg/metrics       - Prometheus counters for parse paths and cache use
//	pkg/observability - OpenTelemetry tracing
//	internal/pipeline - CSV ingestion and JSON, Arrow IPC and Parquet output
//
// # Command Line
//
// The strtemporal binary wraps the pipeline:
//
//	strtemporal sniff -i events.csv -c created_at
//	strtemporal convert -i events.csv.zst -c created_at -k datetime \
//	    --timezone Europe/Amsterdam -o parquet --out events.parquet
//
// Settings can also come from a YAML file (--config) or STRTEMPORAL_*
// environment variables.
//
// # Build Tags
//
// Building with -tags notimezones drops the embedded zone database. Any
// conversion that needs a named timezone then fails with ErrZoneSupport.
package strtemporal
