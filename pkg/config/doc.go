// Package config provides configuration for strtemporal conversions.
//
// A Config has three sections:
//   - Convert: target kind, format, time unit, zone handling, cache and
//     exact matching
//   - Logging: zap level and encoding
//   - Tracing: stdout span export
//
// # Loading
//
// Load reads an optional YAML file through viper and applies environment
// overrides prefixed with STRTEMPORAL_, with dots in keys replaced by
// underscores:
//
//	STRTEMPORAL_CONVERT_TIMEZONE=Europe/London strtemporal convert ...
//
// LoadYAML reads a file with plain yaml.v3 decoding after ${VAR_NAME}
// substitution:
//
//	# strtemporal.yaml
//	convert:
//	  kind: datetime
//	  format: "%Y-%m-%d %H:%M:%S"
//	  timezone: ${TZ_NAME}
//
// Every loader starts from Default and validates the result.
package config
