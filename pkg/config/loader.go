package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/strtemporal/pkg/errors"
)

// EnvPrefix prefixes environment overrides read by Load.
const EnvPrefix = "STRTEMPORAL"

// Load reads the YAML file at path, when non-empty, over the defaults and
// applies STRTEMPORAL_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file").
				WithDetail("path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so that AutomaticEnv can override keys
// absent from the file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("convert.kind", d.Convert.Kind)
	v.SetDefault("convert.format", d.Convert.Format)
	v.SetDefault("convert.unit", d.Convert.Unit)
	v.SetDefault("convert.timezone", d.Convert.Timezone)
	v.SetDefault("convert.ambiguous", d.Convert.Ambiguous)
	v.SetDefault("convert.tz_aware", d.Convert.TimezoneAware)
	v.SetDefault("convert.exact", d.Convert.Exact)
	v.SetDefault("convert.cache", d.Convert.Cache)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.encoding", d.Logging.Encoding)
	v.SetDefault("logging.development", d.Logging.Development)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.sampling_rate", d.Tracing.SamplingRate)
	v.SetDefault("tracing.pretty_print", d.Tracing.PrettyPrint)
}

// LoadYAML decodes the file at path over the defaults after substituting
// ${VAR_NAME} references from the environment.
func LoadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the operator
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read config file").
			WithDetail("path", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(substituteEnvVars(string(data))), cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse YAML").
			WithDetail("path", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
