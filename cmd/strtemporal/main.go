// Command strtemporal converts text columns of CSV files into date, time and
// datetime columns.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/apache/arrow-go/v18/arrow/memory"
	gojson "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/strtemporal/internal/pipeline"
	"github.com/ajitpratap0/strtemporal/pkg/config"
	"github.com/ajitpratap0/strtemporal/pkg/logger"
	"github.com/ajitpratap0/strtemporal/pkg/observability"
	"github.com/ajitpratap0/strtemporal/pkg/strptime"
)

var version = "0.1.0"

// convertFlags are the command-line overrides of config.ConvertConfig.
type convertFlags struct {
	configFile string
	input      string
	columns    []string
	kind       string
	format     string
	unit       string
	timezone   string
	ambiguous  string
	tzAware    bool
	nonExact   bool
	noCache    bool
	output     string
	out        string
	cpuProfile string
	logLevel   string
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "strtemporal",
		Short: "Convert text columns into typed temporal columns",
		Long: `strtemporal parses date, time and datetime values out of CSV text columns.
Formats are strftime-style patterns; when none is given the format is inferred
from the first non-null value of each column.`,
		SilenceUsage: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("strtemporal v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newConvertCmd(), newSniffCmd(), newConfigCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func bindConvertFlags(cmd *cobra.Command, f *convertFlags) {
	cmd.Flags().StringVar(&f.configFile, "config", "", "Path to YAML configuration file")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Input CSV file (.gz, .zst and .lz4 are decompressed) (required)")
	cmd.Flags().StringSliceVarP(&f.columns, "column", "c", nil, "Column to convert; repeat for several (required)")
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "Target kind: date, time or datetime")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "strftime-style format; inferred when empty")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("column")
}

func newConvertCmd() *cobra.Command {
	f := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert columns and write the result",
		Long: `Convert one or more CSV columns and write them as JSON, Arrow IPC or Parquet.

Example:
  strtemporal convert -i events.csv.gz -c created_at -k datetime --timezone Europe/London --output parquet --out events.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, f)
		},
	}
	bindConvertFlags(cmd, f)
	cmd.Flags().StringVar(&f.unit, "unit", "", "Datetime unit: ns, us or ms")
	cmd.Flags().StringVar(&f.timezone, "timezone", "", "Zone attached to naive datetimes")
	cmd.Flags().StringVar(&f.ambiguous, "ambiguous", "", "Resolution of repeated wall times: earliest or latest")
	cmd.Flags().BoolVar(&f.tzAware, "tz-aware", false, "Parse UTC offsets from the text and tag output UTC")
	cmd.Flags().BoolVar(&f.nonExact, "non-exact", false, "Find the value anywhere inside each string")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "Disable memoization of duplicate strings")
	cmd.Flags().StringVarP(&f.output, "output", "o", "json", "Output format: json, arrow or parquet")
	cmd.Flags().StringVar(&f.out, "out", "", "Output path; stdout when empty")
	cmd.Flags().StringVar(&f.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	return cmd
}

func newSniffCmd() *cobra.Command {
	f := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "sniff",
		Short: "Print the format inferred for each column",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			kind, err := cfg.Convert.TemporalKind()
			if err != nil {
				return err
			}
			results, err := pipeline.Sniff(cmd.Context(), f.input, f.columns, kind, memory.DefaultAllocator)
			if err != nil {
				return err
			}
			enc := gojson.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
	bindConvertFlags(cmd, f)
	return cmd
}

func newConfigCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "Path to YAML configuration file")
	return cmd
}

// loadConfig loads the configuration file and applies explicitly set flags.
func loadConfig(cmd *cobra.Command, f *convertFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	set := func(name string) bool { return flags.Lookup(name) != nil && flags.Changed(name) }
	if set("kind") {
		cfg.Convert.Kind = f.kind
	}
	if set("format") {
		cfg.Convert.Format = f.format
	}
	if set("unit") {
		cfg.Convert.Unit = f.unit
	}
	if set("timezone") {
		cfg.Convert.Timezone = f.timezone
	}
	if set("ambiguous") {
		cfg.Convert.Ambiguous = f.ambiguous
	}
	if set("tz-aware") {
		cfg.Convert.TimezoneAware = f.tzAware
	}
	if set("non-exact") {
		cfg.Convert.Exact = !f.nonExact
	}
	if set("no-cache") {
		cfg.Convert.Cache = !f.noCache
	}
	if set("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Logging.LoggerConfig()); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, f *convertFlags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if f.cpuProfile != "" {
		pf, err := os.Create(f.cpuProfile)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile: %w", err)
		}
		defer pf.Close()
		if err := pprof.StartCPUProfile(pf); err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracing(observability.TracingConfig{
			ServiceName:    "strtemporal",
			ServiceVersion: version,
			SamplingRate:   cfg.Tracing.SamplingRate,
			Writer:         os.Stderr,
			PrettyPrint:    cfg.Tracing.PrettyPrint,
		})
		if err != nil {
			return err
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	kind, err := cfg.Convert.TemporalKind()
	if err != nil {
		return err
	}
	opts, err := cfg.Convert.ToOptions()
	if err != nil {
		return err
	}
	format, err := pipeline.ParseOutputFormat(f.output)
	if err != nil {
		return err
	}

	log := logger.Get().With(zap.String("component", "strtemporal-cli"))
	log.Info("starting conversion",
		zap.String("input", f.input),
		zap.Strings("columns", f.columns),
		zap.Stringer("kind", kind),
		zap.String("format", describeFormat(opts.Format)),
		zap.String("output", string(format)))

	mem := memory.DefaultAllocator
	res, err := pipeline.Run(ctx, pipeline.Job{
		Input:   f.input,
		Columns: f.columns,
		Kind:    kind,
		Options: opts,
	}, mem)
	if err != nil {
		return err
	}
	defer res.Release()

	w, err := pipeline.CreateOutput(f.out, format)
	if err != nil {
		return err
	}
	if err := pipeline.Write(w, format, res.Store, mem); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	log.Info("conversion written",
		zap.Int("rows", res.Store.Rows()),
		zap.Int("fast_path", res.Stats.FastPath),
		zap.Int("fallback", res.Stats.Fallback),
		zap.Int("cache_hits", res.Stats.CacheHits),
		zap.Int("nulls", res.Stats.Nulls),
		zap.Duration("duration", res.Duration))
	return nil
}

func describeFormat(pattern string) string {
	if pattern == "" {
		return "(inferred)"
	}
	if f, err := strptime.Compile(pattern); err == nil {
		if n, ok := f.FixedLen(); ok {
			return fmt.Sprintf("%s (fixed width %d)", pattern, n)
		}
	}
	return pattern
}
