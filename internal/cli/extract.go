package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/docs2openapi/internal/batch"
)

// ExtractConfig captures all inputs that influence the extract command after
// merging defaults, config file values, and CLI overrides.
type ExtractConfig struct {
	Input      string
	Out        string
	Format     string
	Workers    int
	Validate   bool
	Report     bool
	Verbose    bool
	ConfigPath string
}

func defaultExtractConfig() ExtractConfig {
	return ExtractConfig{Format: "openapi", Workers: 4}
}

var extractRunner = runExtract

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract endpoint schemas from a directory of HTML documentation",
		Long: "Extract parameter tables and method metadata from HTML documentation pages " +
			"and synthesize one schema document per endpoint page.",
		Example: strings.TrimSpace(`  docs2openapi extract --input ./docs --out ./specs
  docs2openapi --config config.yaml extract --format markdown --report`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveExtractConfig(cmd)
			if err != nil {
				return err
			}
			return extractRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "Directory of HTML files, or a single HTML file")
	flags.String("out", "", "Output directory for synthesized documents")
	flags.String("format", "", "Output format (openapi|yaml|json|markdown); defaults to openapi")
	flags.Int("workers", 0, "Concurrent workers; defaults to 4")
	flags.Bool("validate", false, "Validate each synthesized spec")
	flags.Bool("report", false, "Save a batch report next to the output")

	return cmd
}

func resolveExtractConfig(cmd *cobra.Command) (*ExtractConfig, error) {
	cfg := defaultExtractConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyExtractConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyExtractFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyExtractFlagOverrides(flags *pflag.FlagSet, cfg *ExtractConfig) error {
	if flags.Changed("input") {
		value, err := flags.GetString("input")
		if err != nil {
			return err
		}
		cfg.Input = strings.TrimSpace(value)
	}
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("format") {
		value, err := flags.GetString("format")
		if err != nil {
			return err
		}
		cfg.Format = strings.TrimSpace(value)
	}
	if flags.Changed("workers") {
		value, err := flags.GetInt("workers")
		if err != nil {
			return err
		}
		cfg.Workers = value
	}
	if flags.Changed("validate") {
		value, err := flags.GetBool("validate")
		if err != nil {
			return err
		}
		cfg.Validate = value
	}
	if flags.Changed("report") {
		value, err := flags.GetBool("report")
		if err != nil {
			return err
		}
		cfg.Report = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		cfg.Verbose = value
	}

	return nil
}

func (c *ExtractConfig) normalize() {
	c.Input = strings.TrimSpace(c.Input)
	c.Out = strings.TrimSpace(c.Out)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = "openapi"
	}
}

func (c *ExtractConfig) validate() error {
	if c.Input == "" {
		return newUsageError("extract: --input is required (set via flag or config file)")
	}
	switch c.Format {
	case "openapi", "yaml", "json", "markdown":
	default:
		return newUsageError(fmt.Sprintf("extract: unsupported --format %q (allowed: openapi, yaml, json, markdown)", c.Format))
	}
	if c.Workers < 0 {
		return newUsageError("extract: --workers must be positive")
	}
	if c.Report && c.Out == "" {
		return newUsageError("extract: --report requires --out")
	}
	return nil
}

func runExtract(ctx context.Context, cfg *ExtractConfig) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	proc := batch.New(batch.Options{
		Workers:  cfg.Workers,
		OutDir:   cfg.Out,
		Format:   cfg.Format,
		Validate: cfg.Validate,
		Logger:   logger,
	})

	info, err := os.Stat(cfg.Input)
	if err != nil {
		return newUsageError(fmt.Sprintf("extract: input %s: %v", cfg.Input, err))
	}

	var report *batch.Report
	if info.IsDir() {
		report, err = proc.ProcessDir(ctx, cfg.Input)
	} else {
		report, err = proc.ProcessFiles(ctx, []string{cfg.Input})
	}
	if err != nil {
		return err
	}

	if cfg.Report {
		if err := report.Save(cfg.Out); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}

	fmt.Fprintf(os.Stdout, "Processed %d files: %d succeeded, %d skipped, %d failed\n",
		report.Total, report.Succeeded, report.Skipped, report.Failed)
	for _, msg := range report.Errors {
		fmt.Fprintf(os.Stdout, "- %s\n", msg)
	}
	if report.Failed > 0 {
		return fmt.Errorf("extract: %d of %d files failed", report.Failed, report.Total)
	}
	return nil
}

func applyExtractConfigFromFile(cfg *ExtractConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		switch normalizeKey(key) {
		case "input":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Input = str
		case "out":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Out = str
		case "format":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Format = str
		case "workers":
			n, err := valueAsInt(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Workers = n
		case "validate":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Validate = val
		case "report":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Report = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Verbose = val
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value %q", val)
		}
		return n, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
