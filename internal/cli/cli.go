// Package cli implements the cabinetplan command-line interface.
//
// Commands build, price and budget-optimize kitchen layouts, generate
// variant sets with their artifacts, and inspect the run history. Every
// command accepts --verbose for debug logging and --config to point at a
// JSON or TOML configuration file. Read-only commands take --format to print
// JSON or YAML instead of styled tables.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/piwi3910/CabinetPlan/internal/buildinfo"
	"github.com/piwi3910/CabinetPlan/internal/model"
	"github.com/piwi3910/CabinetPlan/internal/project"
	"github.com/piwi3910/CabinetPlan/internal/store"
	"github.com/spf13/cobra"
)

const appName = "cabinetplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	presetPath string
	format     string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Cabinetplan designs and budgets kitchen layouts",
		Long:          `Cabinetplan builds kitchen cabinet layouts from fixed templates, prices them against door and worktop finishes, steers them toward a budget and writes plans, meshes, BOMs and cutlists for each variant.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", project.DefaultConfigPath(), "config file (.json or .toml)")
	flags.StringVar(&c.presetPath, "presets", project.DefaultPresetPath(), "preset store (.json or .yaml)")
	flags.StringVarP(&c.format, "format", "f", formatTable, "output format: table, json or yaml")

	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.priceCommand())
	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.presetCommand())
	root.AddCommand(c.backupCommand())

	return root
}

// loadConfig reads the configured file, falling back to defaults when it
// does not exist.
func (c *CLI) loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadConfig(c.configPath)
	if err != nil {
		return model.AppConfig{}, err
	}
	c.Logger.Debug("Loaded config", "path", c.configPath)
	return cfg, nil
}

// openHistory opens the run history, or returns nil when the config
// disables it.
func (c *CLI) openHistory(ctx context.Context, cfg model.AppConfig) (*store.History, error) {
	if cfg.HistoryPath == "" {
		return nil, nil
	}
	h, err := store.Open(ctx, cfg.HistoryPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Opened history", "path", cfg.HistoryPath)
	return h, nil
}

// requireHistory is openHistory for commands that cannot run without one.
func (c *CLI) requireHistory(ctx context.Context, cfg model.AppConfig) (*store.History, error) {
	h, err := c.openHistory(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, model.NewError(model.ErrCodeInvalidInput, "run history is disabled: set history_path in %s", c.configPath)
	}
	return h, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
