package cmd

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/offlinefirst/clickcollect/internal/buildinfo"
	"github.com/offlinefirst/clickcollect/pkg/config"
	"github.com/offlinefirst/clickcollect/pkg/logging"
)

const skipInitAnnotation = "clickcollect/skip-init"

// AppContext exposes lazily initialised configuration and logging facilities.
type AppContext struct {
	Config    config.Config
	Logger    *slog.Logger
	SessionID string
}

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	app *AppContext
}

// NewRootCommand constructs the CLI tree. Running it without a subcommand
// starts a collection session.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	collect := &collectOptions{}

	root := &cobra.Command{
		Use:           "clickcollect",
		Short:         "Collect click coordinates paired with screenshots as training examples",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipInitAnnotation] == "true" {
				return nil
			}
			_, err := opts.ensureAppContext(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return collect.run(cmd, opts.app)
		},
	}
	collect.bindFlags(root)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to config file (default: ./config.yaml if present)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "", "Override log output format (json, console)")

	root.AddCommand(
		newCollectCommand(opts),
		newDoctorCommand(opts),
		newValidateCommand(opts),
		newVersionCommand(),
	)
	return root
}

func (opts *rootOptions) ensureAppContext(cmd *cobra.Command) (*AppContext, error) {
	if opts.app != nil {
		return opts.app, nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.logLevel != "" {
		lvl, err := config.NormalizeLogLevel(opts.logLevel)
		if err != nil {
			return nil, err
		}
		cfg.Logging.Level = lvl
	}
	if opts.logFormat != "" {
		format, err := config.NormalizeFormat(opts.logFormat)
		if err != nil {
			return nil, err
		}
		cfg.Logging.Format = format
	}

	base, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	logger, session := logging.WithSession(base)

	logger.Debug("configuration loaded", "source", cfg.Source, "output_dir", cfg.Paths.OutputDir, "screenshot_dir", cfg.Paths.ScreenshotDir, "monitor", cfg.Capture.MonitorID)

	opts.app = &AppContext{Config: cfg, Logger: logger, SessionID: session}
	return opts.app, nil
}

func versionString() string {
	return fmt.Sprintf("%s (go%s/%s)", buildinfo.Version(), runtimeVersion(), runtimeGOOS())
}

// runtimeVersion is extracted for testability.
var runtimeVersion = func() string { return runtime.Version() }

// runtimeGOOS is extracted for testability.
var runtimeGOOS = func() string { return runtime.GOOS }
