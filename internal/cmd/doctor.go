package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/offlinefirst/clickcollect/pkg/events"
	"github.com/offlinefirst/clickcollect/pkg/screenshots"
)

var errEnvironmentNotReady = errors.New("capture environment not ready")

func newDoctorCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report displays, monitor resolution and permission state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.app == nil {
				return errors.New("application context unavailable")
			}
			return runDoctor(root.app, cmd.OutOrStdout())
		},
	}
}

func runDoctor(app *AppContext, stdout io.Writer) error {
	cfg := app.Config
	fmt.Fprintf(stdout, "Configuration: %s\n", cfg.Source)
	fmt.Fprintf(stdout, "  output_dir: %s\n", cfg.Paths.OutputDir)
	fmt.Fprintf(stdout, "  screenshot_dir: %s\n", cfg.Paths.ScreenshotDir)

	backend, err := newBackend()
	if err != nil {
		return fmt.Errorf("open screen capture backend: %w", err)
	}
	shots := screenshots.DetectEnvironment(backend, cfg.Capture.MonitorID)
	pointer := events.DetectEnvironment()

	fmt.Fprintf(stdout, "Displays (%d):\n", len(shots.Displays))
	for _, d := range shots.Displays {
		fmt.Fprintf(stdout, "  [%d] %dx%d at (%d,%d)\n", d.Index, d.Bounds.Dx(), d.Bounds.Dy(), d.Bounds.Min.X, d.Bounds.Min.Y)
	}
	if shots.Resolved {
		bounds, _ := screenshots.ResolveMonitor(shots.Displays, cfg.Capture.MonitorID)
		fmt.Fprintf(stdout, "Monitor %d resolves to %dx%d at (%d,%d)\n", cfg.Capture.MonitorID, bounds.Dx(), bounds.Dy(), bounds.Min.X, bounds.Min.Y)
	}

	fmt.Fprintln(stdout, "Subsystem status summary:")
	printSubsystem(stdout, "screenshots", shots.Provider, shots.Available, shots.Permission, shots.Message, shots.Guidance)
	printSubsystem(stdout, "pointer", pointer.Provider, pointer.Available, pointer.Permission, pointer.Message, pointer.Guidance)

	app.Logger.Debug("doctor finished", "screenshots_available", shots.Available, "pointer_available", pointer.Available)
	if !shots.Available || !pointer.Available {
		return errEnvironmentNotReady
	}
	return nil
}

func printSubsystem(stdout io.Writer, name, provider string, available bool, permission, message, guidance string) {
	fmt.Fprintf(stdout, "  - %s: available=%t provider=%s permission=%s", name, available, provider, permission)
	if message != "" {
		fmt.Fprintf(stdout, " (%s)", message)
	}
	fmt.Fprintln(stdout)
	if guidance != "" && !available {
		fmt.Fprintf(stdout, "    hint: %s\n", guidance)
	}
}
