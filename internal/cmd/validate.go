package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/offlinefirst/clickcollect/pkg/dataset"
)

var errMalformedRecords = errors.New("malformed example records found")

func newValidateCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Check example records and report missing screenshots",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.app == nil {
				return errors.New("application context unavailable")
			}
			dir := root.app.Config.Paths.OutputDir
			if len(args) == 1 {
				dir = args[0]
			}
			return runValidate(root.app, dir, cmd.OutOrStdout())
		},
	}
}

func runValidate(app *AppContext, dir string, stdout io.Writer) error {
	report, err := dataset.Scan(dir)
	if err != nil {
		return err
	}

	for _, entry := range report.Entries {
		switch {
		case entry.Err != nil:
			fmt.Fprintf(stdout, "INVALID %s: %v\n", entry.Path, entry.Err)
		case !entry.ImagePresent:
			fmt.Fprintf(stdout, "MISSING %s -> %s\n", entry.Path, entry.ImageRef)
		}
	}
	fmt.Fprintf(stdout, "%d records: %d valid, %d malformed, %d missing images\n",
		len(report.Entries), report.Valid, report.Malformed, report.MissingImages)

	app.Logger.Info("validation finished", "dir", dir, "valid", report.Valid, "malformed", report.Malformed, "missing_images", report.MissingImages)
	if report.Malformed > 0 {
		return fmt.Errorf("%w: %d in %s", errMalformedRecords, report.Malformed, dir)
	}
	return nil
}
