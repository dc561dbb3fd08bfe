package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbush/swiftconvert/internal/domain"
)

// NewExportCmd creates the export subcommand
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save the results of the last conversion",
		Long: `Save the results of the last conversion in this session, either as a
zip archive on this device or to the SwiftConvert folder of Google Drive.`,
	}

	localCmd := &cobra.Command{
		Use:   "local [file.zip]",
		Short: "Save results as a zip archive",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportLocal,
	}

	driveCmd := &cobra.Command{
		Use:   "drive",
		Short: "Save results to Google Drive",
		RunE:  runExportDrive,
	}

	cmd.AddCommand(localCmd, driveCmd)
	return cmd
}

// restoreLastResults loads the session results into the workflow
func restoreLastResults() (*App, error) {
	app, err := GetApp()
	if err != nil {
		return nil, err
	}
	if len(app.Restored) == 0 {
		return nil, fmt.Errorf("%w: convert some images first", domain.ErrNoResults)
	}
	if err := app.Workflow.Restore(app.Restored); err != nil {
		return nil, err
	}
	return app, nil
}

func runExportLocal(cmd *cobra.Command, args []string) error {
	app, err := restoreLastResults()
	if err != nil {
		return err
	}

	dest := defaultArchiveName(time.Now())
	if len(args) == 1 {
		dest = args[0]
	}
	return saveLocal(cmd.Context(), app, dest)
}

func runExportDrive(cmd *cobra.Command, args []string) error {
	app, err := restoreLastResults()
	if err != nil {
		return err
	}
	return saveToDrive(cmd.Context(), app)
}
