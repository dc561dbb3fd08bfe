package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbush/swiftconvert/internal/adapters/cli/tui"
	"github.com/devbush/swiftconvert/internal/domain"
)

// NewSettingsCmd creates the settings subcommand
func NewSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change conversion settings",
		RunE:  runSettingsShow,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE:  runSettingsShow,
	}

	outputCmd := &cobra.Command{
		Use:   "set-output [format]",
		Short: "Set the output format (picker when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSettingsSetOutput,
	}

	qualityCmd := &cobra.Command{
		Use:   "set-quality [30-100]",
		Short: "Set the image quality (slider when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSettingsSetQuality,
	}

	inputCmd := &cobra.Command{
		Use:   "set-input <format>",
		Short: "Set the input format accepted on upload",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsSetInput,
	}

	cmd.AddCommand(showCmd, outputCmd, qualityCmd, inputCmd)
	return cmd
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	settings := app.Settings.Read()

	var known []string
	for id, seen := range settings.KnownUploadedFileTypes {
		if seen {
			known = append(known, strings.ToUpper(string(id)))
		}
	}
	sort.Strings(known)
	if len(known) == 0 {
		known = []string{"none"}
	}

	fmt.Println()
	fmt.Println("Settings:")
	fmt.Printf("  Input:    %s\n", strings.ToUpper(string(settings.FileInputID)))
	fmt.Printf("  Output:   %s\n", app.Output.Selected().Name)
	fmt.Printf("  Quality:  %d\n", settings.ImageQuality)
	fmt.Printf("  Uploaded: %s\n", strings.Join(known, ", "))
	fmt.Printf("  Limit:    %d files, %s\n", app.Upload.Limits().MaxFiles, tui.FormatSize(app.Upload.Limits().MaxTotalSize))
	fmt.Printf("  Session:  %s (expires after %s)\n", app.Session.Path(), app.Config.Defaults.SessionTTL)
	fmt.Println()

	return nil
}

func runSettingsSetOutput(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return pickOutputFormat(app)
	}

	id, err := domain.ParseFileTypeID(args[0])
	if err != nil {
		return err
	}
	if err := app.Output.Select(id); err != nil {
		return err
	}

	fmt.Printf("Output format set to %s\n", app.Output.Selected().Name)
	return nil
}

func runSettingsSetQuality(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		q, err := tui.RunQualitySlider(app.Quality.Steps(), app.Quality.Current(), app.Quality.Set)
		if err != nil {
			return err
		}
		fmt.Printf("Image quality set to %d\n", q)
		return nil
	}

	q, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidQuality, args[0])
	}
	if err := app.Quality.Set(q); err != nil {
		return err
	}

	fmt.Printf("Image quality set to %d\n", q)
	return nil
}

func runSettingsSetInput(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	id, err := domain.ParseFileTypeID(args[0])
	if err != nil {
		return err
	}

	settings := app.Settings.Read()
	settings.FileInputID = id
	app.Settings.Update(settings)

	fmt.Printf("Input format set to %s\n", strings.ToUpper(string(id)))
	return nil
}
