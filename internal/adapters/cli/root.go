package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/devbush/swiftconvert/internal/adapters/cli/tui"
	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/logging"
)

var (
	// Global flags
	logLevelFlag    string
	quietFlag       bool
	backendFlag     string
	compressionFlag string

	// Conversion flags
	toFlag      string
	fromFlag    string
	qualityFlag int
	singleFlag  bool
	listFlag    string
	saveFlag    string
	driveFlag   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "swiftconvert [files|dirs|urls...]",
		Short: "Convert images between formats",
		Long: `swiftconvert uploads images to the SwiftConvert service, converts them
to another format and saves the results locally or to Google Drive.

Provide files, directories, globs or image URLs to convert them, or run
without arguments for an interactive menu.

Example:
  swiftconvert photo.jpg --to png
  swiftconvert ./holiday --to webp --quality 70 --save holiday.zip
  swiftconvert --list photos.txt --drive`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(logLevelFlag)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if globalApp != nil {
				globalApp.Close()
			}
		},
		RunE: runRoot,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Conversion service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&compressionFlag, "compression", "", "Zip compression for local saves: deflate, zstd, xz, store")

	// Conversion flags
	rootCmd.Flags().StringVarP(&toFlag, "to", "t", "", "Output format (e.g. png, webp)")
	rootCmd.Flags().StringVar(&fromFlag, "from", "", "Input format to accept (e.g. jpg)")
	rootCmd.Flags().IntVar(&qualityFlag, "quality", 0, "Image quality 30-100 in steps of 10")
	rootCmd.Flags().BoolVar(&singleFlag, "single", false, "Convert only the first accepted file")
	rootCmd.Flags().StringVarP(&listFlag, "list", "f", "", "File with paths/URLs (one per line)")
	rootCmd.Flags().StringVarP(&saveFlag, "save", "o", "", "Save results as a zip archive at this path")
	rootCmd.Flags().BoolVar(&driveFlag, "drive", false, "Save results to Google Drive")

	// Add subcommands
	rootCmd.AddCommand(NewFormatsCmd())
	rootCmd.AddCommand(NewSettingsCmd())
	rootCmd.AddCommand(NewExportCmd())
	rootCmd.AddCommand(NewSessionCmd())
	rootCmd.AddCommand(NewSignInCmd())
	rootCmd.AddCommand(NewSignOutCmd())

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && listFlag == "" {
		if !isInteractive() {
			return cmd.Help()
		}
		// No arguments - show interactive menu
		return runInteractiveMenu(cmd.Context())
	}

	app, err := GetApp()
	if err != nil {
		return err
	}
	if err := applySettingsFlags(app); err != nil {
		return err
	}

	inputs, err := CollectInputs(args, listFlag)
	if err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}

	return runConvert(cmd.Context(), app, inputs)
}

// applySettingsFlags commits --from, --to and --quality to the session settings
func applySettingsFlags(app *App) error {
	if fromFlag != "" {
		id, err := domain.ParseFileTypeID(fromFlag)
		if err != nil {
			return err
		}
		settings := app.Settings.Read()
		settings.FileInputID = id
		app.Settings.Update(settings)
	}
	if toFlag != "" {
		id, err := domain.ParseFileTypeID(toFlag)
		if err != nil {
			return err
		}
		if err := app.Output.Select(id); err != nil {
			return err
		}
	}
	if qualityFlag != 0 {
		if err := app.Quality.Set(qualityFlag); err != nil {
			return err
		}
	}
	return nil
}

func runInteractiveMenu(ctx context.Context) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	for {
		settings := app.Settings.Read()
		options := []tui.MenuOption{
			{Label: "Convert images", Value: "convert"},
			{Label: fmt.Sprintf("Output format (%s)", app.Output.Selected().Name), Value: "output"},
			{Label: fmt.Sprintf("Image quality (%d)", settings.ImageQuality), Value: "quality"},
			{Label: "Import from Google Drive", Value: "drive-import"},
			{Label: "Sign in", Value: "signin"},
		}
		if len(app.Restored) > 0 {
			options = append(options, tui.MenuOption{
				Label: fmt.Sprintf("Save last results (%d)", len(app.Restored)),
				Value: "export",
			})
		}

		selected, err := tui.RunMenu("What would you like to do?", options)
		if err != nil {
			return err
		}

		switch selected {
		case "convert":
			return runConvertInteractive(ctx, app)
		case "output":
			if err := pickOutputFormat(app); err != nil {
				return err
			}
		case "quality":
			if _, err := tui.RunQualitySlider(app.Quality.Steps(), app.Quality.Current(), app.Quality.Set); err != nil {
				return err
			}
		case "drive-import":
			if err := app.Upload.FromCloudDrive(ctx); err != nil {
				app.Notifier.Warn(err.Error())
			}
		case "signin":
			if err := runSignIn(nil, nil); err != nil {
				return err
			}
		case "export":
			if err := app.Workflow.Restore(app.Restored); err != nil {
				return err
			}
			return promptExport(ctx, app, len(app.Restored))
		case "":
			fmt.Println("Cancelled")
			return nil
		}
	}
}

func pickOutputFormat(app *App) error {
	id, ok, err := tui.RunFormatSelector(app.Output.Selected(), app.Output.Options())
	if err != nil || !ok {
		return err
	}
	if err := app.Output.Select(id); err != nil {
		app.Notifier.Warn(err.Error())
	}
	return nil
}

func runConvertInteractive(ctx context.Context, app *App) error {
	fmt.Println(app.Upload.LimitMessage())
	fmt.Printf("Accepted: %s\n", strings.Join(app.Upload.AllowedExtensions(), ", "))
	fmt.Print("Enter files, directories or URLs (space separated, empty to browse): ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return err
	}

	inputs, err := CollectInputs(strings.Fields(line), "")
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		picked, err := pickFilesNative(app.Upload.AllowedExtensions())
		if err != nil {
			return fmt.Errorf("%w: enter paths instead", err)
		}
		if len(picked) == 0 {
			fmt.Println("Cancelled")
			return nil
		}
		return runConvert(ctx, app, picked)
	}
	if len(inputs) == 1 && !isURL(inputs[0]) {
		if picked, err := pickFromDirectory(app, inputs[0]); err != nil || picked != nil {
			if err != nil {
				return err
			}
			inputs = picked
		}
	}
	return runConvert(ctx, app, inputs)
}

// pickFromDirectory lets the user choose files when a single directory is
// given. It returns nil when input is not a directory.
func pickFromDirectory(app *App, input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	paths, err := expandPath(input)
	if err != nil {
		return nil, err
	}
	options := make([]tui.CheckboxOption, len(paths))
	for i, p := range paths {
		options[i] = tui.CheckboxOption{Label: p, Value: p}
	}

	selected, err := tui.RunCheckbox("Select images to convert", options, app.Upload.Limits().MaxFiles)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, domain.ErrNoFileSelected
	}
	return selected, nil
}

func isInteractive() bool {
	fd := os.Stdout.Fd()
	return !quietFlag && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
