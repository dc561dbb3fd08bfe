package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbush/swiftconvert/internal/domain"
)

// NewFormatsCmd creates the formats subcommand
func NewFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats",
		RunE:  runFormats,
	}
}

func runFormats(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	selected := app.Output.Selected()
	options := app.Output.Options()

	fmt.Println()
	fmt.Printf("  %-8s %-12s %s\n", "Format", "MIME type", "Status")
	fmt.Println("  " + strings.Repeat("-", 40))

	fmt.Printf("  %-8s %-12s %s\n", selected.Name, selected.MIMEType, "selected")
	for _, ft := range options {
		status := "available"
		if ft.Unavailable {
			status = "already uploaded"
		}
		fmt.Printf("  %-8s %-12s %s\n", ft.Name, ft.MIMEType, status)
	}
	fmt.Println()

	var inputOnly []string
	for _, ft := range domain.FileTypes() {
		if domain.IsInputOnly(ft.ID) {
			inputOnly = append(inputOnly, ft.Name)
		}
	}
	fmt.Printf("  Input only: %s\n", strings.Join(inputOnly, ", "))
	fmt.Println()

	return nil
}
