package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/swiftconvert/internal/domain"
)

// NewSessionCmd creates the session subcommand
func NewSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show or clear the saved session",
		RunE:  runSessionStatus,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget saved settings and results",
		RunE:  runSessionClear,
	}

	cmd.AddCommand(clearCmd)

	return cmd
}

func runSessionStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Session:")
	fmt.Printf("  Path:    %s\n", app.Session.Path())
	fmt.Printf("  TTL:     %s\n", app.Config.Defaults.SessionTTL)

	state, err := app.Session.Load(context.Background())
	switch {
	case err == nil:
		fmt.Printf("  Results: %d\n", len(state.Results))
		fmt.Printf("  Expires: %s\n", state.ExpiresAt.Local().Format("2006-01-02 15:04"))
	case errors.Is(err, domain.ErrSessionMiss), errors.Is(err, domain.ErrSessionExpired):
		fmt.Println("  Status:  none")
	default:
		return err
	}
	fmt.Println()

	return nil
}

func runSessionClear(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	// Stop syncing first so the clear is not undone on exit
	app.Close()
	if err := app.Session.Clear(context.Background()); err != nil {
		return err
	}
	app.Restored = nil

	fmt.Println("Session cleared")
	return nil
}
