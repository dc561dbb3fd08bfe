package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/devbush/swiftconvert/internal/adapters/auth"
)

var (
	userIDFlag   string
	providerFlag string
)

// NewSignInCmd creates the signin subcommand
func NewSignInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in to save photos to Google Drive",
		Long: `Opens the SwiftConvert sign-in page in your browser. After signing in,
run again with --user-id to store the identity shown on the page.`,
		RunE: runSignIn,
	}

	cmd.Flags().StringVar(&userIDFlag, "user-id", "", "Store this user identity without opening the browser")
	cmd.Flags().StringVar(&providerFlag, "provider", string(auth.ProviderGoogle), "OAuth provider linked to the identity")

	return cmd
}

// NewSignOutCmd creates the signout subcommand
func NewSignOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the stored identity",
		RunE:  runSignOut,
	}
}

func runSignIn(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	provider, err := auth.ParseProvider(providerFlag)
	if err != nil {
		return err
	}

	if userIDFlag != "" {
		if _, err := identityTokenURL(userIDFlag, provider); err != nil {
			return err
		}
		if err := app.Auth.Store(userIDFlag); err != nil {
			return err
		}
		fmt.Printf("Signed in as %s\n", userIDFlag)
		return nil
	}

	session, err := app.Auth.Session(context.Background())
	if err == nil && session.Authenticated() {
		fmt.Printf("Already signed in as %s\n", session.UserID)
		return nil
	}

	fmt.Printf("Opening %s\n", app.Auth.SignInURL())
	if err := app.Auth.SignIn(context.Background()); err != nil {
		return err
	}
	fmt.Println("Finish signing in in your browser, then run: swiftconvert signin --user-id <id>")
	return nil
}

// identityTokenURL validates a user identity for provider and returns the
// endpoint its access tokens are read from
func identityTokenURL(userID string, provider auth.Provider) (string, error) {
	tokenURL, err := auth.OAuthTokenURL(userID, provider)
	if err != nil {
		return "", err
	}
	log.Debug().Str("provider", string(provider)).Str("token_url", tokenURL).Msg("identity validated")
	return tokenURL, nil
}

func runSignOut(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	if err := app.Auth.SignOut(); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}
