package auth

import (
	"fmt"
	"net/url"

	"github.com/devbush/swiftconvert/internal/domain"
)

// Provider is an OAuth provider known to the identity service
type Provider string

const ProviderGoogle Provider = "oauth_google"

const oauthTokenBase = "https://api.clerk.com/v1/users"

var providers = map[Provider]bool{
	ProviderGoogle: true,
}

// OAuthTokenURL builds the identity-service URL that returns a user's
// OAuth access tokens for provider. Inputs are checked before any request.
func OAuthTokenURL(userID string, provider Provider) (string, error) {
	if !providers[provider] {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidProvider, provider)
	}
	if userID == "" {
		return "", domain.ErrInvalidUserID
	}
	return fmt.Sprintf("%s/%s/oauth_access_tokens/%s", oauthTokenBase, url.PathEscape(userID), provider), nil
}

// ParseProvider checks s against the known providers
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !providers[p] {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidProvider, s)
	}
	return p, nil
}
