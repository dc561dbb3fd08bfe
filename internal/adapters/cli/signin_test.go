package cli

import (
	"errors"
	"testing"

	"github.com/devbush/swiftconvert/internal/adapters/auth"
	"github.com/devbush/swiftconvert/internal/domain"
)

func TestIdentityTokenURL(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		provider auth.Provider
		wantErr  error
	}{
		{"valid", "user_2abc", auth.ProviderGoogle, nil},
		{"empty user", "", auth.ProviderGoogle, domain.ErrInvalidUserID},
		{"unknown provider", "user_2abc", auth.Provider("oauth_dropbox"), domain.ErrInvalidProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := identityTokenURL(tt.userID, tt.provider)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("identityTokenURL() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got != "https://api.clerk.com/v1/users/user_2abc/oauth_access_tokens/oauth_google" {
				t.Errorf("identityTokenURL() = %s", got)
			}
		})
	}
}
