package application

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

// BindSession restores settings from session into store and then saves
// every later change. A missing or expired session leaves store untouched.
// The returned function stops saving.
func BindSession(ctx context.Context, store *SettingsStore, session ports.SessionStore) ([]domain.ConversionResult, func()) {
	var results []domain.ConversionResult

	state, err := session.Load(ctx)
	switch {
	case err == nil:
		if validSettings(state.Settings) {
			store.Update(state.Settings)
		} else {
			log.Warn().Msg("ignoring invalid session settings")
		}
		results = state.Results
	case errors.Is(err, domain.ErrSessionMiss), errors.Is(err, domain.ErrSessionExpired):
		log.Debug().Err(err).Msg("starting new session")
	default:
		log.Warn().Err(err).Msg("failed to load session")
	}

	unsubscribe := store.Subscribe(func(settings domain.Settings) {
		next, err := session.Load(ctx)
		if err != nil {
			next = &ports.SessionState{}
		}
		next.Settings = settings
		if err := session.Save(ctx, next); err != nil {
			log.Warn().Err(err).Msg("failed to save session")
		}
	})
	return results, unsubscribe
}

func validSettings(s domain.Settings) bool {
	if _, ok := domain.LookupFileType(s.FileInputID); !ok {
		return false
	}
	if _, ok := domain.LookupFileType(s.FileOutputID); !ok {
		return false
	}
	return !domain.IsInputOnly(s.FileOutputID) && domain.IsValidQuality(s.ImageQuality)
}
