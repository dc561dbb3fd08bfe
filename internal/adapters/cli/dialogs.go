package cli

import (
	"errors"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"
)

// errNoDialog means no native dialog could be shown, e.g. over SSH
var errNoDialog = errors.New("native dialog unavailable")

// pickFilesNative opens the system file picker filtered to extensions.
// A cancelled dialog returns no paths and no error.
func pickFilesNative(extensions []string) ([]string, error) {
	selected, err := zenity.SelectFileMultiple(
		zenity.Title("Select images to convert"),
		zenity.FileFilters{
			{Name: "Images", Patterns: extensionPatterns(extensions)},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil, nil
		}
		log.Debug().Err(err).Msg("file picker failed")
		return nil, errNoDialog
	}

	log.Info().Int("count", len(selected)).Msg("files picked via native dialog")
	return selected, nil
}

// pickSavePath asks where to write the archive, starting at defaultName.
// A cancelled dialog returns an empty path and no error.
func pickSavePath(defaultName string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save converted images"),
		zenity.Filename(defaultName),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{
			{Name: "Zip archives", Patterns: []string{"*.zip"}},
		},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		log.Debug().Err(err).Msg("save dialog failed")
		return "", errNoDialog
	}
	return path, nil
}

// extensionPatterns turns ".jpg" style extensions into "*.jpg" globs
func extensionPatterns(extensions []string) []string {
	patterns := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		patterns = append(patterns, "*"+ext)
	}
	return patterns
}
