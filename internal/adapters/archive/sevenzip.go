package archive

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/devbush/swiftconvert/internal/domain"
)

// maxEntrySize caps a single extracted entry
const maxEntrySize = 200 * 1024 * 1024

// IsSevenZip reports whether name looks like a 7-Zip archive
func IsSevenZip(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".7z")
}

// ExtractSevenZip unpacks the regular files of a 7-Zip archive into destDir
// and returns their paths in archive order. Entries are flattened to their
// base names, with a numeric suffix when two names collide.
func ExtractSevenZip(fs afero.Fs, archivePath, destDir string) ([]string, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	f, err := fs.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	r, err := sevenzip.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", archivePath, err)
	}

	if err := fs.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	seen := make(map[string]int)
	var paths []string
	for _, entry := range r.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if entry.UncompressedSize > maxEntrySize {
			log.Warn().Str("entry", entry.Name).Uint64("size", entry.UncompressedSize).Msg("skipping oversized archive entry")
			continue
		}

		name := flatName(entry.Name, seen)
		dest := filepath.Join(destDir, name)
		if err := extractEntry(fs, entry, dest); err != nil {
			return paths, fmt.Errorf("failed to extract %s: %w", entry.Name, err)
		}
		paths = append(paths, dest)
	}

	log.Debug().Str("archive", archivePath).Int("files", len(paths)).Msg("archive extracted")
	return paths, nil
}

func extractEntry(fs afero.Fs, entry *sevenzip.File, dest string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := fs.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, io.LimitReader(rc, maxEntrySize)); err != nil {
		out.Close()
		fs.Remove(dest)
		return err
	}
	return out.Close()
}

// flatName strips directories from an entry name and keeps it unique
func flatName(name string, seen map[string]int) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}

	return domain.UniqueName(base, seen)
}
