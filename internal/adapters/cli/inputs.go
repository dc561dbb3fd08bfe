package cli

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/devbush/swiftconvert/internal/adapters/archive"
	"github.com/devbush/swiftconvert/internal/domain"
)

// ParseInputFile reads a file containing paths or URLs, one per line.
// Blank lines and lines starting with # are ignored.
func ParseInputFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var inputs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return inputs, nil
}

// CollectInputs combines CLI arguments and file input, deduplicating.
// Args are processed first, then file entries, each in order of first appearance.
func CollectInputs(args []string, filePath string) ([]string, error) {
	seen := make(map[string]bool)
	var inputs []string

	add := func(in string) {
		in = strings.TrimSpace(in)
		if in == "" || seen[in] {
			return
		}
		seen[in] = true
		inputs = append(inputs, in)
	}

	// Process CLI args first
	for _, arg := range args {
		add(arg)
	}

	// Process file if provided
	if filePath != "" {
		fileInputs, err := ParseInputFile(filePath)
		if err != nil {
			return nil, err
		}
		for _, in := range fileInputs {
			add(in)
		}
	}

	return inputs, nil
}

// isURL reports whether an input should be imported over HTTP
func isURL(input string) bool {
	lower := strings.ToLower(input)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// expandArchives replaces 7-Zip archives with the files they contain,
// extracted to a temp directory.
func expandArchives(app *App, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !archive.IsSevenZip(p) {
			out = append(out, p)
			continue
		}

		dir, err := os.MkdirTemp("", "swiftconvert-7z-*")
		if err != nil {
			app.Notifier.Warn(err.Error())
			continue
		}
		extracted, err := archive.ExtractSevenZip(nil, p, dir)
		if err != nil {
			app.Notifier.Warn(err.Error())
		}
		out = append(out, extracted...)
	}
	return out
}

// resolveInputs turns paths, directories, globs, 7z archives and URLs into selected
// files. Inputs that cannot be read are reported and skipped.
func resolveInputs(ctx context.Context, app *App, inputs []string) []domain.SelectedFile {
	var files []domain.SelectedFile
	seen := make(map[string]bool)

	for _, in := range inputs {
		if isURL(in) {
			f, err := app.Upload.FromURL(ctx, in)
			if err != nil {
				app.Notifier.Warn(err.Error())
				continue
			}
			files = append(files, f)
			continue
		}

		paths, err := expandPath(in)
		if err != nil {
			app.Notifier.Warn(err.Error())
			continue
		}
		paths = expandArchives(app, paths)
		for _, p := range paths {
			if seen[p] {
				continue
			}
			seen[p] = true

			f, err := domain.NewSelectedFile(p)
			if err != nil {
				log.Debug().Err(err).Str("path", p).Msg("skipping input")
				app.Notifier.Warn(p + ": " + err.Error())
				continue
			}
			files = append(files, f)
		}
	}
	return files
}
