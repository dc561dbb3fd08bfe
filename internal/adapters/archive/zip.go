package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"

	"github.com/devbush/swiftconvert/internal/ports"
)

// Compression selects how entries are compressed inside the zip
type Compression string

const (
	CompressionDeflate Compression = "deflate"
	CompressionZstd    Compression = "zstd"
	CompressionXZ      Compression = "xz"
	CompressionStore   Compression = "store"
)

// Zip method IDs outside the stdlib set (APPNOTE 4.4.5)
const (
	MethodZstd uint16 = 93
	MethodXZ   uint16 = 95
)

// ParseCompression validates a configured compression name
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(s); c {
	case CompressionDeflate, CompressionZstd, CompressionXZ, CompressionStore:
		return c, nil
	case "":
		return CompressionDeflate, nil
	default:
		return "", fmt.Errorf("unknown archive compression %q (want deflate, zstd, xz or store)", s)
	}
}

// ZipWriter bundles entries into a zip file
type ZipWriter struct {
	fs          afero.Fs
	compression Compression
	now         func() time.Time
}

// NewZipWriter creates a zip writer. A nil fs writes to the OS filesystem.
func NewZipWriter(fs afero.Fs, compression Compression) *ZipWriter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if compression == "" {
		compression = CompressionDeflate
	}
	return &ZipWriter{fs: fs, compression: compression, now: time.Now}
}

func (z *ZipWriter) method() uint16 {
	switch z.compression {
	case CompressionZstd:
		return MethodZstd
	case CompressionXZ:
		return MethodXZ
	case CompressionStore:
		return zip.Store
	default:
		return zip.Deflate
	}
}

// Write builds the archive in a temp file next to destPath and renames it
// into place, so a failed write never leaves a partial archive.
func (z *ZipWriter) Write(destPath string, entries []ports.ArchiveEntry) error {
	dir := filepath.Dir(destPath)
	if err := z.fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := afero.TempFile(z.fs, dir, ".swiftconvert-*.zip")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			z.fs.Remove(tmpPath)
		}
	}()

	zw := zip.NewWriter(tmp)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})
	zw.RegisterCompressor(MethodZstd, func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	})
	zw.RegisterCompressor(MethodXZ, func(w io.Writer) (io.WriteCloser, error) {
		return &lazyXZWriter{w: w}, nil
	})

	modified := z.now()
	for _, entry := range entries {
		header := &zip.FileHeader{
			Name:     entry.Name,
			Method:   z.method(),
			Modified: modified,
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return fmt.Errorf("failed to write %s: %w", entry.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := z.fs.Rename(tmpPath, destPath); err != nil {
		z.fs.Remove(tmpPath)
		return err
	}

	success = true
	return nil
}

var _ ports.Archiver = (*ZipWriter)(nil)

// lazyXZWriter defers the xz stream header until the first write.
// archive/zip builds the compressor before it writes the local file
// header, and xz.NewWriter emits its header right away.
type lazyXZWriter struct {
	w  io.Writer
	xw *xz.Writer
}

func (l *lazyXZWriter) init() error {
	if l.xw != nil {
		return nil
	}
	xw, err := xz.NewWriter(l.w)
	if err != nil {
		return err
	}
	l.xw = xw
	return nil
}

func (l *lazyXZWriter) Write(p []byte) (int, error) {
	if err := l.init(); err != nil {
		return 0, err
	}
	return l.xw.Write(p)
}

func (l *lazyXZWriter) Close() error {
	if err := l.init(); err != nil {
		return err
	}
	return l.xw.Close()
}
