package domain

import (
	"io"
	"os"
	"path/filepath"
)

// SelectedFile is a local file handle picked by the user for conversion
type SelectedFile struct {
	Name string
	Path string
	Size int64
}

// NewSelectedFile stats path and builds a SelectedFile for it
func NewSelectedFile(path string) (SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SelectedFile{}, err
	}
	if info.IsDir() {
		return SelectedFile{}, ErrIsDirectory
	}
	return SelectedFile{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
	}, nil
}

// Open opens the underlying file for reading
func (f SelectedFile) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}
