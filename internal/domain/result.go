package domain

import (
	"fmt"
	"path"
	"strings"
)

// ConversionResult describes one artifact produced by the conversion backend
type ConversionResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"downloadUrl"`
}

// ArchiveName returns the file name used when bundling the result locally
func (r ConversionResult) ArchiveName() string {
	name := path.Base(strings.ReplaceAll(r.Name, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		name = r.ID
	}
	if path.Ext(name) == "" && r.Type != "" {
		name = fmt.Sprintf("%s.%s", name, strings.ToLower(strings.TrimPrefix(r.Type, ".")))
	}
	return name
}
