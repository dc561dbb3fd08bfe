package domain

import (
	"fmt"
	"strings"
)

// FileTypeID identifies an image file format
type FileTypeID string

const (
	FileTypeJPG  FileTypeID = "jpg"
	FileTypeJPEG FileTypeID = "jpeg"
	FileTypePNG  FileTypeID = "png"
	FileTypeWEBP FileTypeID = "webp"
	FileTypeGIF  FileTypeID = "gif"
	FileTypeAVIF FileTypeID = "avif"
	FileTypeTIFF FileTypeID = "tiff"
	FileTypeBMP  FileTypeID = "bmp"
	FileTypeHEIC FileTypeID = "heic"
	FileTypeHEIF FileTypeID = "heif"
)

// SupportedFileType is one entry of the file type catalog
type SupportedFileType struct {
	ID          FileTypeID
	Name        string
	MIMEType    string
	Unavailable bool // already uploaded this session, so useless as an output
}

// Extension returns the dotted lowercase extension, e.g. ".png"
func (t SupportedFileType) Extension() string {
	return "." + strings.ToLower(string(t.ID))
}

var fileTypes = []SupportedFileType{
	{ID: FileTypeJPG, Name: "JPG", MIMEType: "image/jpeg"},
	{ID: FileTypeJPEG, Name: "JPEG", MIMEType: "image/jpeg"},
	{ID: FileTypePNG, Name: "PNG", MIMEType: "image/png"},
	{ID: FileTypeWEBP, Name: "WEBP", MIMEType: "image/webp"},
	{ID: FileTypeGIF, Name: "GIF", MIMEType: "image/gif"},
	{ID: FileTypeAVIF, Name: "AVIF", MIMEType: "image/avif"},
	{ID: FileTypeTIFF, Name: "TIFF", MIMEType: "image/tiff"},
	{ID: FileTypeBMP, Name: "BMP", MIMEType: "image/bmp"},
	{ID: FileTypeHEIC, Name: "HEIC", MIMEType: "image/heic"},
	{ID: FileTypeHEIF, Name: "HEIF", MIMEType: "image/heif"},
}

// FileTypes returns a copy of the full catalog in display order
func FileTypes() []SupportedFileType {
	out := make([]SupportedFileType, len(fileTypes))
	copy(out, fileTypes)
	return out
}

// LookupFileType finds a catalog entry by ID
func LookupFileType(id FileTypeID) (SupportedFileType, bool) {
	for _, ft := range fileTypes {
		if ft.ID == id {
			return ft, true
		}
	}
	return SupportedFileType{}, false
}

// ParseFileTypeID normalizes user input like "PNG", ".png" or "png" to a catalog ID
func ParseFileTypeID(input string) (FileTypeID, error) {
	s := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(input), "."))
	if s == "" {
		return "", fmt.Errorf("empty file type")
	}
	if _, ok := LookupFileType(FileTypeID(s)); !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFileType, input)
	}
	return FileTypeID(s), nil
}

// IsInputOnly reports whether the backend accepts the type as upload input
// but cannot produce it yet.
func IsInputOnly(id FileTypeID) bool {
	return id == FileTypeHEIC || id == FileTypeHEIF
}

// InputOnlyExtensions are always accepted on upload regardless of the output catalog
func InputOnlyExtensions() []string {
	return []string{".heic", ".heif"}
}

// OutputCatalog builds the selectable output list. Input-only types are
// dropped, types already uploaded this session are kept but marked
// unavailable, and the type currently selected as output is left out.
func OutputCatalog(known map[FileTypeID]bool, selected FileTypeID) []SupportedFileType {
	var selectedName string
	if ft, ok := LookupFileType(selected); ok {
		selectedName = strings.ToLower(ft.Name)
	}

	out := make([]SupportedFileType, 0, len(fileTypes))
	for _, ft := range fileTypes {
		if IsInputOnly(ft.ID) {
			continue
		}
		if selectedName != "" && strings.ToLower(ft.Name) == selectedName {
			continue
		}
		if known[ft.ID] {
			ft.Unavailable = true
		}
		out = append(out, ft)
	}
	return out
}
