package domain

import (
	"strings"
	"testing"
)

func TestParseFileTypeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FileTypeID
		wantErr bool
	}{
		{name: "lowercase", input: "png", want: FileTypePNG},
		{name: "uppercase", input: "WEBP", want: FileTypeWEBP},
		{name: "dotted", input: ".jpeg", want: FileTypeJPEG},
		{name: "whitespace trimmed", input: "  gif ", want: FileTypeGIF},
		{name: "input only type", input: "heic", want: FileTypeHEIC},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "psd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFileTypeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFileTypeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseFileTypeID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputCatalog_ExcludesInputOnlyTypes(t *testing.T) {
	for _, ft := range OutputCatalog(nil, "") {
		if IsInputOnly(ft.ID) {
			t.Errorf("OutputCatalog() contains input-only type %s", ft.ID)
		}
	}
}

func TestOutputCatalog_ExcludesSelectedOutput(t *testing.T) {
	for _, ft := range FileTypes() {
		if IsInputOnly(ft.ID) {
			continue
		}
		for _, opt := range OutputCatalog(nil, ft.ID) {
			if strings.EqualFold(opt.Name, ft.Name) {
				t.Errorf("OutputCatalog(selected=%s) still offers %s", ft.ID, opt.Name)
			}
		}
	}
}

func TestOutputCatalog_MarksKnownUploadedUnavailable(t *testing.T) {
	known := map[FileTypeID]bool{FileTypeJPG: true, FileTypeHEIC: true}

	catalog := OutputCatalog(known, FileTypePNG)

	var sawJPG bool
	for _, ft := range catalog {
		if ft.ID == FileTypeJPG {
			sawJPG = true
			if !ft.Unavailable {
				t.Errorf("JPG should be unavailable after being uploaded")
			}
			continue
		}
		if ft.Unavailable {
			t.Errorf("%s should not be unavailable", ft.ID)
		}
	}
	if !sawJPG {
		t.Errorf("JPG missing from catalog")
	}
}

func TestOutputCatalog_DoesNotMutateCatalog(t *testing.T) {
	OutputCatalog(map[FileTypeID]bool{FileTypePNG: true}, "")

	ft, _ := LookupFileType(FileTypePNG)
	if ft.Unavailable {
		t.Errorf("global catalog entry was mutated")
	}
}

func TestSupportedFileType_Extension(t *testing.T) {
	ft, ok := LookupFileType(FileTypeTIFF)
	if !ok {
		t.Fatal("TIFF missing from catalog")
	}
	if got := ft.Extension(); got != ".tiff" {
		t.Errorf("Extension() = %q, want .tiff", got)
	}
}
