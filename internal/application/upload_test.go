package application

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/devbush/swiftconvert/internal/domain"
)

func files(names ...string) []domain.SelectedFile {
	out := make([]domain.SelectedFile, 0, len(names))
	for _, n := range names {
		out = append(out, domain.SelectedFile{Name: n, Path: "/tmp/" + n, Size: 1000})
	}
	return out
}

func TestUploadSurface_AcceptFiltersByInputType(t *testing.T) {
	store := NewSettingsStore(domain.DefaultSettings())
	notifier := &mockNotifier{}

	var handled []domain.SelectedFile
	surface := NewUploadSurface(store, notifier, nil, nil, UploadOptions{
		OnFiles: func(f []domain.SelectedFile) { handled = f },
	})

	accepted, rejected := surface.Accept(files("a.JPG", "b.png", "c.jpg", "d.gif"))

	if len(accepted) != 2 || accepted[0].Name != "a.JPG" || accepted[1].Name != "c.jpg" {
		t.Errorf("accepted = %v", accepted)
	}
	if len(rejected) != 2 {
		t.Errorf("rejected = %v", rejected)
	}
	if len(handled) != 2 {
		t.Errorf("handler got %d files, want 2", len(handled))
	}

	notices := notifier.all()
	if len(notices) != 2 {
		t.Fatalf("got %d warnings, want one per rejected file", len(notices))
	}
	if notices[0].level != "warn" || notices[0].message != "b.png is not a JPG file" {
		t.Errorf("warning = %+v", notices[0])
	}

	if !store.Read().KnownUploadedFileTypes[domain.FileTypeJPG] {
		t.Error("accepted type not recorded as uploaded")
	}
}

func TestUploadSurface_SingleFileRecordsOnlyKeptType(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.FileInputID = domain.FileTypePNG
	settings.FileOutputID = domain.FileTypeWEBP
	store := NewSettingsStore(settings)
	surface := NewUploadSurface(store, &mockNotifier{}, nil, nil, UploadOptions{SingleFile: true})

	// the second name carries .png but resolves to the jpg type by extension
	surface.Accept(files("a.png", "b.png.jpg"))

	known := store.Read().KnownUploadedFileTypes
	if !known[domain.FileTypePNG] || known[domain.FileTypeJPG] {
		t.Errorf("known uploaded types = %v, want only png", known)
	}
}

func TestUploadSurface_AcceptMatchesExtension(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"PHOTO.JPG", true},
		{"photo.jpg.png", true},
		{"notjpg.png", false},
		{"jpg", false},
		{"photo.jpeg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := NewUploadSurface(NewSettingsStore(domain.DefaultSettings()), &mockNotifier{}, nil, nil, UploadOptions{})
			accepted, _ := surface.Accept(files(tt.name))
			if got := len(accepted) == 1; got != tt.want {
				t.Errorf("Accept(%q) accepted = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestUploadSurface_AcceptNothingSkipsHandler(t *testing.T) {
	called := false
	surface := NewUploadSurface(NewSettingsStore(domain.DefaultSettings()), &mockNotifier{}, nil, nil, UploadOptions{
		OnFiles: func(f []domain.SelectedFile) { called = true },
	})

	accepted, _ := surface.Accept(files("a.png"))
	if len(accepted) != 0 || called {
		t.Errorf("accepted = %v, handler called = %v", accepted, called)
	}
}

func TestUploadSurface_Limits(t *testing.T) {
	tests := []struct {
		name         string
		limits       UploadLimits
		selection    []domain.SelectedFile
		wantAccepted int
	}{
		{
			name:         "count limit",
			limits:       UploadLimits{MaxFiles: 2, MaxTotalSize: 1 << 30},
			selection:    files("1.jpg", "2.jpg", "3.jpg"),
			wantAccepted: 2,
		},
		{
			name:         "size limit",
			limits:       UploadLimits{MaxFiles: 5, MaxTotalSize: 2500},
			selection:    files("1.jpg", "2.jpg", "3.jpg"),
			wantAccepted: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &mockNotifier{}
			surface := NewUploadSurface(NewSettingsStore(domain.DefaultSettings()), notifier, nil, nil, UploadOptions{Limits: tt.limits})

			accepted, rejected := surface.Accept(tt.selection)
			if len(accepted) != tt.wantAccepted {
				t.Errorf("accepted %d, want %d", len(accepted), tt.wantAccepted)
			}
			if len(rejected) != len(tt.selection)-tt.wantAccepted {
				t.Errorf("rejected %d files", len(rejected))
			}
			if len(notifier.all()) != len(rejected) {
				t.Errorf("warnings = %d, want %d", len(notifier.all()), len(rejected))
			}
		})
	}
}

func TestUploadSurface_DefaultLimits(t *testing.T) {
	surface := NewUploadSurface(NewSettingsStore(domain.DefaultSettings()), &mockNotifier{}, nil, nil, UploadOptions{})

	if got := surface.Limits(); got != DefaultUploadLimits() {
		t.Errorf("Limits() = %+v", got)
	}
	if got := surface.LimitMessage(); got != "Total image upload size limited to max of 50 MB" {
		t.Errorf("LimitMessage() = %q", got)
	}
}

func TestUploadSurface_SingleFileMode(t *testing.T) {
	var handled []domain.SelectedFile
	notifier := &mockNotifier{}
	store := NewSettingsStore(domain.DefaultSettings())
	surface := NewUploadSurface(store, notifier, nil, nil, UploadOptions{
		SingleFile: true,
		OnFiles:    func(f []domain.SelectedFile) { handled = f },
	})

	accepted, rejected := surface.Accept(files("a.jpg", "b.jpg"))
	if len(accepted) != 1 || accepted[0].Name != "a.jpg" {
		t.Fatalf("accepted = %v", accepted)
	}
	if len(rejected) != 1 || rejected[0].Name != "b.jpg" {
		t.Fatalf("rejected = %v", rejected)
	}
	notices := notifier.all()
	if len(notices) != 1 || notices[0].level != "warn" ||
		notices[0].message != "b.jpg was skipped: only one file can be submitted at a time" {
		t.Errorf("notices = %+v, want one warning for b.jpg", notices)
	}
	if handled != nil {
		t.Fatal("single-file mode must wait for Submit")
	}

	if err := surface.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(handled) != 1 || handled[0].Name != "a.jpg" {
		t.Errorf("handled = %v", handled)
	}

	surface.Clear()
	if len(surface.Selected()) != 0 {
		t.Error("Clear() left a selection")
	}
	if err := surface.Submit(); !errors.Is(err, domain.ErrNoFileSelected) {
		t.Errorf("Submit() after Clear error = %v, want ErrNoFileSelected", err)
	}
}

func TestUploadSurface_FromURL(t *testing.T) {
	fetcher := &mockFetcher{payloads: map[string][]byte{
		"https://img.example.com/photos/cat.jpg": []byte("jpeg-bytes"),
	}}
	surface := NewUploadSurface(NewSettingsStore(domain.DefaultSettings()), &mockNotifier{}, fetcher, nil, UploadOptions{
		TempDir: t.TempDir(),
	})

	file, err := surface.FromURL(context.Background(), "https://img.example.com/photos/cat.jpg")
	if err != nil {
		t.Fatalf("FromURL() error = %v", err)
	}
	if file.Name != "cat.jpg" || file.Size != int64(len("jpeg-bytes")) {
		t.Errorf("file = %+v", file)
	}
	if _, err := os.Stat(file.Path); err != nil {
		t.Errorf("downloaded file missing: %v", err)
	}
}

func TestUploadSurface_FromURLRejectsBadURL(t *testing.T) {
	fetcher := &mockFetcher{}
	surface := NewUploadSurface(NewSettingsStore(domain.DefaultSettings()), &mockNotifier{}, fetcher, nil, UploadOptions{})

	for _, raw := range []string{"", "ftp://example.com/a.jpg", "not a url", "file:///etc/passwd"} {
		if _, err := surface.FromURL(context.Background(), raw); !errors.Is(err, domain.ErrInvalidURL) {
			t.Errorf("FromURL(%q) error = %v, want ErrInvalidURL", raw, err)
		}
	}
	if fetcher.fetches != 0 {
		t.Errorf("fetcher called %d times for invalid URLs", fetcher.fetches)
	}
}

func TestUploadSurface_FromCloudDrive(t *testing.T) {
	auth := &mockAuth{}
	surface := NewUploadSurface(NewSettingsStore(domain.DefaultSettings()), &mockNotifier{}, nil, auth, UploadOptions{})

	err := surface.FromCloudDrive(context.Background())
	if !errors.Is(err, domain.ErrCloudImportUnsupported) {
		t.Errorf("FromCloudDrive() error = %v, want ErrCloudImportUnsupported", err)
	}
	if auth.signIns != 1 {
		t.Errorf("signIns = %d, want 1", auth.signIns)
	}
}
