package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.jpg", "c.png", ".hidden.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"single file", filepath.Join(dir, "a.jpg"), []string{"a.jpg"}, false},
		{"directory", dir, []string{"a.jpg", "b.jpg", "c.png"}, false},
		{"glob", filepath.Join(dir, "*.jpg"), []string{".hidden.jpg", "a.jpg", "b.jpg"}, false},
		{"glob without matches", filepath.Join(dir, "*.gif"), nil, true},
		{"missing file", filepath.Join(dir, "missing.jpg"), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expandPath() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if filepath.Base(got[i]) != tt.want[i] {
					t.Errorf("expandPath()[%d] = %q, want %q", i, filepath.Base(got[i]), tt.want[i])
				}
			}
		})
	}
}
