package cli

import "testing"

func TestExtensionPatterns(t *testing.T) {
	got := extensionPatterns([]string{".jpg", "png", "", ".heic"})
	want := []string{"*.jpg", "*.png", "*.heic"}

	if len(got) != len(want) {
		t.Fatalf("extensionPatterns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("extensionPatterns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
