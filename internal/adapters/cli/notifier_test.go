package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/devbush/swiftconvert/internal/ports"
)

func TestConsoleNotifier(t *testing.T) {
	tests := []struct {
		name   string
		quiet  bool
		notify func(n *ConsoleNotifier)
		want   []string
		empty  bool
	}{
		{
			name:   "warn",
			notify: func(n *ConsoleNotifier) { n.Warn("photo.png is not a JPG file") },
			want:   []string{"photo.png is not a JPG file"},
		},
		{
			name:   "quiet suppresses warn",
			quiet:  true,
			notify: func(n *ConsoleNotifier) { n.Warn("ignored") },
			empty:  true,
		},
		{
			name:   "quiet keeps errors",
			quiet:  true,
			notify: func(n *ConsoleNotifier) { n.Error("Error saving photos to Google Drive: quota") },
			want:   []string{"Error saving photos to Google Drive: quota"},
		},
		{
			name: "success with link",
			notify: func(n *ConsoleNotifier) {
				n.Success("Files uploaded to Google Drive! 🎉", "body", &ports.Link{Href: "https://drive.example/f", Text: "Open SwiftConvert Folder"})
			},
			want: []string{"Files uploaded to Google Drive! 🎉", "body", "Open SwiftConvert Folder", "https://drive.example/f"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.notify(NewConsoleNotifier(&buf, tt.quiet))

			out := buf.String()
			if tt.empty && out != "" {
				t.Errorf("expected no output, got %q", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}
