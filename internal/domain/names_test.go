package domain

import "testing"

func TestUniqueName(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "repeats",
			in:   []string{"a.png", "a.png", "a.png"},
			want: []string{"a.png", "a-1.png", "a-2.png"},
		},
		{
			name: "literal suffix after repeat",
			in:   []string{"a.png", "a.png", "a-1.png"},
			want: []string{"a.png", "a-1.png", "a-1-1.png"},
		},
		{
			name: "literal suffix before repeat",
			in:   []string{"a-1.png", "a.png", "a.png"},
			want: []string{"a-1.png", "a.png", "a-2.png"},
		},
		{
			name: "no extension",
			in:   []string{"image", "image"},
			want: []string{"image", "image-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := map[string]int{}
			used := map[string]bool{}
			for i, in := range tt.in {
				got := UniqueName(in, seen)
				if got != tt.want[i] {
					t.Errorf("UniqueName(%q) #%d = %q, want %q", in, i, got, tt.want[i])
				}
				if used[got] {
					t.Errorf("UniqueName(%q) returned %q twice", in, got)
				}
				used[got] = true
			}
		})
	}
}
