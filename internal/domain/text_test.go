package domain

import "testing"

func TestTruncateText(t *testing.T) {
	tests := []struct {
		text string
		max  int
		want string
	}{
		{text: "short", max: 10, want: "short"},
		{text: "exactly10!", max: 10, want: "exactly10!"},
		{text: "this is too long", max: 7, want: "this is..."},
		{text: "ಬೆಂಗಳೂರು", max: 2, want: "ಬೆ..."},
	}
	for _, tt := range tests {
		if got := TruncateText(tt.text, tt.max); got != tt.want {
			t.Errorf("TruncateText(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := map[int64]string{
		0:               "0 Bytes",
		512:             "512 Bytes",
		1024:            "1 KB",
		1536:            "1.5 KB",
		5 * 1024 * 1024: "5 MB",
		1288490189:      "1.2 GB",
	}
	for in, want := range tests {
		if got := FormatFileSize(in); got != want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", in, got, want)
		}
	}
}
