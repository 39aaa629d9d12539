package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/talenthub/internal/app/system/htmlsanitize"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Hello, World!", "Hello, World!"},
		{"trims", "  hi there \n", "hi there"},
		{"strips formatting", "<p><strong>Bold</strong> move</p>", "Bold move"},
		{"drops script body", "<p>Hello</p><script>alert('xss')</script>", "Hello"},
		{"drops handlers", `<button onclick="alert('xss')">Click</button>`, "Click"},
		{"keeps ampersand", "Tom & Jerry", "Tom & Jerry"},
		{"keeps comparison", "budget < 5k", "budget < 5k"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
