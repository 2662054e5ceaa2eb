package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Norway", 10, "Norway"},
		{"Norway", 6, "Norway"},
		{"Norway", 4, "Nor…"},
		{"Norway", 0, ""},
		{"日本語", 4, "日…"},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.width)
		assert.Equal(t, tt.want, got, "Truncate(%q, %d)", tt.in, tt.width)
		assert.LessOrEqual(t, VisualWidth(got), max(tt.width, 0))
	}
}

func TestFit(t *testing.T) {
	assert.Equal(t, "Kenya   ", Fit("Kenya", 8))
	assert.Equal(t, "Ken…", Fit("Kenya", 4))
	assert.Equal(t, "", Fit("Kenya", 0))
	assert.Equal(t, 2, VisualWidth("日"))
}
