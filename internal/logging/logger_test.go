package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "happydash.log")
	l, err := New("info", path)
	require.NoError(t, err)

	l.With("view", "map").Info("dataset loaded", "records", 3)
	l.Debug("hidden")
	l.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1, "debug is below the configured level")
	assert.Contains(t, lines[0], `"msg":"dataset loaded"`)
	assert.Contains(t, lines[0], `"view":"map"`)
	assert.Contains(t, lines[0], `"records":3`)
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	l, err := New("debug", "")
	require.NoError(t, err)
	l.Error("dropped")
	l.Sync()
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("loud", filepath.Join(t.TempDir(), "x.log"))
	assert.Error(t, err)

	_, err = NewConsole("loud")
	assert.Error(t, err)
}
