package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesJSONFile(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger("test", logDir)
	require.NoError(t, err)

	logger.Debug("debug goes to the file only")
	_ = logger.Sync()

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "test_")

	content, err := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "debug goes to the file only")
	assert.Contains(t, string(content), `"env":"test"`)
}

func TestInitLogger_ConsoleOnly(t *testing.T) {
	logger, err := InitLogger("test", "")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
