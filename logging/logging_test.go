package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "craftshelf.log")
	logger, err := New("debug", path)
	require.NoError(t, err)

	logger.Debug("catalog loaded", zap.Int("products", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry))
	require.Equal(t, "DEBUG", entry["severity"])
	require.Equal(t, "catalog loaded", entry["message"])
	require.EqualValues(t, 3, entry["products"])
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "craftshelf.log")
	logger, err := New("loud", path)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden")
	require.Contains(t, string(data), "shown")
}

func TestNewDiscard(t *testing.T) {
	t.Parallel()

	logger, err := New("info", "-")
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestDefaultTUIPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	require.Equal(t, filepath.Join("/tmp/state", "craftshelf", "craftshelf.log"), DefaultTUIPath())
}
