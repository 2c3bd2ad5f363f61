package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_Level(t *testing.T) {
	logger := log.New()
	var buf bytes.Buffer

	cfg := DefaultConfig()
	cfg.Level = "warn"
	cfg.Color = false

	closer, err := Configure(logger, cfg, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hidden")
	logger.WithField("camera", 0).Warn("Camera read failed.")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Camera read failed.")
	assert.Contains(t, out, "camera:0")
}

func TestConfigure_InvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"

	_, err := Configure(log.New(), cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestConfigure_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "edgerunner.log")

	logger := log.New()
	cfg := DefaultConfig()
	cfg.File = file
	cfg.Color = false

	closer, err := Configure(logger, cfg, &bytes.Buffer{})
	require.NoError(t, err)

	logger.Info("Perception loop started.")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Perception loop started.")
}
