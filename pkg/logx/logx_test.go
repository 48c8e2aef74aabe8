package logx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dslr/pkg/config"
)

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dslr.log")
	cfg := config.Default().Log
	cfg.File = path

	log, err := New(cfg)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("trained")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"trained"`)
	assert.NotContains(t, string(raw), "hidden")
}

func TestNewRejectsLevel(t *testing.T) {
	cfg := config.Default().Log
	cfg.Level = "chatty"
	_, err := New(cfg)
	assert.Error(t, err)
}
