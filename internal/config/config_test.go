package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saravenpi/chatview/internal/feed"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, feed.DefaultURL, cfg.Source)
	assert.Equal(t, "You", cfg.LocalSender)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := "source: ./rooms.json\nlocal_sender: Me\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./rooms.json", cfg.Source)
	assert.Equal(t, "Me", cfg.LocalSender)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("CHATVIEW_SOURCE", "sqlite:///tmp/rooms.db")
	t.Setenv("CHATVIEW_LOG_FILE", "/tmp/chatview.log")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite:///tmp/rooms.db", cfg.Source)
	assert.Equal(t, "/tmp/chatview.log", cfg.LogFile)
	assert.Equal(t, "Me", cfg.LocalSender)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("source: [unterminated"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "config.yml", filepath.Base(DefaultPath()))
	assert.Equal(t, ".chatview", filepath.Base(GetConfigDir()))
}
