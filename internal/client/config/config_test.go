package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8090", c.ServerURL)
	assert.Equal(t, "mytestapp", c.ApplicationID)
	assert.Equal(t, "1003452", c.WorkspaceID)
	assert.Equal(t, "/bin", c.LinkBasePath)
	assert.Equal(t, "file", c.FileField)
	assert.Empty(t, c.UserID)
	assert.False(t, c.Interactive)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"server_url":   "http://json:1",
		"workspace_id": "json-ws",
		"user_id":      "7",
	})
	t.Setenv("GOPHUPLOAD_WORKSPACE", "env-ws")
	t.Setenv("GOPHUPLOAD_APP", "env-app")
	os.Args = []string{"testbin", "-c", path, "-app", "flag-app", "photo.jpg"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://json:1", cfg.ServerURL)
	assert.Equal(t, "env-ws", cfg.WorkspaceID)
	assert.Equal(t, "flag-app", cfg.ApplicationID)
	assert.Equal(t, "7", cfg.UserID)
	assert.Equal(t, "file", cfg.FileField)
}

func TestPositional(t *testing.T) {
	args := []string{"-c", "conf.json", "-s", "http://h:1", "-i", "userId=1", "a.txt", "-", "-l", "debug"}
	assert.Equal(t, []string{"userId=1", "a.txt", "-"}, Positional(args))
}
