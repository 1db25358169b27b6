package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "twisty.yaml")
	cfg := `
animation:
  duration: 250ms
gesture:
  min_drag: 24
camera:
  yaw: -45
log:
  level: debug
  file: stderr
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, c.Animation.Duration)
	assert.Equal(t, 24.0, c.Gesture.MinDrag)
	assert.Equal(t, -45.0, c.Camera.Yaw)
	assert.Equal(t, 25.0, c.Camera.Pitch)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "stderr", c.Log.File)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "twisty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, c.Animation.Duration)
	assert.Equal(t, 10.0, c.Gesture.MinDrag)
	assert.Equal(t, 35.0, c.Camera.Yaw)
	assert.Equal(t, 25.0, c.Camera.Pitch)
	assert.Equal(t, 7.5, c.Camera.Distance)
	assert.Equal(t, 40.0, c.Camera.FOV)
	assert.Equal(t, 30, c.Render.FPS)
	assert.Equal(t, 8, c.Render.CellWidth)
	assert.Equal(t, 16, c.Render.CellHeight)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, ExpandHome("~/.twisty/twisty.log"), c.Log.File)
	assert.Equal(t, 5*time.Second, c.BLE.ScanTimeout)
	assert.Equal(t, 150*time.Millisecond, c.Mirror.Duration)
	assert.Equal(t, 800, c.Snapshot.Width)
	assert.Equal(t, 600, c.Snapshot.Height)
	assert.Equal(t, 1, c.Snapshot.Views)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("TWISTY_ANIMATION_DURATION", "1s")
	t.Setenv("TWISTY_RENDER_FPS", "60")

	dir := t.TempDir()
	path := filepath.Join(dir, "twisty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"render": {"fps": 20}}`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, c.Animation.Duration)
	assert.Equal(t, 60, c.Render.FPS)
	assert.Equal(t, time.Second/60, c.Render.FrameInterval())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	_, err := Load("/nonexistent/path/twisty.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "twisty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"render": {"fps": 0}}`), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x.log"), ExpandHome("~/x.log"))
	assert.Equal(t, "/tmp/x.log", ExpandHome("/tmp/x.log"))
	assert.Equal(t, "stderr", ExpandHome("stderr"))
}

func TestDefaultMatchesLoad(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "twisty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, loaded, Default())
	assert.NoError(t, Default().Validate())
}
