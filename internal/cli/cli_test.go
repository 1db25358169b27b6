package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/gocube"
)

func TestParseTurns(t *testing.T) {
	anim := twisty.NewAnimator(twisty.NewGrid(), twisty.WithDuration(0))

	moves, err := parseTurns(anim, "red, x0', white,z-1")
	require.NoError(t, err)
	require.Len(t, moves, 4)
	assert.Equal(t, twisty.Turn(twisty.AxisX, 1, -1), moves[0])
	assert.Equal(t, twisty.Turn(twisty.AxisX, 0, -1), moves[1])
	assert.Equal(t, twisty.Turn(twisty.AxisZ, -1, 1), moves[3])
	assert.True(t, anim.Grid().Settled())

	// x0' carried the white center from +y to -z.
	assert.Equal(t, twisty.Turn(twisty.AxisZ, -1, 1), moves[2])
}

func TestParseTurnsErrors(t *testing.T) {
	anim := twisty.NewAnimator(twisty.NewGrid(), twisty.WithDuration(0))

	_, err := parseTurns(anim, "purple")
	assert.ErrorIs(t, err, twisty.ErrInvalidColor)

	_, err = parseTurns(anim, "w1")
	assert.ErrorIs(t, err, twisty.ErrInvalidAxis)

	_, err = parseTurns(anim, "x2")
	assert.Error(t, err)

	for _, list := range []string{"'", "red,'", "x1, ' "} {
		assert.NotPanics(t, func() {
			_, err = parseTurns(anim, list)
		}, list)
		assert.ErrorContains(t, err, "empty turn", list)
	}

	_, err = parseTurns(anim, "x")
	assert.ErrorIs(t, err, twisty.ErrInvalidColor)

	moves, err := parseTurns(anim, "")
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestOutputPaths(t *testing.T) {
	assert.Equal(t, []string{"a.png"}, outputPaths("a.png", 1))
	assert.Equal(t, []string{"out/a-1.png", "out/a-2.png"}, outputPaths("out/a.png", 2))
}

func TestPickDevice(t *testing.T) {
	results := []gocube.ScanResult{{Name: "GoCube_A"}, {Name: "GoCube_B"}}

	r, ok := pickDevice(results, "")
	require.True(t, ok)
	assert.Equal(t, "GoCube_A", r.Name)

	r, ok = pickDevice(results, "gocube_b")
	require.True(t, ok)
	assert.Equal(t, "GoCube_B", r.Name)

	_, ok = pickDevice(results, "GoCube_C")
	assert.False(t, ok)
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("snapshot:\n  width: 64\n  height: 48\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--config", cfgFile, "--log-file", filepath.Join(dir, "twisty.log")))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestSnapshotCommand(t *testing.T) {
	dir := t.TempDir()
	out := execute(t, "snapshot", "--out", filepath.Join(dir, "cube.png"), "--views", "2", "--turns", "red,blue'")

	assert.Contains(t, out, "cube-1.png")
	assert.FileExists(t, filepath.Join(dir, "cube-1.png"))
	assert.FileExists(t, filepath.Join(dir, "cube-2.png"))
	assert.Equal(t, 64, cfg.Snapshot.Width)
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "twisty "+version+"\n", out)
}
