package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/furl/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSignatures(t *testing.T) {
	out, err := execute(t, "signatures")
	require.NoError(t, err)
	for _, want := range []string{"FurlBasic", "ia_curves", "RainbowCactus", "a_instance_log_rev", "u_pointsize", "mat4"} {
		assert.Contains(t, out, want)
	}
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Contains(t, lines[1], "Default")
	assert.Contains(t, lines[8], "Cup")

	out, err = execute(t, "presets", "--json", "alone-furl")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))

	out, err = execute(t, "presets", "empty")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"), "header only")
}

func TestFieldsets(t *testing.T) {
	out, err := execute(t, "fieldsets")
	require.NoError(t, err)
	assert.Contains(t, out, "qx3")
	assert.Contains(t, out, "a_0")

	_, err = execute(t, "fieldsets", "teapot")
	assert.ErrorIs(t, err, scene.ErrUnknownScene)
}

func TestRunHeadless(t *testing.T) {
	out, err := execute(t, "run", "--headless", "--frames", "3", "--scene", "rainbow-cactus", "-q")
	require.NoError(t, err)
	assert.Equal(t, "rainbow-cactus: 3 frames, 3 draw calls, 0.033s\n", out)
}

func TestRunHeadlessPresetAndOverrides(t *testing.T) {
	out, err := execute(t, "run", "--headless", "--frames", "2", "--preset", "2", "--guides", "all-1m", "--workers", "2", "-q")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "alone-furl: 2 frames"), out)
}

func TestRunRejectsBadFlags(t *testing.T) {
	tests := [][]string{
		{"run", "--headless", "--policy", "sometimes"},
		{"run", "--headless", "--scene", "teapot"},
		{"run", "--headless", "--camera", "fisheye"},
		{"run", "--headless", "--frames", "-1"},
		{"run", "--headless", "--preset", "99"},
		{"run", "-v", "-q", "--headless"},
	}
	for _, args := range tests {
		_, err := execute(t, args...)
		assert.Error(t, err, strings.Join(args, " "))
	}
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furl.toml")
	require.NoError(t, os.WriteFile(path, []byte("scene = \"rainbow-cactus\"\n[window]\ntitle = \"cactus\"\n"), 0o644))

	out, err := execute(t, "config", "--config", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "scene: rainbow-cactus")
	assert.Contains(t, out, "title: cactus")

	out, err = execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "alone-furl")
}
