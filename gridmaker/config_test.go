package gridmaker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadPresetUnknownNameErrors(t *testing.T) {
	_, err := LoadPreset("does-not-exist")
	require.Error(t, err)
}

func TestLoadPresetLibmolgridDefault(t *testing.T) {
	p, err := LoadPreset("libmolgrid-default")
	require.NoError(t, err)
	require.Equal(t, 0.5, p.Resolution)
	require.Equal(t, 23.5, p.Dimension)
}

func TestNewFromPresetAppliesBundledGeometry(t *testing.T) {
	g, err := NewFromPreset("libmolgrid-default")
	require.NoError(t, err)
	require.Equal(t, 0.5, g.Resolution())
	require.Equal(t, 48, g.Dim())
}

func TestNewFromPresetAllowsOverridingOptions(t *testing.T) {
	g, err := NewFromPreset("libmolgrid-default", WithBinary(true))
	require.NoError(t, err)
	require.True(t, g.Binary())
}

func TestLoadPresetFileParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")
	content := []byte("name: custom\nresolution: 0.25\ndimension: 10\nradius_scale: 1.0\ngaussian_radius_multiple: 1.0\nbinary: false\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	p, err := LoadPresetFile(path)
	require.NoError(t, err)
	require.Equal(t, "custom", p.Name)
	require.Equal(t, 0.25, p.Resolution)
}

func TestLoadPresetFileRejectsNonPositiveResolution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")
	content := []byte("name: bad\nresolution: 0\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	_, err := LoadPresetFile(path)
	require.Error(t, err)
}

func TestLoadPresetFileMissingFileErrors(t *testing.T) {
	_, err := LoadPresetFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
