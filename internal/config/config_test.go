package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/account/internal/model"
	"github.com/idilsaglam/account/internal/photo"
)

func TestParseEmptyGivesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, model.DefaultPhoto, cfg.Photo.Placeholder)
	require.Equal(t, photo.DefaultMaxBytes, cfg.Photo.MaxBytes)
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level: debug
theme: neon
max_children: 4
photo:
  max_dimension: 400
sink:
  type: file
  path: out/account.json
`))
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "neon", cfg.Theme)
	require.Equal(t, 4, cfg.MaxChildren)
	require.Equal(t, 400, cfg.Photo.MaxDimension)
	require.Equal(t, photo.DefaultMaxBytes, cfg.Photo.MaxBytes, "unset keys keep defaults")
	require.Equal(t, SinkConfig{Type: SinkFile, Path: "out/account.json"}, cfg.Sink)
	require.Equal(t, photo.Options{MaxBytes: photo.DefaultMaxBytes, MaxDimension: 400}, cfg.PhotoOptions())
}

func TestParseRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":        "colour: red\n",
		"unknown sink":       "sink:\n  type: http\n",
		"file without path":  "sink:\n  type: file\n",
		"unknown theme":      "theme: disco\n",
		"negative limit":     "max_children: -1\n",
		"malformed document": "photo: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestLoadResolution(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvPath, "")

	cfg, err := Load("")
	require.NoError(t, err, "a missing default file means defaults")
	require.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err, "an explicit path must exist")

	envPath := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(envPath, []byte("theme: mono\n"), 0o600))
	t.Setenv(EnvPath, envPath)
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "mono", cfg.Theme)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("theme: neon\n"), 0o600))
	t.Setenv(EnvPath, "")
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "neon", cfg.Theme)
}
