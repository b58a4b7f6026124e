package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/layout"
)

// isolate points the global config at an empty directory and runs the test
// from a fresh working directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, layout.DefaultConfig(), cfg.Layout)
	assert.Equal(t, 7*24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "kinship", cfg.Server.Mongo.Database)
	assert.Empty(t, cfg.Server.Mongo.URI)
	assert.True(t, cfg.Relations.PipelineRelations().IsZero())
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)

	writeFile(t, GlobalConfigPath(), `
language = "de"

[layout]
base_spacing = 120.0
spouse_spacing = 100.0

[server]
addr = ":9000"
`)
	writeFile(t, filepath.Join(dir, ProjectConfigFile), `
[layout]
base_spacing = 140.0

[relations]
parent = ["ma", "pa"]
exclude = ["foster"]

[cache]
ttl = "1h"

[cache.redis]
addr = "localhost:6379"
`)
	t.Setenv("KINSHIP_SERVER_ADDR", ":7000")

	cfg, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.Language, "global file")
	assert.Equal(t, 140.0, cfg.Layout.BaseSpacing, "project file overrides global")
	assert.Equal(t, 100.0, cfg.Layout.SpouseSpacing, "global value survives")
	assert.Equal(t, layout.DefaultVerticalSpacing, cfg.Layout.VerticalSpacing, "default survives")
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, ":7000", cfg.Server.Addr, "environment overrides files")

	rel := cfg.Relations.PipelineRelations()
	assert.Equal(t, map[string][]string{"parent": {"ma", "pa"}}, rel.Types)
	assert.Equal(t, []string{"foster"}, rel.Exclude)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("KINSHIP_LANGUAGE", "fr")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("language", "", "")
	require.NoError(t, flags.Parse([]string{"--language", "nl"}))

	v := NewViper()
	require.NoError(t, v.BindPFlag("language", flags.Lookup("language")))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "nl", cfg.Language)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "[server]\nlog_file = \"/var/log/kinship.log\"\n")

	v := NewViper()
	v.Set("config", path)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/var/log/kinship.log", cfg.Server.LogFile)

	v = NewViper()
	v.Set("config", filepath.Join(dir, "missing.toml"))
	_, err = Load(v)
	assert.Equal(t, kerrors.ErrCodeFileNotFound, kerrors.GetCode(err))
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[layout\nbase_spacing = 1"},
		{"min spacing above base", "[layout]\nmin_spacing = 500.0\n"},
		{"language", "language = \"!!\"\n"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeFile(t, filepath.Join(dir, ProjectConfigFile), tt.content)

			_, err := Load(NewViper())
			require.Error(t, err)
			assert.Equal(t, kerrors.ErrCodeInvalidConfig, kerrors.GetCode(err))
		})
	}
}
