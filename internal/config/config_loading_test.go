package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "rebrand.yml")

	yamlContent := `old:
  package: org.sample.template
  app_name: Sample App
  project_name: Sample-Template
  resource_prefix: sample_template
on_error: fail-fast
on_conflict: rename
source_bases:
  - app/src/main/kotlin
`

	err := os.WriteFile(configFile, []byte(yamlContent), 0o600)
	require.NoError(t, err, "Should be able to write test config file")

	config, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "org.sample.template", config.Old.Package)
	assert.Equal(t, "Sample App", config.Old.AppName)
	assert.Equal(t, "Sample-Template", config.Old.ProjectName)
	assert.Equal(t, "sample_template", config.Old.ResourcePrefix)
	assert.Equal(t, FailFast, config.OnError)
	assert.Equal(t, ConflictRename, config.OnConflict)
	assert.Equal(t, []string{"app/src/main/kotlin"}, config.SourceBases)
	assert.Equal(t, DefaultSkipPatterns, config.SkipPatterns, "unset keys keep defaults")
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	config, err := LoadFromYAML([]byte("on_conflict: overwrite\n"))
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.Old, config.Old)
	assert.Equal(t, ConflictOverwrite, config.OnConflict)
	assert.Equal(t, BestEffort, config.OnError)
	assert.Equal(t, defaults.SourceBases, config.SourceBases)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown error policy",
			yaml:    "on_error: sometimes\n",
			wantErr: "invalid on_error policy",
		},
		{
			name:    "unknown conflict policy",
			yaml:    "on_conflict: merge\n",
			wantErr: "invalid on_conflict policy",
		},
		{
			name:    "bad skip regex",
			yaml:    "skip:\n  - \"[unclosed\"\n",
			wantErr: "invalid regex pattern",
		},
		{
			name:    "empty old package",
			yaml:    "old:\n  package: \"\"\n",
			wantErr: "old.package is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadFromYAML([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultConfigYAML_RoundTripsThroughLoad(t *testing.T) {
	t.Parallel()

	data, err := DefaultConfigYAML()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Contains(t, raw, "old")
	assert.Contains(t, raw, "skip")

	config, err := LoadFromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadFs_ReadsFromGivenFilesystem(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/project/rebrand.yml", []byte("on_error: fail-fast\n"), 0o600))

	config, err := LoadFs(fs, "/project/rebrand.yml")
	require.NoError(t, err)
	assert.Equal(t, FailFast, config.OnError)
}
