package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	require.NoError(t, config.Validate())

	assert.Equal(t, "com.jetbrains.kmpapp", config.Old.Package)
	assert.Equal(t, "KMP App", config.Old.AppName)
	assert.Equal(t, "KMP-App-Template", config.Old.ProjectName)
	assert.Equal(t, "kmp_app_template", config.Old.ResourcePrefix)
	assert.Equal(t, BestEffort, config.OnError)
	assert.Equal(t, ConflictFail, config.OnConflict)
	assert.Len(t, config.SourceBases, 4)
}

func TestDefaultConfig_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	first := DefaultConfig()
	first.SkipPatterns[0] = "changed"
	first.SourceBases[0] = "changed"

	second := DefaultConfig()
	assert.Equal(t, DefaultSkipPatterns[0], second.SkipPatterns[0])
	assert.Equal(t, DefaultSourceBases[0], second.SourceBases[0])
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mutate  func(*Config)
		name    string
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "empty app name",
			mutate:  func(c *Config) { c.Old.AppName = "" },
			wantErr: "old.app_name is required",
		},
		{
			name:    "empty resource prefix",
			mutate:  func(c *Config) { c.Old.ResourcePrefix = "" },
			wantErr: "old.resource_prefix is required",
		},
		{
			name:    "no source bases",
			mutate:  func(c *Config) { c.SourceBases = nil },
			wantErr: "at least one source base",
		},
		{
			name:    "blank source base",
			mutate:  func(c *Config) { c.SourceBases = []string{""} },
			wantErr: "cannot be empty",
		},
		{
			name:    "invalid error policy",
			mutate:  func(c *Config) { c.OnError = "retry" },
			wantErr: "invalid on_error policy",
		},
		{
			name:    "invalid skip regex",
			mutate:  func(c *Config) { c.SkipPatterns = append(c.SkipPatterns, "(") },
			wantErr: "invalid regex pattern",
		},
		{
			name:   "no skip patterns is allowed",
			mutate: func(c *Config) { c.SkipPatterns = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := DefaultConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseConflictPolicy(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"fail", "rename", "overwrite"} {
		policy, err := ParseConflictPolicy(valid)
		require.NoError(t, err)
		assert.Equal(t, ConflictPolicy(valid), policy)
	}

	_, err := ParseConflictPolicy("merge")
	require.Error(t, err)
}
