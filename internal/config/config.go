package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// ErrorPolicy controls how the rewriter reacts to a per-file failure.
type ErrorPolicy string

const (
	// BestEffort logs the failure and keeps processing the remaining files.
	BestEffort ErrorPolicy = "best-effort"
	// FailFast stops at the first failure and returns it.
	FailFast ErrorPolicy = "fail-fast"
)

// ConflictPolicy controls what the relocator does when a destination entry already exists.
type ConflictPolicy string

const (
	// ConflictFail merges directories and refuses to move anything in a base
	// when a destination file already exists.
	ConflictFail ConflictPolicy = "fail"
	// ConflictRename merges directories and moves colliding files aside as name.N.ext.
	ConflictRename ConflictPolicy = "rename"
	// ConflictOverwrite moves direct entries shallowly, replacing whatever is at the destination.
	ConflictOverwrite ConflictPolicy = "overwrite"
)

// EnvPrefix is the prefix for environment variable overrides (REBRAND_ON_ERROR etc).
const EnvPrefix = "REBRAND"

// Identity is the set of template identifiers the tool searches for.
type Identity struct {
	Package        string `yaml:"package" mapstructure:"package"`
	AppName        string `yaml:"app_name" mapstructure:"app_name"`
	ProjectName    string `yaml:"project_name" mapstructure:"project_name"`
	ResourcePrefix string `yaml:"resource_prefix" mapstructure:"resource_prefix"`
}

type Config struct {
	Old          Identity       `yaml:"old" mapstructure:"old"`
	OnError      ErrorPolicy    `yaml:"on_error" mapstructure:"on_error"`
	OnConflict   ConflictPolicy `yaml:"on_conflict" mapstructure:"on_conflict"`
	SkipPatterns []string       `yaml:"skip" mapstructure:"skip"`
	SourceBases  []string       `yaml:"source_bases" mapstructure:"source_bases"`
}

// Load reads a YAML config file on top of the defaults. Keys missing from
// the file keep their default value.
func Load(path string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs is like Load but reads the file from fs.
func LoadFs(fs afero.Fs, path string) (*Config, error) {
	viperInstance := newViper()
	viperInstance.SetFs(fs)
	viperInstance.SetConfigFile(path)

	if err := viperInstance.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return unmarshal(viperInstance)
}

// LoadFromYAML loads config from YAML bytes - helper for tests
func LoadFromYAML(data []byte) (*Config, error) {
	viperInstance := newViper()
	viperInstance.SetConfigType("yaml")

	if err := viperInstance.ReadConfig(strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return unmarshal(viperInstance)
}

// LoadDefault returns the defaults with environment overrides applied.
func LoadDefault() (*Config, error) {
	return unmarshal(newViper())
}

func newViper() *viper.Viper {
	viperInstance := viper.New()
	defaults := DefaultConfig()

	viperInstance.SetDefault("old.package", defaults.Old.Package)
	viperInstance.SetDefault("old.app_name", defaults.Old.AppName)
	viperInstance.SetDefault("old.project_name", defaults.Old.ProjectName)
	viperInstance.SetDefault("old.resource_prefix", defaults.Old.ResourcePrefix)
	viperInstance.SetDefault("on_error", string(defaults.OnError))
	viperInstance.SetDefault("on_conflict", string(defaults.OnConflict))
	viperInstance.SetDefault("skip", defaults.SkipPatterns)
	viperInstance.SetDefault("source_bases", defaults.SourceBases)

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	return viperInstance
}

func unmarshal(viperInstance *viper.Viper) (*Config, error) {
	var config Config
	if err := viperInstance.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate performs comprehensive config validation
func (c *Config) Validate() error {
	if err := c.Old.Validate(); err != nil {
		return err
	}

	switch c.OnError {
	case BestEffort, FailFast:
	default:
		return fmt.Errorf("invalid on_error policy '%s': must be one of: best-effort, fail-fast", c.OnError)
	}

	if _, err := ParseConflictPolicy(string(c.OnConflict)); err != nil {
		return err
	}

	for i, pattern := range c.SkipPatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("skip pattern %d: invalid regex pattern '%s': %w", i+1, pattern, err)
		}
	}

	if len(c.SourceBases) == 0 {
		return errors.New("at least one source base directory is required")
	}
	for _, base := range c.SourceBases {
		if base == "" {
			return errors.New("source base directory cannot be empty")
		}
	}

	return nil
}

// Validate requires every old identifier to be set, since an empty token
// would match everywhere.
func (id *Identity) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"old.package", id.Package},
		{"old.app_name", id.AppName},
		{"old.project_name", id.ProjectName},
		{"old.resource_prefix", id.ResourcePrefix},
	}
	for _, field := range fields {
		if field.value == "" {
			return fmt.Errorf("%s is required and cannot be empty", field.name)
		}
	}
	return nil
}

// ParseConflictPolicy converts a flag or config value into a ConflictPolicy.
func ParseConflictPolicy(value string) (ConflictPolicy, error) {
	switch policy := ConflictPolicy(value); policy {
	case ConflictFail, ConflictRename, ConflictOverwrite:
		return policy, nil
	default:
		return "", fmt.Errorf("invalid on_conflict policy '%s': must be one of: fail, rename, overwrite", value)
	}
}
