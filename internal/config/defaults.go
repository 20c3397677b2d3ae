package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultSkipPatterns excludes VCS metadata, build output, binary assets,
// Xcode user state and the rebrand tool itself.
var DefaultSkipPatterns = []string{
	`(^|/)\.git(/|$)`,
	`(^|/)build(/|$)`,
	`(^|/)\.gradle(/|$)`,
	`composeApp/build(/|$)`,
	`(?i)\.(png|jpg|jpeg|gif|webp|ico|jar)$`,
	`\.xcuserstate$`,
	`\.xcassets(/|$)`,
	`/xcuserdata/`,
	`rebrand\.(sh|ts|yml)$`,
	`(^|/)cmd/rebrand(/|$)`,
	// the tool's module is checked out under tools/rebrand inside the project
	`(^|/)tools/rebrand(/|$)`,
}

// DefaultSourceBases are the Kotlin source sets of the KMP template.
var DefaultSourceBases = []string{
	"composeApp/src/commonMain/kotlin",
	"composeApp/src/androidMain/kotlin",
	"composeApp/src/iosMain/kotlin",
	"composeApp/src/androidInstrumentedTest/kotlin",
}

// DefaultConfig returns the configuration for the KMP App Template
func DefaultConfig() *Config {
	return &Config{
		Old: Identity{
			Package:        "com.jetbrains.kmpapp",
			AppName:        "KMP App",
			ProjectName:    "KMP-App-Template",
			ResourcePrefix: "kmp_app_template",
		},
		OnError:      BestEffort,
		OnConflict:   ConflictFail,
		SkipPatterns: append([]string(nil), DefaultSkipPatterns...),
		SourceBases:  append([]string(nil), DefaultSourceBases...),
	}
}

// DefaultConfigYAML returns the default configuration as YAML bytes
func DefaultConfigYAML() ([]byte, error) {
	config := DefaultConfig()
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config to YAML: %w", err)
	}
	return data, nil
}
