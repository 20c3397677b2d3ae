// Package constants contains file names and environment keys shared across rebrand.
package constants

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "rebrand"

	// LogFilename is the default log file name for rebrand.
	LogFilename = "rebrand.log"

	// ConfigFilename is the optional per-project config file looked up in the project root.
	ConfigFilename = "rebrand.yml"

	// ProjectDirEnv overrides project root discovery when set to an existing directory.
	ProjectDirEnv = "REBRAND_PROJECT_DIR"
)
