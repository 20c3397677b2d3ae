package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wizzomafizzo/rebrand/internal/config"
	"github.com/wizzomafizzo/rebrand/internal/constants"
	"github.com/wizzomafizzo/rebrand/internal/logging"
	"github.com/wizzomafizzo/rebrand/internal/project"
	"github.com/wizzomafizzo/rebrand/internal/prompt"
	"github.com/wizzomafizzo/rebrand/internal/rebrand"
)

var errUsage = errors.New("expected exactly two arguments: NEW_PROJECT_NAME NEW_PACKAGE")

// environment holds what the command touches outside its flags, so tests can
// swap the filesystem, log sink and prompt.
type environment struct {
	fs          afero.Fs
	logWriter   io.Writer
	newPrompter func() prompt.Prompter
	findRoot    func() (string, error)
}

func defaultEnvironment() environment {
	return environment{
		fs:          afero.NewOsFs(),
		newPrompter: prompt.NewLinerPrompter,
		findRoot:    project.FindRoot,
	}
}

type rootOptions struct {
	root        string
	configPath  string
	onConflict  string
	logLevel    string
	failFast    bool
	dryRun      bool
	confirm     bool
	printConfig bool
}

// createRootCommand creates the rebrand command.
func createRootCommand(env environment) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   constants.AppName + " [flags] NEW_PROJECT_NAME NEW_PACKAGE",
		Short: "Rebrand the KMP App Template with a new project name and package",
		Long: `Rebrand replaces the template's package name, app name, project name and
Compose resources prefix in every text file of the project, then moves the
package directories under each Kotlin source set to the new package path.`,
		Example: "  " + constants.AppName + " MyApp com.example.myapp\n" +
			"  " + constants.AppName + " --dry-run --on-conflict rename MyApp com.example.myapp",
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.printConfig {
				return nil
			}
			if len(args) != 2 {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return errUsage
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.printConfig {
				return printDefaultConfig(cmd.OutOrStdout())
			}
			return runRebrand(cmd, env, opts, args[0], args[1])
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.root, "root", "r", "", "Project root (default: discovered from the working directory)")
	flags.StringVarP(&opts.configPath, "config", "c", "",
		"Path to config file (default: "+constants.ConfigFilename+" in the project root, if present)")
	flags.BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first file that cannot be updated")
	flags.StringVar(&opts.onConflict, "on-conflict", "", "Relocation conflict policy: fail, rename or overwrite")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Report what would change without writing anything")
	flags.BoolVar(&opts.confirm, "confirm", false, "Ask for confirmation before changing files")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: trace, debug, info, warn or error")
	flags.BoolVar(&opts.printConfig, "print-config", false, "Print the default config as YAML and exit")

	return rootCmd
}

func printDefaultConfig(out io.Writer) error {
	data, err := config.DefaultConfigYAML()
	if err != nil {
		return fmt.Errorf("failed to render default config: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}

func runRebrand(cmd *cobra.Command, env environment, opts *rootOptions, projectName, packageID string) error {
	root, err := resolveRoot(env, opts.root)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(env.fs, opts.configPath, root)
	if err != nil {
		return err
	}
	if opts.failFast {
		cfg.OnError = config.FailFast
	}
	if opts.onConflict != "" {
		policy, err := config.ParseConflictPolicy(opts.onConflict)
		if err != nil {
			return err //nolint:wrapcheck // message already names the flag value
		}
		cfg.OnConflict = policy
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err //nolint:wrapcheck // message already names the level
	}

	// Everything the user passed is validated before any file is touched.
	plan, err := rebrand.NewPlan(cfg.Old, projectName, packageID)
	if err != nil {
		return err //nolint:wrapcheck // already descriptive
	}

	ctx, err := logging.New(cmd.Context(), env.fs, logging.Config{
		Writer:   env.logWriter,
		Fallback: cmd.ErrOrStderr(),
		Root:     root,
		Level:    level,
		DryRun:   opts.dryRun,
	})
	if err != nil {
		return err //nolint:wrapcheck // already descriptive
	}

	if opts.confirm && !opts.dryRun {
		confirmed, err := askConfirmation(cmd, env, root, plan)
		if err != nil {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted, no files were changed.")
			return nil
		}
	}

	runner, err := rebrand.NewRunner(env.fs, rebrand.Options{
		Config: cfg,
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		DryRun: opts.dryRun,
	})
	if err != nil {
		return err //nolint:wrapcheck // already descriptive
	}

	if _, err := runner.Run(ctx, root, plan); err != nil {
		return err //nolint:wrapcheck // already descriptive
	}
	return nil
}

func resolveRoot(env environment, flagRoot string) (string, error) {
	root := flagRoot
	if root == "" {
		found, err := env.findRoot()
		if err != nil {
			return "", fmt.Errorf("failed to find project root: %w", err)
		}
		root = found
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project root: %w", err)
	}

	info, err := env.fs.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project root %s is not a directory", abs)
	}
	return abs, nil
}

// loadConfig prefers an explicit --config, then rebrand.yml in the project
// root, then the built-in defaults.
func loadConfig(fs afero.Fs, configPath, root string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFs(fs, configPath) //nolint:wrapcheck // already descriptive
	}

	candidate := filepath.Join(root, constants.ConfigFilename)
	if exists, err := afero.Exists(fs, candidate); err == nil && exists {
		return config.LoadFs(fs, candidate) //nolint:wrapcheck // already descriptive
	}

	return config.LoadDefault() //nolint:wrapcheck // already descriptive
}

func askConfirmation(cmd *cobra.Command, env environment, root string, plan *rebrand.Plan) (bool, error) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Project root: %s\n", root)
	for _, sub := range plan.Substitutions {
		_, _ = fmt.Fprintf(out, "  %s: %s -> %s\n", sub.Label, sub.Old, sub.New)
	}

	prompter := env.newPrompter()
	defer func() { _ = prompter.Close() }()

	confirmed, err := prompt.Confirm(prompter, "Rebrand this project?")
	if err != nil {
		return false, err //nolint:wrapcheck // ErrCancelled is meaningful as-is
	}
	return confirmed, nil
}
