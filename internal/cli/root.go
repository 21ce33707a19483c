// Package cli provides the command-line scaffolding for appcore: display
// and logging options, the Application that prepares global state around a
// command, and the introspection commands.
package cli

import (
	"context"
	stderrors "errors"

	"github.com/ariel-frischer/appcore/internal/build"
	apperrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/spf13/cobra"
)

// Command groups for help output.
const (
	GroupIntrospection  = "introspection"
	GroupGettingStarted = "getting-started"
)

// NewRootCmd builds the appcore command tree around app. Running the root
// command without a subcommand shows the configuration.
func NewRootCmd(app *Application) *cobra.Command {
	var versionPlain bool

	rootCmd := &cobra.Command{
		Use:   "appcore",
		Short: "Inspect application configuration, environment and directories",
		Long: `Inspect how appcore prepares an application.

Configuration is acquired with the following priority (highest to lowest):
  1. Configuration edits
  2. Files listed under 'includes' (later files win)
  3. The user configuration file (--config or general.toml)
  4. The distribution's configuration template`,
		Example: `  # Show the finalized configuration
  appcore configuration

  # Show directories as JSON
  appcore directories --presentation json

  # Show application environment variables, writing to a file
  appcore environment --console-file env.toml --presentation toml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), "configuration", ConfigurationCommand{Display: &app.Display})
		},
	}
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupIntrospection, Title: "Introspection:"},
		&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.ConfigFile, "config", app.ConfigFile, "Path to configuration file")
	flags.BoolVar(&app.Environment, "environment", app.Environment, "Load environment from dotenv files")
	app.Display.AddFlags(flags)
	app.Inscription.AddFlags(flags)
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return checkTargetFlags(cmd)
	}

	introspect := func(use, short string, command Command) *cobra.Command {
		return &cobra.Command{
			Use:     use,
			Short:   short,
			GroupID: GroupIntrospection,
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Run(cmd.Context(), use, command)
			},
		}
	}
	rootCmd.AddCommand(
		introspect("configuration", "Show the finalized application configuration",
			ConfigurationCommand{Display: &app.Display}),
		introspect("environment", "Show application-specific environment variables",
			EnvironmentCommand{Display: &app.Display}),
		introspect("directories", "Show application and package directories",
			DirectoriesCommand{Display: &app.Display}),
	)

	versionCmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		GroupID: GroupGettingStarted,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if versionPlain {
				build.Fprint(cmd.OutOrStdout(), rootCmd.Name())
				return
			}
			cmd.Printf("%s %s (%s)\n", rootCmd.Name(), build.Version, build.ShortCommit())
		},
	}
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Full plain output for scripts")
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// Execute runs the command tree of app with args and returns the process
// exit code. Errors not yet reported by the application, such as flag
// parsing errors, are printed to the command's error stream.
func Execute(ctx context.Context, app *Application, args []string) int {
	rootCmd := NewRootCmd(app)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		apperrors.FprintError(rootCmd.ErrOrStderr(), cliErr, false)
		return ExitCode(cliErr)
	}
	apperrors.FprintError(rootCmd.ErrOrStderr(), apperrors.NewArgumentErrorWithUsage(err.Error(), rootCmd.UseLine()), false)
	return ExitInvalidArguments
}

// checkTargetFlags rejects a file and a stream given for the same output.
func checkTargetFlags(cmd *cobra.Command) error {
	pairs := []struct {
		file, stream, reason string
	}{
		{"console-file", "console-stream", "Command output goes either to a file or to a stream"},
		{"log-file", "log-stream", "Logs go either to a file or to a stream"},
	}
	flags := cmd.Flags()
	for _, pair := range pairs {
		if flags.Changed(pair.file) && flags.Changed(pair.stream) {
			return apperrors.InvalidFlagCombination("--"+pair.file+" and --"+pair.stream, pair.reason)
		}
	}
	return nil
}
