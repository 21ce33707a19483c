// Package preparation assembles the global state of an application:
// logging, application information, platform directories, distribution,
// configuration and environment.
package preparation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ariel-frischer/appcore/internal/application"
	"github.com/ariel-frischer/appcore/internal/config"
	"github.com/ariel-frischer/appcore/internal/dictedits"
	"github.com/ariel-frischer/appcore/internal/distribution"
	"github.com/ariel-frischer/appcore/internal/environment"
	"github.com/ariel-frischer/appcore/internal/inscription"
	"github.com/ariel-frischer/appcore/internal/lifecycle"
	"github.com/ariel-frischer/appcore/internal/state"
)

// Options configures preparation. Zero values select defaults.
type Options struct {
	// Acquirer defaults to a TOML acquirer with default names.
	Acquirer config.Acquirer
	// Application defaults to the "appcore" name.
	Application application.Information
	ConfigEdits dictedits.Edits
	ConfigFile  string
	// ConfigReader supplies the main configuration document directly.
	ConfigReader io.Reader
	// Directories default to the platform directories of Application,
	// which are created.
	Directories *application.Directories
	// Distribution defaults to resolution through Locator.
	Distribution *distribution.Information
	Locator      distribution.PrepareOptions
	// Environment loads dotenv overlays.
	Environment bool
	// EnvironmentValues are set in the process environment, replacing
	// existing values. They take effect after any dotenv overlays.
	EnvironmentValues map[string]string
	// Inscription defaults to plain logging at info level. An empty
	// EnvPrefix is derived from the application name.
	Inscription *inscription.Control
}

// Prepare assembles the global state. Resources acquired along the way are
// released when exits is closed.
func Prepare(ctx context.Context, exits *lifecycle.Exits, opts Options) (*state.Globals, error) {
	app := opts.Application.WithDefaults()

	control := inscription.DefaultControl()
	if opts.Inscription != nil {
		control = *opts.Inscription
	}
	if control.EnvPrefix == "" {
		control.EnvPrefix = EnvPrefix(app.Name)
	}
	if _, err := inscription.Prepare(control); err != nil {
		return nil, fmt.Errorf("preparing logging: %w", err)
	}

	var dirs application.Directories
	if opts.Directories != nil {
		dirs = *opts.Directories
	} else {
		produced, err := app.ProducePlatformDirectories(true)
		if err != nil {
			return nil, fmt.Errorf("preparing platform directories: %w", err)
		}
		dirs = produced
	}

	var dist distribution.Information
	if opts.Distribution != nil {
		dist = *opts.Distribution
	} else {
		resolved, err := distribution.Prepare(ctx, exits, opts.Locator)
		if err != nil {
			return nil, fmt.Errorf("preparing distribution: %w", err)
		}
		dist = resolved
	}

	acquirer := opts.Acquirer
	if acquirer == nil {
		acquirer = config.NewTomlAcquirer()
	}
	configuration, err := acquirer.Acquire(ctx, config.AcquireOptions{
		ApplicationName: app.Name,
		Directories:     dirs,
		Distribution:    dist,
		Edits:           opts.ConfigEdits,
		File:            opts.ConfigFile,
		Reader:          opts.ConfigReader,
	})
	if err != nil {
		return nil, fmt.Errorf("acquiring configuration: %w", err)
	}

	globals := &state.Globals{
		Application:   app,
		Configuration: configuration,
		Directories:   dirs,
		Distribution:  dist,
		Exits:         exits,
	}

	if opts.Environment {
		if err := environment.Update(ctx, globals); err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
	}
	if len(opts.EnvironmentValues) > 0 {
		if err := environment.Inject(opts.EnvironmentValues); err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
	}

	report(globals)
	return globals, nil
}

// EnvPrefix returns the environment variable prefix for an application
// name: upper case, with dashes and dots replaced by underscores.
func EnvPrefix(name string) string {
	return strings.ToUpper(envReplacer.Replace(name))
}

var envReplacer = strings.NewReplacer("-", "_", ".", "_")

// report logs the prepared state at debug level.
func report(globals *state.Globals) {
	slog.Debug("application prepared",
		slog.Group("application",
			slog.String("name", globals.Application.Name),
			slog.String("publisher", globals.Application.Publisher),
			slog.String("version", globals.Application.Version)),
		slog.Group("distribution",
			slog.String("name", globals.Distribution.Name()),
			slog.String("location", globals.Distribution.Location()),
			slog.Bool("editable", globals.Distribution.Editable())),
		slog.String("configuration", globals.Directories.UserConfigPath),
		slog.Any("keys", globals.Configuration.Keys()))
}
