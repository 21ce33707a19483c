package cli

import (
	"context"
	"fmt"

	apperrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/ariel-frischer/appcore/internal/output"
	"github.com/ariel-frischer/appcore/internal/preparation"
	"github.com/ariel-frischer/appcore/internal/state"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// ConfigurationCommand shows the finalized application configuration.
type ConfigurationCommand struct {
	Display *DisplayOptions
}

// Execute implements Command.
func (c ConfigurationCommand) Execute(_ context.Context, globals *state.Globals) error {
	if err := checkGlobals(globals); err != nil {
		return err
	}
	configuration := globals.Configuration
	record := output.RecordOf(configuration.Keys(), func(key string) any {
		value, _ := configuration.Get(key)
		return value
	})
	return c.Display.Render(globals.Exits, "configuration", record)
}

// DirectoriesCommand shows the application and package directories.
type DirectoriesCommand struct {
	Display *DisplayOptions
}

// Execute implements Command.
func (c DirectoriesCommand) Execute(_ context.Context, globals *state.Globals) error {
	if err := checkGlobals(globals); err != nil {
		return err
	}
	cache, err := globals.ProvideCacheLocation()
	if err != nil {
		return err
	}
	data, err := globals.ProvideDataLocation()
	if err != nil {
		return err
	}
	stateLocation, err := globals.ProvideStateLocation()
	if err != nil {
		return err
	}
	record := output.Record{
		{Key: "application-cache", Value: cache},
		{Key: "application-data", Value: data},
		{Key: "application-state", Value: stateLocation},
		{Key: "package-data", Value: globals.Distribution.ProvideDataLocation()},
	}
	return c.Display.Render(globals.Exits, "directories", record)
}

// EnvironmentCommand shows the environment variables prefixed with the
// application name.
type EnvironmentCommand struct {
	Display *DisplayOptions
}

// Execute implements Command.
func (c EnvironmentCommand) Execute(_ context.Context, globals *state.Globals) error {
	if err := checkGlobals(globals); err != nil {
		return err
	}
	variables, err := applicationVariables(preparation.EnvPrefix(globals.Application.Name) + "_")
	if err != nil {
		return err
	}
	return c.Display.Render(globals.Exits, "environment", output.RecordFromStrings(variables))
}

// applicationVariables loads the variables starting with prefix. Names are
// kept whole.
func applicationVariables(prefix string) (map[string]string, error) {
	k := koanf.New("\x00")
	if err := k.Load(env.Provider(prefix, "\x00", nil), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	variables := make(map[string]string, len(k.Keys()))
	for _, key := range k.Keys() {
		variables[key] = k.String(key)
	}
	return variables, nil
}

func checkGlobals(globals *state.Globals) error {
	if globals == nil || globals.Configuration == nil || globals.Exits == nil {
		return &apperrors.ContextInvalidity{TypeName: fmt.Sprintf("%T", globals)}
	}
	return nil
}
