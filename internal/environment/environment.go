// Package environment loads dotenv overlays into the process environment.
// Variables already present in the environment are never overridden, so
// sources loaded earlier take precedence over later ones.
package environment

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/appcore/internal/fileio"
	"github.com/ariel-frischer/appcore/internal/state"
	"github.com/joho/godotenv"
)

// DotenvName is the name of a dotenv file or directory of *.env files.
const DotenvName = ".env"

// Update loads dotenv overlays appropriate to the distribution.
//
// An editable distribution loads <location>/.env, falling back to ./.env
// when the project has none. An installed distribution loads ./.env first
// and then the `locations.environment` template from the configuration.
func Update(ctx context.Context, globals *state.Globals) error {
	if globals.Distribution.Editable() {
		found, err := injectLocation(ctx, filepath.Join(globals.Distribution.Location(), DotenvName))
		if err != nil || found {
			return err
		}
		_, err = injectLocation(ctx, DotenvName)
		return err
	}

	if _, err := injectLocation(ctx, DotenvName); err != nil {
		return err
	}
	locations, err := globals.Locations()
	if err != nil {
		return err
	}
	if locations.Environment == "" {
		return nil
	}
	location, err := globals.RenderLocation(locations.Environment)
	if err != nil {
		return err
	}
	_, err = injectLocation(ctx, location)
	return err
}

// injectLocation loads a dotenv file, or every *.env file of a directory.
// It reports whether the location exists.
func injectLocation(ctx context.Context, location string) (bool, error) {
	info, err := os.Stat(location)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("inspecting environment location %s: %w", location, err)
	}

	paths := []string{location}
	if info.IsDir() {
		paths, err = filepath.Glob(filepath.Join(location, "*.env"))
		if err != nil {
			return true, fmt.Errorf("listing environment files in %s: %w", location, err)
		}
	}

	contents, err := fileio.AcquireTextFiles(ctx, paths, fileio.Text)
	if err != nil {
		return true, err
	}
	for i, content := range contents {
		if _, err := InjectDotenvData(content); err != nil {
			return true, fmt.Errorf("loading environment file %s: %w", paths[i], err)
		}
		slog.Debug("loaded environment file", slog.String("path", paths[i]))
	}
	return true, nil
}

// InjectDotenvData parses dotenv content and sets the variables not already
// present. It reports false when the content defines no variables.
func InjectDotenvData(data string) (bool, error) {
	if strings.TrimSpace(data) == "" {
		return false, nil
	}
	values, err := godotenv.Unmarshal(data)
	if err != nil {
		return false, err
	}
	if len(values) == 0 {
		return false, nil
	}
	return true, injectMissing(values)
}

// Inject sets every variable of an explicit mapping, replacing existing
// values.
func Inject(values map[string]string) error {
	for name, value := range values {
		if err := os.Setenv(name, value); err != nil {
			return fmt.Errorf("setting environment variable %s: %w", name, err)
		}
	}
	return nil
}

func injectMissing(values map[string]string) error {
	for name, value := range values {
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, value); err != nil {
			return fmt.Errorf("setting environment variable %s: %w", name, err)
		}
	}
	return nil
}
