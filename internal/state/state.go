// Package state holds the process-wide values assembled during preparation
// and resolves the locations derived from them.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/appcore/internal/application"
	"github.com/ariel-frischer/appcore/internal/config"
	"github.com/ariel-frischer/appcore/internal/distribution"
	"github.com/ariel-frischer/appcore/internal/lifecycle"
)

// DirectorySpecies names a kind of per-user directory.
type DirectorySpecies string

const (
	Cache DirectorySpecies = "cache"
	Data  DirectorySpecies = "data"
	State DirectorySpecies = "state"
)

// AllSpecies returns every directory species in a stable order.
func AllSpecies() []DirectorySpecies {
	return []DirectorySpecies{Cache, Data, State}
}

// ParseDirectorySpecies parses a species name.
func ParseDirectorySpecies(s string) (DirectorySpecies, error) {
	switch species := DirectorySpecies(strings.ToLower(s)); species {
	case Cache, Data, State:
		return species, nil
	default:
		return "", fmt.Errorf("invalid directory species %q: valid values are cache, data, state", s)
	}
}

// Location template tokens.
const (
	TokenUserCache         = "{user_cache}"
	TokenUserConfiguration = "{user_configuration}"
	TokenUserData          = "{user_data}"
	TokenUserHome          = "{user_home}"
	TokenUserState         = "{user_state}"
	TokenApplicationName   = "{application_name}"
)

// Locations are the location templates of the `locations` configuration
// table. Empty templates select platform defaults.
type Locations struct {
	Cache       string `koanf:"cache"`
	Data        string `koanf:"data"`
	State       string `koanf:"state"`
	Environment string `koanf:"environment"`
}

// Template returns the configured template for species.
func (l Locations) Template(species DirectorySpecies) string {
	switch species {
	case Cache:
		return l.Cache
	case Data:
		return l.Data
	case State:
		return l.State
	default:
		return ""
	}
}

// Globals is the state shared by an application's commands.
type Globals struct {
	Application   application.Information
	Configuration *config.Dictionary
	Directories   application.Directories
	Distribution  distribution.Information
	Exits         *lifecycle.Exits
}

// AsDictionary returns a shallow copy of the fields keyed by name.
func (g *Globals) AsDictionary() map[string]any {
	return map[string]any{
		"application":   g.Application,
		"configuration": g.Configuration,
		"directories":   g.Directories,
		"distribution":  g.Distribution,
		"exits":         g.Exits,
	}
}

// Locations decodes the `locations` configuration table.
func (g *Globals) Locations() (Locations, error) {
	var locations Locations
	if g.Configuration == nil {
		return locations, nil
	}
	if err := g.Configuration.Unmarshal(&locations, "locations"); err != nil {
		return Locations{}, err
	}
	return locations, nil
}

// RenderLocation substitutes location tokens in template.
func (g *Globals) RenderLocation(template string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	replacer := strings.NewReplacer(
		TokenUserCache, g.Directories.UserCachePath,
		TokenUserConfiguration, g.Directories.UserConfigPath,
		TokenUserData, g.Directories.UserDataPath,
		TokenUserHome, home,
		TokenUserState, g.Directories.UserStatePath,
		TokenApplicationName, g.Application.WithDefaults().Name,
	)
	return filepath.Clean(replacer.Replace(template)), nil
}

// ProvideLocation returns the directory of the given species joined with
// parts. A template under `locations.<species>` in the configuration
// overrides the platform directory.
func (g *Globals) ProvideLocation(species DirectorySpecies, parts ...string) (string, error) {
	locations, err := g.Locations()
	if err != nil {
		return "", err
	}

	base := ""
	if template := locations.Template(species); template != "" {
		base, err = g.RenderLocation(template)
		if err != nil {
			return "", err
		}
	} else {
		switch species {
		case Cache:
			base = g.Directories.UserCachePath
		case Data:
			base = g.Directories.UserDataPath
		case State:
			base = g.Directories.UserStatePath
		default:
			return "", fmt.Errorf("invalid directory species %q", species)
		}
	}
	return filepath.Join(append([]string{base}, parts...)...), nil
}

// ProvideCacheLocation returns the cache directory joined with parts.
func (g *Globals) ProvideCacheLocation(parts ...string) (string, error) {
	return g.ProvideLocation(Cache, parts...)
}

// ProvideDataLocation returns the data directory joined with parts.
func (g *Globals) ProvideDataLocation(parts ...string) (string, error) {
	return g.ProvideLocation(Data, parts...)
}

// ProvideStateLocation returns the state directory joined with parts.
func (g *Globals) ProvideStateLocation(parts ...string) (string, error) {
	return g.ProvideLocation(State, parts...)
}
