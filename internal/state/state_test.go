// Package state tests global state assembly and location resolution.
// Related: internal/state/state.go
// Tags: state, locations, directories

package state

import (
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/appcore/internal/application"
	"github.com/ariel-frischer/appcore/internal/config"
	"github.com/ariel-frischer/appcore/internal/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directories() application.Directories {
	return application.Directories{
		UserConfigPath: filepath.FromSlash("/user/config/test-app"),
		UserDataPath:   filepath.FromSlash("/user/data/test-app"),
		UserCachePath:  filepath.FromSlash("/user/cache/test-app"),
		UserStatePath:  filepath.FromSlash("/user/state/test-app"),
	}
}

func globalsWith(configuration map[string]any) *Globals {
	return &Globals{
		Application:   application.Information{Name: "test-app"},
		Configuration: config.NewDictionary(configuration, nil),
		Directories:   directories(),
		Exits:         lifecycle.NewExits(),
	}
}

func TestParseDirectorySpecies(t *testing.T) {
	t.Parallel()

	for _, species := range AllSpecies() {
		got, err := ParseDirectorySpecies(string(species))
		require.NoError(t, err)
		assert.Equal(t, species, got)
	}
	_, err := ParseDirectorySpecies("config")
	assert.Error(t, err)
}

func TestGlobals_AsDictionary(t *testing.T) {
	t.Parallel()

	globals := globalsWith(map[string]any{"app": map[string]any{"name": "test"}})
	result := globals.AsDictionary()
	for _, key := range []string{"application", "configuration", "directories", "distribution", "exits"} {
		assert.Contains(t, result, key)
	}
	assert.Equal(t, globals.Application, result["application"])
	assert.Same(t, globals.Exits, result["exits"])

	result["new_field"] = "new_value"
	assert.NotContains(t, globals.AsDictionary(), "new_field")
}

func TestGlobals_ProvideLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	tests := map[string]struct {
		configuration map[string]any
		species       DirectorySpecies
		parts         []string
		want          string
	}{
		"cache default": {
			species: Cache,
			want:    filepath.FromSlash("/user/cache/test-app"),
		},
		"cache with appendages": {
			species: Cache,
			parts:   []string{"temp", "files"},
			want:    filepath.FromSlash("/user/cache/test-app/temp/files"),
		},
		"data default": {
			species: Data,
			want:    filepath.FromSlash("/user/data/test-app"),
		},
		"state default": {
			species: State,
			want:    filepath.FromSlash("/user/state/test-app"),
		},
		"configured cache with home and name": {
			configuration: map[string]any{"locations": map[string]any{
				"cache": "{user_home}/custom-cache/{application_name}",
			}},
			species: Cache,
			want:    filepath.Join(home, "custom-cache", "test-app"),
		},
		"configured data relative to platform data": {
			configuration: map[string]any{"locations": map[string]any{
				"data": "{user_data}/custom-data",
			}},
			species: Data,
			want:    filepath.FromSlash("/user/data/test-app/custom-data"),
		},
		"configured location with appendages": {
			configuration: map[string]any{"locations": map[string]any{
				"cache": "{user_home}/custom/{application_name}",
			}},
			species: Cache,
			parts:   []string{"temp", "files"},
			want:    filepath.Join(home, "custom", "test-app", "temp", "files"),
		},
		"partial configuration falls back": {
			configuration: map[string]any{"locations": map[string]any{
				"cache": "{user_home}/custom-cache",
			}},
			species: Data,
			want:    filepath.FromSlash("/user/data/test-app"),
		},
		"unrelated configuration": {
			configuration: map[string]any{"other": "value"},
			species:       Cache,
			want:          filepath.FromSlash("/user/cache/test-app"),
		},
		"state from cache token": {
			configuration: map[string]any{"locations": map[string]any{
				"state": "{user_cache}/../state-{application_name}",
			}},
			species: State,
			want:    filepath.FromSlash("/user/cache/state-test-app"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := globalsWith(tt.configuration).ProvideLocation(tt.species, tt.parts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGlobals_ProvideSpeciesLocations(t *testing.T) {
	t.Parallel()

	globals := globalsWith(nil)

	cache, err := globals.ProvideCacheLocation("a")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(directories().UserCachePath, "a"), cache)

	data, err := globals.ProvideDataLocation()
	require.NoError(t, err)
	assert.Equal(t, directories().UserDataPath, data)

	state, err := globals.ProvideStateLocation("b", "c")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(directories().UserStatePath, "b", "c"), state)

	_, err = globals.ProvideLocation(DirectorySpecies("logs"))
	assert.Error(t, err)
}

func TestGlobals_NilConfiguration(t *testing.T) {
	t.Parallel()

	globals := &Globals{Directories: directories()}
	locations, err := globals.Locations()
	require.NoError(t, err)
	assert.Equal(t, Locations{}, locations)

	got, err := globals.ProvideCacheLocation()
	require.NoError(t, err)
	assert.Equal(t, directories().UserCachePath, got)
}

func TestGlobals_Locations(t *testing.T) {
	t.Parallel()

	globals := globalsWith(map[string]any{"locations": map[string]any{
		"environment": "{user_configuration}/app.env",
		"cache":       "/tmp/cache",
	}})
	locations, err := globals.Locations()
	require.NoError(t, err)
	assert.Equal(t, "{user_configuration}/app.env", locations.Environment)
	assert.Equal(t, "/tmp/cache", locations.Template(Cache))
	assert.Empty(t, locations.Template(Data))
}
