package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
)

// Directories holds the per-user platform directories of an application.
type Directories struct {
	UserConfigPath string
	UserDataPath   string
	UserCachePath  string
	UserStatePath  string
	UserLogPath    string
}

// All returns the directories in a stable order.
func (d Directories) All() []string {
	return []string{d.UserConfigPath, d.UserDataPath, d.UserCachePath, d.UserStatePath, d.UserLogPath}
}

// Ensure creates every directory that does not exist yet.
func (d Directories) Ensure() error {
	for _, dir := range d.All() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// ProducePlatformDirectories resolves the user directories for the
// application on the running platform. When ensureExists is set, the
// directories are created.
//
// The roots come from the XDG base directories as resolved by adrg/xdg,
// which maps them onto platform conventions:
//   - Linux: $XDG_CONFIG_HOME, $XDG_DATA_HOME, $XDG_CACHE_HOME and
//     $XDG_STATE_HOME, with the usual fallbacks under the home directory
//   - macOS: ~/Library/Application Support and ~/Library/Caches, with logs
//     under ~/Library/Logs
//   - Windows: %LOCALAPPDATA%, with the publisher as an extra path level
//
// A non-empty Version is appended as the last path level.
func (i Information) ProducePlatformDirectories(ensureExists bool) (Directories, error) {
	bases := xdgBaseDirectories()
	if bases.Home == "" {
		return Directories{}, fmt.Errorf("resolving home directory: %w", os.ErrNotExist)
	}
	dirs := i.platformDirectories(runtime.GOOS, bases)
	if ensureExists {
		if err := dirs.Ensure(); err != nil {
			return Directories{}, err
		}
	}
	return dirs, nil
}

// baseDirectories are the per-user roots that application directories are
// placed under.
type baseDirectories struct {
	Home   string
	Config string
	Data   string
	Cache  string
	State  string
}

func xdgBaseDirectories() baseDirectories {
	return baseDirectories{
		Home:   xdg.Home,
		Config: xdg.ConfigHome,
		Data:   xdg.DataHome,
		Cache:  xdg.CacheHome,
		State:  xdg.StateHome,
	}
}

func (i Information) platformDirectories(goos string, bases baseDirectories) Directories {
	info := i.WithDefaults()
	switch goos {
	case "darwin":
		return Directories{
			UserConfigPath: info.appPath(bases.Config),
			UserDataPath:   info.appPath(bases.Data),
			UserCachePath:  info.appPath(bases.Cache),
			UserStatePath:  info.appPath(bases.State),
			UserLogPath:    info.appPath(filepath.Join(bases.Home, "Library", "Logs")),
		}
	case "windows":
		state := info.windowsPath(bases.State)
		return Directories{
			UserConfigPath: info.windowsPath(bases.Config),
			UserDataPath:   info.windowsPath(bases.Data),
			UserCachePath:  info.windowsPath(bases.Cache),
			UserStatePath:  state,
			UserLogPath:    filepath.Join(state, "Logs"),
		}
	default:
		state := info.appPath(bases.State)
		return Directories{
			UserConfigPath: info.appPath(bases.Config),
			UserDataPath:   info.appPath(bases.Data),
			UserCachePath:  info.appPath(bases.Cache),
			UserStatePath:  state,
			UserLogPath:    filepath.Join(state, "log"),
		}
	}
}

func (i Information) appPath(base string) string {
	parts := []string{base, i.Name}
	if i.Version != "" {
		parts = append(parts, i.Version)
	}
	return filepath.Join(parts...)
}

func (i Information) windowsPath(base string) string {
	if i.Publisher != "" {
		base = filepath.Join(base, i.Publisher)
	}
	return i.appPath(base)
}
