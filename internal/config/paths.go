package config

import (
	"os"
	"path/filepath"

	"github.com/ariel-frischer/appcore/internal/application"
	"github.com/ariel-frischer/appcore/internal/distribution"
)

// MainFilePath returns the path to the main configuration file in the user
// configuration directory.
func MainFilePath(dirs application.Directories, filename string) string {
	return filepath.Join(dirs.UserConfigPath, filename)
}

// TemplatePath returns the path to the configuration template shipped with
// the distribution.
func TemplatePath(dist distribution.Information, filename string) string {
	return dist.ProvideDataLocation(TemplateDirectory, filename)
}

// fileExists returns true if the path exists and is a regular file
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
