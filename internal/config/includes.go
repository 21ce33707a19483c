package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/appcore/internal/fileio"
)

// acquireIncludes reads the documents named by the include specifications
// of doc, in enumeration order. Reads run concurrently; the first failure
// cancels the rest and no documents are returned.
func (a *TomlAcquirer) acquireIncludes(ctx context.Context, opts AcquireOptions, doc *document) ([]*document, error) {
	raw, ok := doc.values[a.IncludesName]
	if !ok {
		return nil, nil
	}
	specs, err := includeSpecs(a.IncludesName, raw)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	replacer := strings.NewReplacer(
		TokenUserConfiguration, opts.Directories.UserConfigPath,
		TokenUserHome, home,
		TokenApplicationName, opts.ApplicationName,
	)

	var paths []string
	for _, spec := range specs {
		location := replacer.Replace(spec)
		info, err := os.Stat(location)
		if err != nil || !info.IsDir() {
			paths = append(paths, location)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(location, "*.toml"))
		if err != nil {
			return nil, fmt.Errorf("listing includes in %s: %w", location, err)
		}
		paths = append(paths, matches...)
	}

	slog.Debug("acquiring configuration includes", slog.Int("count", len(paths)))
	return fileio.AcquireTextFiles(ctx, paths, decodeDocument)
}

// includeSpecs validates that the includes entry is a list of strings.
func includeSpecs(key string, raw any) ([]string, error) {
	var items []any
	switch value := raw.(type) {
	case []any:
		items = value
	case []string:
		return value, nil
	default:
		return nil, fmt.Errorf("configuration entry '%s' must be an array of strings, not %T", key, raw)
	}
	specs := make([]string, 0, len(items))
	for i, item := range items {
		spec, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("configuration entry '%s' item %d must be a string, not %T", key, i, item)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
