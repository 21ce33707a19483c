// appcore - Application bootstrap helpers
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/appcore

// Package config acquires the application configuration: a base TOML
// document discovered in the user configuration directory (seeded from the
// distribution's template on first use), merged with include files and
// adjusted by programmatic edits, then frozen into an ordered Dictionary.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/appcore/internal/application"
	"github.com/ariel-frischer/appcore/internal/dictedits"
	"github.com/ariel-frischer/appcore/internal/distribution"
	"github.com/ariel-frischer/appcore/internal/fileio"
)

// Acquirer produces the configuration for an application.
type Acquirer interface {
	Acquire(ctx context.Context, opts AcquireOptions) (*Dictionary, error)
}

// AcquireOptions carries the inputs of an acquisition.
type AcquireOptions struct {
	// ApplicationName substitutes the {application_name} include token.
	ApplicationName string
	Directories     application.Directories
	// Distribution locates the configuration template.
	Distribution distribution.Information
	// Edits are applied in order after includes are merged.
	Edits dictedits.Edits
	// File overrides discovery of the main configuration file.
	File string
	// Reader, when set, supplies the main document and wins over File.
	Reader io.Reader
}

// TomlAcquirer acquires configuration from TOML documents.
type TomlAcquirer struct {
	// MainFilename is the name of the main file in the user configuration
	// directory and of the template in the distribution data.
	MainFilename string
	// IncludesName is the key listing include specifications.
	IncludesName string
}

// NewTomlAcquirer returns an acquirer with the default file and key names.
func NewTomlAcquirer() *TomlAcquirer {
	return &TomlAcquirer{MainFilename: DefaultMainFilename, IncludesName: DefaultIncludesName}
}

// Acquire implements Acquirer.
//
// TOML syntax errors are returned wrapped; errors.As finds the underlying
// toml.ParseError. Edits fail with address-locate or entry-assertion
// failures, leaving earlier edits applied.
func (a *TomlAcquirer) Acquire(ctx context.Context, opts AcquireOptions) (*Dictionary, error) {
	resolved := a.withDefaults()
	if opts.ApplicationName == "" {
		opts.ApplicationName = application.DefaultName
	}

	doc, err := resolved.acquireBase(ctx, opts)
	if err != nil {
		return nil, err
	}

	includes, err := resolved.acquireIncludes(ctx, opts, doc)
	if err != nil {
		return nil, err
	}
	for _, include := range includes {
		doc.update(include)
	}

	for i, edit := range opts.Edits {
		if err := edit.Apply(doc.values); err != nil {
			return nil, fmt.Errorf("applying configuration edit %d: %w", i, err)
		}
		doc.adoptNewKeys()
	}

	return newDictionary(doc.values, doc.order), nil
}

// withDefaults returns a copy with empty names replaced by the defaults.
// The receiver is left untouched so one acquirer can serve concurrent calls.
func (a *TomlAcquirer) withDefaults() *TomlAcquirer {
	resolved := *a
	if resolved.MainFilename == "" {
		resolved.MainFilename = DefaultMainFilename
	}
	if resolved.IncludesName == "" {
		resolved.IncludesName = DefaultIncludesName
	}
	return &resolved
}

// acquireBase resolves and parses the main document.
func (a *TomlAcquirer) acquireBase(ctx context.Context, opts AcquireOptions) (*document, error) {
	if opts.Reader != nil {
		content, err := io.ReadAll(opts.Reader)
		if err != nil {
			return nil, fmt.Errorf("reading configuration stream: %w", err)
		}
		return decodeDocument(string(content))
	}

	path := opts.File
	if path == "" {
		discovered, err := a.discoverCopyTemplate(opts.Directories, opts.Distribution)
		if err != nil {
			return nil, err
		}
		if discovered == "" {
			slog.Debug("no configuration file or template found; using empty configuration")
			return newDocument(), nil
		}
		path = discovered
	}

	slog.Debug("acquiring configuration", slog.String("path", path))
	return fileio.AcquireTextFile(ctx, path, decodeDocument)
}

// discoverCopyTemplate returns the main file in the user configuration
// directory, copying the distribution template there when it is missing.
// It returns an empty path when neither exists.
func (a *TomlAcquirer) discoverCopyTemplate(dirs application.Directories, dist distribution.Information) (string, error) {
	path := MainFilePath(dirs, a.MainFilename)
	if fileExists(path) {
		return path, nil
	}
	if dist.Location() == "" {
		return "", nil
	}
	template := TemplatePath(dist, a.MainFilename)
	if !fileExists(template) {
		return "", nil
	}

	content, err := os.ReadFile(template)
	if err != nil {
		return "", fmt.Errorf("reading configuration template %s: %w", template, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating configuration directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("copying configuration template to %s: %w", path, err)
	}
	slog.Debug("copied configuration template",
		slog.String("template", template), slog.String("path", path))
	return path, nil
}
