package distribution

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	appErrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// DescriptorName is the project descriptor searched for in development mode.
	DescriptorName = "pyproject.toml"

	// CeilingVariable lists directories that bound the project root search.
	CeilingVariable = "GIT_CEILING_DIRECTORIES"

	rootDiscoverySubject = "project root discovery"
)

// LocateProjectRoot ascends from anchor to the nearest directory containing
// the project descriptor. A file anchor starts from its directory.
//
// Ascent is bounded by the directories listed in GIT_CEILING_DIRECTORIES: a
// ceiling is examined but never passed. An empty list leaves ascent
// unbounded up to the filesystem root.
func LocateProjectRoot(anchor string) (string, error) {
	start, err := filepath.Abs(anchor)
	if err != nil {
		return "", fmt.Errorf("resolving anchor %s: %w", anchor, err)
	}
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}

	ceilings := ceilingDirectories(os.Getenv(CeilingVariable))
	for dir := start; ; {
		if info, err := os.Stat(filepath.Join(dir, DescriptorName)); err == nil && info.Mode().IsRegular() {
			return dir, nil
		}
		if ceilings[dir] {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", &appErrors.FileLocateFailure{Subject: rootDiscoverySubject, Name: DescriptorName}
}

func ceilingDirectories(value string) map[string]bool {
	ceilings := make(map[string]bool)
	for _, entry := range filepath.SplitList(value) {
		if entry == "" {
			continue
		}
		abs, err := filepath.Abs(entry)
		if err != nil {
			continue
		}
		ceilings[abs] = true
	}
	return ceilings
}

// readProjectName reads [project].name from the descriptor in root.
func readProjectName(ctx context.Context, root string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(root, DescriptorName)
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return "", fmt.Errorf("loading project descriptor %s: %w", path, err)
	}
	name := k.String("project.name")
	if name == "" {
		return "", &appErrors.EntryAssertionFailure{Subject: "project descriptor " + path, Name: "project.name"}
	}
	return name, nil
}
