package distribution

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	appErrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/ariel-frischer/appcore/internal/lifecycle"
)

// PrepareOptions configures distribution resolution. Anchor is the
// preferred input; the invoker is located from the call stack only for
// fields left empty.
type PrepareOptions struct {
	Package  string
	Anchor   string
	Registry *Registry
}

// Prepare resolves the distribution of the invoking application.
//
// A package registered to exactly one installed distribution selects
// production mode, in which the distribution's data is used in place or
// extracted into a temporary directory removed when exits is closed.
// Anything else selects development mode, which ascends from the anchor to
// the project descriptor and reads the name from it.
func Prepare(ctx context.Context, exits *lifecycle.Exits, opts PrepareOptions) (Information, error) {
	if err := ctx.Err(); err != nil {
		return Information{}, err
	}
	pkg, anchor := opts.Package, opts.Anchor
	if pkg == "" || anchor == "" {
		invoker := LocateInvoker(1)
		if pkg == "" {
			pkg = invoker.Package
		}
		if anchor == "" {
			anchor = invoker.Anchor
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry
	}
	if pkg != "" {
		if dist, ok := registry.Lookup(pkg); ok {
			slog.Debug("resolving installed distribution",
				slog.String("package", pkg), slog.String("distribution", dist.Name))
			location, err := acquireProductionLocation(dist, exits)
			if err != nil {
				return Information{}, err
			}
			return NewInformation(dist.Name, location, false)
		}
	}

	slog.Debug("resolving development distribution",
		slog.String("package", pkg), slog.String("anchor", anchor))
	root, err := LocateProjectRoot(anchor)
	if err != nil {
		return Information{}, err
	}
	name, err := readProjectName(ctx, root)
	if err != nil {
		return Information{}, err
	}
	return NewInformation(name, root, true)
}

func acquireProductionLocation(dist Distribution, exits *lifecycle.Exits) (string, error) {
	if dist.Root != "" {
		return dist.Root, nil
	}
	if dist.Data == nil {
		return "", &appErrors.OperationInvalidity{
			Subject: fmt.Sprintf("distribution '%s' without data", dist.Name),
			Name:    "acquire location",
		}
	}

	if exits == nil {
		return "", &appErrors.OperationInvalidity{
			Subject: fmt.Sprintf("distribution '%s' without exit stack", dist.Name),
			Name:    "extract data",
		}
	}
	dir, err := os.MkdirTemp("", "appcore-distribution-")
	if err != nil {
		return "", fmt.Errorf("creating extraction directory: %w", err)
	}
	if err := exits.Push(func() error { return os.RemoveAll(dir) }); err != nil {
		return "", err
	}
	if err := os.CopyFS(dir, dist.Data); err != nil {
		return "", fmt.Errorf("extracting distribution %s: %w", dist.Name, err)
	}
	return dir, nil
}
