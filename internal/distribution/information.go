// Package distribution determines where the invoking application is rooted
// and whether it runs from an editable source checkout or from an installed
// distribution.
package distribution

import (
	"fmt"
	"path/filepath"
)

// Information describes a resolved distribution. It is immutable after
// construction and compares by value.
type Information struct {
	name     string
	location string
	editable bool
}

// NewInformation returns distribution information for the given root.
// Relative locations are made absolute.
func NewInformation(name, location string, editable bool) (Information, error) {
	abs, err := filepath.Abs(location)
	if err != nil {
		return Information{}, fmt.Errorf("resolving distribution location %s: %w", location, err)
	}
	return Information{name: name, location: abs, editable: editable}, nil
}

// Name returns the distribution name.
func (i Information) Name() string { return i.name }

// Location returns the absolute root of the distribution.
func (i Information) Location() string { return i.location }

// Editable reports whether the distribution is a development checkout.
func (i Information) Editable() bool { return i.editable }

// ProvideDataLocation returns a path under the distribution's data directory.
func (i Information) ProvideDataLocation(parts ...string) string {
	return filepath.Join(append([]string{i.location, "data"}, parts...)...)
}

func (i Information) String() string {
	return fmt.Sprintf("Information(name=%q, location=%q, editable=%t)", i.name, i.location, i.editable)
}
