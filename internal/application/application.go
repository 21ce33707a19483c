// Package application describes the running application and resolves the
// per-user platform directories that belong to it.
package application

import (
	"fmt"
	"strings"
)

// DefaultName is the application name used when none is supplied.
const DefaultName = "appcore"

// Information identifies an application. Values are compared by content.
type Information struct {
	Name      string
	Publisher string
	Version   string
}

// WithDefaults returns a copy with an empty Name replaced by DefaultName.
func (i Information) WithDefaults() Information {
	if i.Name == "" {
		i.Name = DefaultName
	}
	return i
}

// String renders the information for logs and diagnostics.
func (i Information) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Information(name=%q", i.WithDefaults().Name)
	if i.Publisher != "" {
		fmt.Fprintf(&b, ", publisher=%q", i.Publisher)
	}
	if i.Version != "" {
		fmt.Fprintf(&b, ", version=%q", i.Version)
	}
	b.WriteString(")")
	return b.String()
}
