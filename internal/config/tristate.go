package config

import (
	"fmt"
	"strings"

	appErrors "github.com/ariel-frischer/appcore/internal/errors"
)

// EnablementTristate disables, enables, or retains the natural state of a
// feature.
type EnablementTristate string

const (
	Disable EnablementTristate = "disable"
	Retain  EnablementTristate = "retain"
	Enable  EnablementTristate = "enable"
)

// ParseEnablementTristate parses a tristate name, ignoring case.
func ParseEnablementTristate(s string) (EnablementTristate, error) {
	switch value := EnablementTristate(strings.ToLower(strings.TrimSpace(s))); value {
	case Disable, Retain, Enable:
		return value, nil
	default:
		return "", fmt.Errorf("invalid enablement %q: valid values are disable, retain, enable", s)
	}
}

// Bool translates the tristate to a boolean. Retain has no boolean meaning
// and fails with an operation invalidity.
func (e EnablementTristate) Bool() (bool, error) {
	switch e {
	case Disable:
		return false, nil
	case Enable:
		return true, nil
	default:
		return false, &appErrors.OperationInvalidity{
			Subject: "inert enablement tristate",
			Name:    "boolean translation",
		}
	}
}

// IsRetain reports whether the tristate retains the natural state.
func (e EnablementTristate) IsRetain() bool {
	return e == Retain
}

func (e EnablementTristate) String() string {
	return string(e)
}

// Set implements pflag.Value so a tristate can back a command-line flag.
func (e *EnablementTristate) Set(s string) error {
	value, err := ParseEnablementTristate(s)
	if err != nil {
		return err
	}
	*e = value
	return nil
}

// Type implements pflag.Value.
func (e *EnablementTristate) Type() string {
	return "enablement"
}
