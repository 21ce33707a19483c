// Package dictedits provides programmatic edits applied to a configuration
// mapping after it is parsed and before it is frozen.
//
// An edit targets an address, an ordered sequence of keys into nested
// mappings. Edits are applied once, in order, and mutate the mapping in
// place. A failing edit leaves earlier edits applied.
package dictedits

import (
	"errors"
	"strings"

	appErrors "github.com/ariel-frischer/appcore/internal/errors"
)

const (
	dictionarySubject = "configuration dictionary"
	elementSubject    = "configuration array element"
)

// ErrEmptyAddress is returned when parsing an empty address string.
var ErrEmptyAddress = errors.New("address cannot be empty")

// Edit mutates a configuration mapping in place.
type Edit interface {
	Apply(configuration map[string]any) error
}

// Edits is an ordered collection of edits.
type Edits []Edit

// Apply applies every edit in order and stops at the first failure.
func (edits Edits) Apply(configuration map[string]any) error {
	for _, edit := range edits {
		if err := edit.Apply(configuration); err != nil {
			return err
		}
	}
	return nil
}

// ParseAddress splits a dotted address ("a.b.c") into its keys.
func ParseAddress(address string) ([]string, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}
	parts := strings.Split(address, ".")
	for _, part := range parts {
		if part == "" {
			return nil, ErrEmptyAddress
		}
	}
	return parts, nil
}

// Dereference returns the value at address, failing with an
// AddressLocateFailure naming the first missing segment.
func Dereference(configuration map[string]any, address []string) (any, error) {
	var current any = configuration
	for _, part := range address {
		table, ok := asTable(current)
		if !ok {
			return nil, locateFailure(address, part)
		}
		value, exists := table[part]
		if !exists {
			return nil, locateFailure(address, part)
		}
		current = value
	}
	return current, nil
}

// SimpleEdit sets Value at Address, creating intermediate mappings as needed.
type SimpleEdit struct {
	Address []string
	Value   any
}

// Dereference returns the current value at the edit's address.
func (e SimpleEdit) Dereference(configuration map[string]any) (any, error) {
	return Dereference(configuration, e.Address)
}

// Apply injects the value, overwriting whatever the final key held. A nil
// configuration cannot be written and fails at the first address part.
func (e SimpleEdit) Apply(configuration map[string]any) error {
	if len(e.Address) == 0 {
		return ErrEmptyAddress
	}
	if configuration == nil {
		return locateFailure(e.Address, e.Address[0])
	}
	table := configuration
	for _, part := range e.Address[:len(e.Address)-1] {
		next, exists := table[part]
		if !exists {
			created := make(map[string]any)
			table[part] = created
			table = created
			continue
		}
		nested, ok := asTable(next)
		if !ok {
			return locateFailure(e.Address, part)
		}
		table = nested
	}
	table[e.Address[len(e.Address)-1]] = e.Value
	return nil
}

// Entry is a key/value pair used by ElementsEntryEdit.
type Entry struct {
	Key   string
	Value any
}

// ElementsEntryEdit sets Editee on every mapping in the sequence found at
// Address. When Identifier is set, only elements whose identifier key
// holds the identifier value are edited.
type ElementsEntryEdit struct {
	Address    []string
	Editee     Entry
	Identifier *Entry
}

// Dereference returns the current value at the edit's address.
func (e ElementsEntryEdit) Dereference(configuration map[string]any) (any, error) {
	return Dereference(configuration, e.Address)
}

// Apply edits matching elements in place. An element lacking the
// identifier key fails the edit with an EntryAssertionFailure; elements
// before it stay edited.
func (e ElementsEntryEdit) Apply(configuration map[string]any) error {
	if len(e.Address) == 0 {
		return ErrEmptyAddress
	}
	value, err := e.Dereference(configuration)
	if err != nil {
		return err
	}
	elements, ok := asElements(value)
	if !ok {
		return locateFailure(e.Address, e.Address[len(e.Address)-1])
	}
	for _, element := range elements {
		if e.Identifier != nil {
			current, exists := element[e.Identifier.Key]
			if !exists {
				return &appErrors.EntryAssertionFailure{Subject: elementSubject, Name: e.Identifier.Key}
			}
			if !equalValues(current, e.Identifier.Value) {
				continue
			}
		}
		element[e.Editee.Key] = e.Editee.Value
	}
	return nil
}

func locateFailure(address []string, part string) error {
	return &appErrors.AddressLocateFailure{
		Subject: dictionarySubject,
		Address: append([]string(nil), address...),
		Part:    part,
	}
}
