package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Sentinels matched by the corresponding failure kinds through errors.Is.
var (
	ErrFileLocate       = stderrors.New("file locate failure")
	ErrAddressLocate    = stderrors.New("address locate failure")
	ErrEntryAssertion   = stderrors.New("entry assertion failure")
	ErrOperationInvalid = stderrors.New("operation invalidity")
	ErrDependencyAbsent = stderrors.New("dependency absence")
	ErrContextInvalid   = stderrors.New("context invalidity")
)

// FileLocateFailure reports that a required file could not be found within
// the searched scope.
type FileLocateFailure struct {
	// Subject names the purpose of the search (e.g. "project root discovery").
	Subject string
	// Name is the file name that was searched for.
	Name string
}

func (e *FileLocateFailure) Error() string {
	return fmt.Sprintf("could not locate file '%s' for %s", e.Name, e.Subject)
}

func (e *FileLocateFailure) Is(target error) bool { return target == ErrFileLocate }

// AddressLocateFailure reports that a dotted address could not be
// dereferenced in a configuration mapping.
type AddressLocateFailure struct {
	Subject string
	Address []string
	// Part is the first address segment that could not be located.
	Part string
}

func (e *AddressLocateFailure) Error() string {
	return fmt.Sprintf(
		"could not locate part '%s' of address '%s' in %s",
		e.Part, strings.Join(e.Address, "."), e.Subject)
}

func (e *AddressLocateFailure) Is(target error) bool { return target == ErrAddressLocate }

// EntryAssertionFailure reports that an expected entry is absent from a
// mapping under inspection.
type EntryAssertionFailure struct {
	Subject string
	Name    string
}

func (e *EntryAssertionFailure) Error() string {
	return fmt.Sprintf("could not find entry '%s' in %s", e.Name, e.Subject)
}

func (e *EntryAssertionFailure) Is(target error) bool { return target == ErrEntryAssertion }

// OperationInvalidity reports an operation attempted on a value whose state
// forbids it.
type OperationInvalidity struct {
	Subject string
	Name    string
}

func (e *OperationInvalidity) Error() string {
	return fmt.Sprintf("could not perform operation '%s' on %s", e.Name, e.Subject)
}

func (e *OperationInvalidity) Is(target error) bool { return target == ErrOperationInvalid }

// DependencyAbsence reports that an optional feature cannot run because a
// companion component is unavailable.
type DependencyAbsence struct {
	Dependency string
	Feature    string
}

func (e *DependencyAbsence) Error() string {
	return fmt.Sprintf("optional dependency '%s' missing for feature '%s'", e.Dependency, e.Feature)
}

func (e *DependencyAbsence) Is(target error) bool { return target == ErrDependencyAbsent }

// ContextInvalidity reports that a command received state of the wrong type.
type ContextInvalidity struct {
	TypeName string
}

func (e *ContextInvalidity) Error() string {
	return fmt.Sprintf("invalid context object type: %s", e.TypeName)
}

func (e *ContextInvalidity) Is(target error) bool { return target == ErrContextInvalid }
