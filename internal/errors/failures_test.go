package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureMessages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      error
		contains []string
	}{
		"file locate": {
			err:      &FileLocateFailure{Subject: "project root discovery", Name: "pyproject.toml"},
			contains: []string{"pyproject.toml", "project root discovery"},
		},
		"address locate": {
			err: &AddressLocateFailure{
				Subject: "configuration dictionary",
				Address: []string{"app", "database", "host"},
				Part:    "database",
			},
			contains: []string{"'database'", "app.database.host", "configuration dictionary"},
		},
		"entry assertion": {
			err:      &EntryAssertionFailure{Subject: "configuration array element", Name: "type"},
			contains: []string{"'type'", "configuration array element"},
		},
		"operation invalidity": {
			err:      &OperationInvalidity{Subject: "inert enablement tristate", Name: "boolean translation"},
			contains: []string{"boolean translation", "inert enablement tristate"},
		},
		"dependency absence": {
			err:      &DependencyAbsence{Dependency: "terminal", Feature: "rich logging"},
			contains: []string{"terminal", "rich logging"},
		},
		"context invalidity": {
			err:      &ContextInvalidity{TypeName: "state.Globals"},
			contains: []string{"state.Globals"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for _, fragment := range tt.contains {
				assert.Contains(t, tt.err.Error(), fragment)
			}
		})
	}
}

func TestFailuresSurviveWrapping(t *testing.T) {
	t.Parallel()

	base := &FileLocateFailure{Subject: "project root discovery", Name: "pyproject.toml"}
	wrapped := fmt.Errorf("preparing distribution: %w", base)

	var target *FileLocateFailure
	require.True(t, stderrors.As(wrapped, &target))
	assert.Equal(t, "pyproject.toml", target.Name)
	assert.ErrorIs(t, wrapped, ErrFileLocate)
	assert.NotErrorIs(t, wrapped, ErrAddressLocate)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	_, parseErr := toml.Decode("[broken", &map[string]any{})
	require.Error(t, parseErr)

	tests := map[string]struct {
		err  error
		want ErrorCategory
	}{
		"file locate is a prerequisite": {
			err:  &FileLocateFailure{Subject: "project root discovery", Name: "pyproject.toml"},
			want: Prerequisite,
		},
		"address locate is configuration": {
			err:  fmt.Errorf("edit: %w", &AddressLocateFailure{Subject: "s", Address: []string{"a"}, Part: "a"}),
			want: Configuration,
		},
		"entry assertion is configuration": {
			err:  &EntryAssertionFailure{Subject: "s", Name: "n"},
			want: Configuration,
		},
		"toml parse error is configuration": {
			err:  fmt.Errorf("reading general.toml: %w", parseErr),
			want: Configuration,
		},
		"dependency absence is a prerequisite": {
			err:  &DependencyAbsence{Dependency: "d", Feature: "f"},
			want: Prerequisite,
		},
		"plain errors are runtime": {
			err:  stderrors.New("boom"),
			want: Runtime,
		},
		"cli errors pass through": {
			err:  NewArgumentError("bad flag"),
			want: Argument,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Category)
		})
	}

	assert.Nil(t, Classify(nil))
}
