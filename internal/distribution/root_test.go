package distribution

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	appErrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func writeDescriptor(t require.TestingT, dir, name string) {
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := "[project]\nname = \"" + name + "\"\nversion = \"1.0.0\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DescriptorName), []byte(content), 0o644))
}

func TestLocateProjectRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "project")
	writeDescriptor(t, root, "test-package")
	nested := filepath.Join(root, "level_0", "level_1")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	caller := filepath.Join(nested, "caller.go")
	require.NoError(t, os.WriteFile(caller, []byte("package caller\n"), 0o644))

	tests := map[string]struct {
		anchor   string
		ceilings string
		want     string
		wantErr  bool
	}{
		"anchor is root": {
			anchor:   root,
			ceilings: base,
			want:     root,
		},
		"nested anchor": {
			anchor:   nested,
			ceilings: base,
			want:     root,
		},
		"file anchor": {
			anchor:   caller,
			ceilings: base,
			want:     root,
		},
		"ceiling is examined": {
			anchor:   nested,
			ceilings: root,
			want:     root,
		},
		"ceiling is never passed": {
			anchor:   nested,
			ceilings: filepath.Join(root, "level_0"),
			wantErr:  true,
		},
		"one of several ceilings stops ascent": {
			anchor:   nested,
			ceilings: strings.Join([]string{"/nonexistent/ceiling", filepath.Join(root, "level_0")}, string(os.PathListSeparator)),
			wantErr:  true,
		},
		"empty ceiling list permits full ascent": {
			anchor:   nested,
			ceilings: "",
			want:     root,
		},
		"empty entries are ignored": {
			anchor:   nested,
			ceilings: string(os.PathListSeparator),
			want:     root,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(CeilingVariable, tt.ceilings)
			got, err := LocateProjectRoot(tt.anchor)
			if tt.wantErr {
				var failure *appErrors.FileLocateFailure
				require.True(t, errors.As(err, &failure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocateProjectRoot_NotFound(t *testing.T) {
	base := t.TempDir()
	anchor := filepath.Join(base, "a", "b")
	require.NoError(t, os.MkdirAll(anchor, 0o755))
	t.Setenv(CeilingVariable, base)

	_, err := LocateProjectRoot(anchor)

	var failure *appErrors.FileLocateFailure
	require.True(t, errors.As(err, &failure))
	assert.ErrorIs(t, err, appErrors.ErrFileLocate)
	assert.Contains(t, err.Error(), "pyproject.toml")
	assert.Contains(t, err.Error(), "project root discovery")
}

// TestLocateProjectRoot_AnyDescendant checks that every descendant of a
// project root without a closer descriptor resolves to that root.
func TestLocateProjectRoot_AnyDescendant(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	writeDescriptor(t, root, "X")
	t.Setenv(CeilingVariable, base)

	rapid.Check(t, func(rt *rapid.T) {
		segments := rapid.SliceOfN(rapid.StringMatching(`[a-z][a-z0-9_]{0,7}`), 0, 6).Draw(rt, "segments")
		anchor := filepath.Join(append([]string{root}, segments...)...)
		require.NoError(rt, os.MkdirAll(anchor, 0o755))

		got, err := LocateProjectRoot(anchor)
		require.NoError(rt, err)
		assert.Equal(rt, root, got)

		name, err := readProjectName(context.Background(), got)
		require.NoError(rt, err)
		assert.Equal(rt, "X", name)
	})
}

func TestReadProjectName_MissingName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DescriptorName), []byte("[tool.other]\nkey = 1\n"), 0o644))

	_, err := readProjectName(context.Background(), root)

	var failure *appErrors.EntryAssertionFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "project.name", failure.Name)
}

func TestReadProjectName_Malformed(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DescriptorName), []byte("[project\nname ="), 0o644))

	_, err := readProjectName(context.Background(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading project descriptor")
}
