package distribution

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	appErrors "github.com/ariel-frischer/appcore/internal/errors"
	"github.com/ariel-frischer/appcore/internal/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare_DevelopmentMode(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "checkout")
	writeDescriptor(t, root, "dev-package")
	t.Setenv(CeilingVariable, base)

	exits := lifecycle.NewExits()
	t.Cleanup(func() { _ = exits.Close() })

	info, err := Prepare(context.Background(), exits, PrepareOptions{
		Package:  "example.com/dev",
		Anchor:   root,
		Registry: NewRegistry(),
	})
	require.NoError(t, err)
	assert.True(t, info.Editable())
	assert.Equal(t, "dev-package", info.Name())
	assert.Equal(t, root, info.Location())
	assert.Equal(t, 0, exits.Len())
}

func TestPrepare_PackageFoundButNotDistributed(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "project")
	writeDescriptor(t, root, "found-not-distributed")
	t.Setenv(CeilingVariable, base)

	registry := NewRegistry()
	registry.Register("example.com/other", Distribution{Name: "other", Root: base})

	info, err := Prepare(context.Background(), lifecycle.NewExits(), PrepareOptions{
		Package:  "example.com/mypackage",
		Anchor:   filepath.Join(root, "caller.go"),
		Registry: registry,
	})
	require.NoError(t, err)
	assert.True(t, info.Editable())
	assert.Equal(t, "found-not-distributed", info.Name())
	assert.Equal(t, root, info.Location())
}

func TestPrepare_AmbiguousPackageFallsBackToDevelopment(t *testing.T) {
	base := t.TempDir()
	writeDescriptor(t, base, "checkout")
	t.Setenv(CeilingVariable, base)

	registry := NewRegistry()
	registry.Register("example.com/pkg", Distribution{Name: "one", Root: "/one"})
	registry.Register("example.com/pkg", Distribution{Name: "two", Root: "/two"})

	info, err := Prepare(context.Background(), lifecycle.NewExits(), PrepareOptions{
		Package: "example.com/pkg", Anchor: base, Registry: registry,
	})
	require.NoError(t, err)
	assert.True(t, info.Editable())
	assert.Equal(t, "checkout", info.Name())
}

func TestPrepare_ProductionPlainDirectory(t *testing.T) {
	t.Parallel()

	installed := t.TempDir()
	registry := NewRegistry()
	registry.Register("example.com/installed", Distribution{Name: "installed-dist", Root: installed})

	exits := lifecycle.NewExits()
	info, err := Prepare(context.Background(), exits, PrepareOptions{
		Package: "example.com/installed", Anchor: installed, Registry: registry,
	})
	require.NoError(t, err)
	assert.False(t, info.Editable())
	assert.Equal(t, "installed-dist", info.Name())
	assert.Equal(t, installed, info.Location())
	assert.Equal(t, 0, exits.Len())
}

func TestPrepare_ProductionExtractsData(t *testing.T) {
	t.Parallel()

	data := fstest.MapFS{
		"data/configuration/general.toml": {Data: []byte("[app]\nname = \"x\"\n")},
	}
	registry := NewRegistry()
	registry.Register("example.com/embedded", Distribution{Name: "embedded-dist", Data: data})

	exits := lifecycle.NewExits()
	info, err := Prepare(context.Background(), exits, PrepareOptions{
		Package: "example.com/embedded", Anchor: t.TempDir(), Registry: registry,
	})
	require.NoError(t, err)
	assert.False(t, info.Editable())
	assert.Equal(t, "embedded-dist", info.Name())

	template := info.ProvideDataLocation("configuration", "general.toml")
	content, err := os.ReadFile(template)
	require.NoError(t, err)
	assert.Contains(t, string(content), "name = \"x\"")

	require.NoError(t, exits.Close())
	_, err = os.Stat(info.Location())
	assert.True(t, os.IsNotExist(err), "extraction is removed on exit")
}

func TestPrepare_ProductionWithoutData(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("example.com/empty", Distribution{Name: "empty"})

	_, err := Prepare(context.Background(), lifecycle.NewExits(), PrepareOptions{
		Package: "example.com/empty", Anchor: t.TempDir(), Registry: registry,
	})
	var failure *appErrors.OperationInvalidity
	assert.True(t, errors.As(err, &failure))
}

func TestPrepare_NoDescriptor(t *testing.T) {
	base := t.TempDir()
	t.Setenv(CeilingVariable, base)

	_, err := Prepare(context.Background(), lifecycle.NewExits(), PrepareOptions{
		Anchor: base, Registry: NewRegistry(),
	})
	assert.ErrorIs(t, err, appErrors.ErrFileLocate)
}

func TestPrepare_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Prepare(ctx, lifecycle.NewExits(), PrepareOptions{Anchor: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}
