package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/internal/platform"
	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/core"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "vault")

		svc, err := platform.New(dir)
		require.NoError(t, err)
		assert.DirExists(t, dir)
		assert.Equal(t, dir, svc.Directory())
		assert.Equal(t, "off", svc.Signing())
		assert.Equal(t, core.DefaultMode, svc.DefaultMode())
	})

	t.Run("MustExist", func(t *testing.T) {
		_, err := platform.New(filepath.Join(t.TempDir(), "missing"), platform.WithMustExist(true))
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Signing", func(t *testing.T) {
		dir := t.TempDir()
		svc, err := platform.New(dir, platform.WithSigning("on,md5"))
		require.NoError(t, err)
		assert.Equal(t, "md5", svc.Signing())

		rec, err := svc.WriteFile(ctx, "signed", "", nil)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2, "text file plus signature")

		_, err = svc.ReadFile(ctx, rec.Name, nil)
		require.NoError(t, err)
	})

	t.Run("Invalid Signing", func(t *testing.T) {
		_, err := platform.New(t.TempDir(), platform.WithSigning("on,crc"))
		assert.Error(t, err)
	})

	t.Run("Invalid Default Mode", func(t *testing.T) {
		_, err := platform.New(t.TempDir(), platform.WithDefaultMode("z"))
		assert.ErrorIs(t, err, core.ErrInvalidMode)
	})

	t.Run("Name Generator", func(t *testing.T) {
		svc, err := platform.New(t.TempDir(), platform.WithNameGenerator(func() (string, error) {
			return "fixedfixedfixed", nil
		}), platform.WithNameAttempts(1))
		require.NoError(t, err)

		rec, err := svc.WriteFile(ctx, "a", core.ModeWrite, nil)
		require.NoError(t, err)
		assert.Equal(t, "fixedfixedfixed.txt", rec.Name)

		_, err = svc.WriteFile(ctx, "b", core.ModeWrite, nil)
		assert.Error(t, err)
	})
}

func TestInit_InjectedStore(t *testing.T) {
	injected := fs.NewStore(fs.Config{Path: t.TempDir()})

	store, err := platform.Init("ignored", platform.WithStore(injected))
	require.NoError(t, err)
	assert.Same(t, injected, store)
}
