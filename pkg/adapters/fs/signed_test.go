package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/integrity"
)

func withSigning(algo integrity.Algorithm) func(*fs.Config) {
	return func(c *fs.Config) { c.Integrity = fs.NewSigned(algo) }
}

func TestSigned_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, algo := range []integrity.Algorithm{integrity.MD5, integrity.SHA512} {
		t.Run(string(algo), func(t *testing.T) {
			store, dir := setupStore(t, withSigning(algo))
			assert.Equal(t, string(algo), store.Signing())

			rec, err := store.Write(ctx, "signed body", core.ModeWriteRead, nil)
			require.NoError(t, err)

			sig := fs.NewSigned(algo).SignatureName(rec.Name)
			stored, err := os.ReadFile(filepath.Join(dir, sig))
			require.NoError(t, err)
			assert.Equal(t, integrity.Sum(algo, rec), string(stored))

			got, err := store.Read(ctx, rec.Name, nil)
			require.NoError(t, err)
			assert.Equal(t, "signed body", got.Content)
		})
	}
}

func TestSigned_SignatureName(t *testing.T) {
	sig := fs.NewSigned(integrity.SHA512).SignatureName("abcDEF.txt")
	if runtime.GOOS == "windows" {
		assert.Equal(t, "abcDEF.sha512", sig)
	} else {
		assert.Equal(t, ".abcDEF.sha512", sig)
	}
}

func TestSigned_Tamper(t *testing.T) {
	ctx := context.Background()

	t.Run("Modified Content", func(t *testing.T) {
		store, dir := setupStore(t, withSigning(integrity.MD5))
		rec, err := store.Write(ctx, "original", core.ModeWrite, nil)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, rec.Name), []byte("tampered"), 0644))

		_, err = store.Read(ctx, rec.Name, nil)
		assert.ErrorIs(t, err, core.ErrTampered)
	})

	t.Run("Modified Signature", func(t *testing.T) {
		store, dir := setupStore(t, withSigning(integrity.MD5))
		rec, err := store.Write(ctx, "original", core.ModeWrite, nil)
		require.NoError(t, err)

		sig := filepath.Join(dir, fs.NewSigned(integrity.MD5).SignatureName(rec.Name))
		require.NoError(t, os.WriteFile(sig, []byte("00000000000000000000000000000000"), 0644))

		_, err = store.Read(ctx, rec.Name, nil)
		assert.ErrorIs(t, err, core.ErrTampered)
	})

	t.Run("Different Owner", func(t *testing.T) {
		store, _ := setupStore(t, withSigning(integrity.SHA512))
		rec, err := store.Write(ctx, "mine", core.ModeWrite, core.Owner(1))
		require.NoError(t, err)

		_, err = store.Read(ctx, rec.Name, core.Owner(1))
		require.NoError(t, err)

		_, err = store.Read(ctx, rec.Name, core.Owner(2))
		assert.ErrorIs(t, err, core.ErrTampered)

		_, err = store.Read(ctx, rec.Name, nil)
		assert.ErrorIs(t, err, core.ErrTampered)
	})

	t.Run("Missing Signature", func(t *testing.T) {
		store, dir := setupStore(t, withSigning(integrity.MD5))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "unsigned.txt"), []byte("x"), 0644))

		_, err := store.Read(ctx, "unsigned", nil)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestSigned_Delete(t *testing.T) {
	ctx := context.Background()
	signer := fs.NewSigned(integrity.MD5)

	t.Run("Removes Both Files", func(t *testing.T) {
		store, dir := setupStore(t, withSigning(integrity.MD5))
		rec, err := store.Write(ctx, "gone", core.ModeWrite, nil)
		require.NoError(t, err)

		_, err = store.Delete(ctx, rec.Name)
		require.NoError(t, err)

		assert.NoFileExists(t, filepath.Join(dir, rec.Name))
		assert.NoFileExists(t, filepath.Join(dir, signer.SignatureName(rec.Name)))
	})

	t.Run("Missing Signature Is Fine", func(t *testing.T) {
		store, dir := setupStore(t, withSigning(integrity.MD5))
		rec, err := store.Write(ctx, "gone", core.ModeWrite, nil)
		require.NoError(t, err)
		require.NoError(t, os.Remove(filepath.Join(dir, signer.SignatureName(rec.Name))))

		removed, err := store.Delete(ctx, rec.Name)
		require.NoError(t, err)
		assert.Equal(t, rec.Name, removed)
	})
}

func TestSigned_ListHidesSignatures(t *testing.T) {
	ctx := context.Background()
	store, dir := setupStore(t, withSigning(integrity.SHA512))

	rec, err := store.Write(ctx, "one", core.ModeWrite, nil)
	require.NoError(t, err)
	assert.Len(t, dirNames(t, dir), 2)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Name, records[0].Name)
}

func TestSigned_ListHidesOtherAlgorithms(t *testing.T) {
	ctx := context.Background()
	md5Store, dir := setupStore(t, withSigning(integrity.MD5))

	rec, err := md5Store.Write(ctx, "signed with md5", core.ModeWrite, nil)
	require.NoError(t, err)

	sha := fs.NewStore(fs.Config{Path: dir, Integrity: fs.NewSigned(integrity.SHA512)})
	require.NoError(t, sha.Initialize(ctx))

	records, err := sha.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Name, records[0].Name)
}

func TestSigned_Prune(t *testing.T) {
	ctx := context.Background()
	store, dir := setupStore(t, withSigning(integrity.MD5))
	signer := fs.NewSigned(integrity.MD5)

	kept, err := store.Write(ctx, "kept", core.ModeWrite, nil)
	require.NoError(t, err)
	lost, err := store.Write(ctx, "lost", core.ModeWrite, nil)
	require.NoError(t, err)

	// Text file removed behind the store's back.
	require.NoError(t, os.Remove(filepath.Join(dir, lost.Name)))

	removed, err := store.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{signer.SignatureName(lost.Name)}, removed)

	assert.FileExists(t, filepath.Join(dir, signer.SignatureName(kept.Name)))
	assert.NoFileExists(t, filepath.Join(dir, signer.SignatureName(lost.Name)))

	again, err := store.Prune(ctx)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestFromSetting(t *testing.T) {
	plain, err := fs.FromSetting("off")
	require.NoError(t, err)
	assert.Equal(t, "off", plain.Name())

	signed, err := fs.FromSetting("on,sha512")
	require.NoError(t, err)
	assert.Equal(t, "sha512", signed.Name())

	_, err = fs.FromSetting("on,crc32")
	assert.Error(t, err)
}
