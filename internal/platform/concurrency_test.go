package platform_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/internal/platform"
	"github.com/aretw0/scribe/pkg/core"
)

// TestConcurrency_Writers runs many signed writers alongside an external
// actor dropping unrelated files into the same directory.
func TestConcurrency_Writers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	dir := t.TempDir()
	svc, err := platform.New(dir, platform.WithSigning("on,md5"))
	require.NoError(t, err)

	ctx := context.Background()
	const writers, perWriter = 8, 25

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		names = make(map[string]int)
		errs  []error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = os.WriteFile(filepath.Join(dir, fmt.Sprintf("noise-%d.log", i)), []byte("noise"), 0o644)
		}
	}()

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(owner int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				rec, err := svc.WriteFile(ctx, fmt.Sprintf("owner %d item %d", owner, i), core.ModeWrite, core.Owner(owner))
				mu.Lock()
				if err != nil {
					errs = append(errs, err)
				} else {
					names[rec.Name] = owner
				}
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, names, writers*perWriter, "every write must get its own name")

	for name, owner := range names {
		rec, err := svc.ReadFile(ctx, name, core.Owner(owner))
		require.NoError(t, err, name)
		assert.Contains(t, rec.Content, fmt.Sprintf("owner %d ", owner))
	}

	files, err := svc.ListFiles(ctx, "*.txt")
	require.NoError(t, err)
	assert.Len(t, files, writers*perWriter)
}

// TestConcurrency_WatchWhileChangingDirectory runs watchers against a moving
// current directory. Run with -race.
func TestConcurrency_WatchWhileChangingDirectory(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	require.NoError(t, os.Mkdir(a, 0o755))
	require.NoError(t, os.Mkdir(b, 0o755))

	svc, err := platform.New(a)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			target := a
			if i%2 == 0 {
				target = b
			}
			assert.NoError(t, svc.ChangeDirectory(ctx, target))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			watchCtx, stop := context.WithCancel(ctx)
			_, err := svc.Watch(watchCtx, "")
			assert.NoError(t, err)
			stop()
			state, ok := svc.State().(core.ServiceState)
			if assert.True(t, ok) {
				assert.Contains(t, []string{a, b}, state.Directory)
			}
		}
	}()
	wg.Wait()
}
