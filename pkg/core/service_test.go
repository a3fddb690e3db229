package core_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/core"
)

// MockStore implements core.Store in memory.
// It deliberately does NOT implement core.Prunable or core.Watchable.
type MockStore struct {
	dir   string
	files map[string]core.FileRecord
	next  int
	calls int
}

func NewMockStore() *MockStore {
	return &MockStore{
		dir:   "/vault",
		files: make(map[string]core.FileRecord),
	}
}

func (m *MockStore) Directory() string { return m.dir }

func (m *MockStore) Signing() string { return "off" }

func (m *MockStore) SetDirectory(ctx context.Context, path string) error {
	if path == "missing" {
		return fmt.Errorf("%w: %s", core.ErrNotFound, path)
	}
	m.dir = path
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]core.FileRecord, error) {
	m.calls++
	var out []core.FileRecord
	for _, rec := range m.files {
		rec.Content = ""
		out = append(out, rec)
	}
	// Sort for deterministic tests
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockStore) Read(ctx context.Context, name string, owner *int) (core.FileRecord, error) {
	m.calls++
	if !strings.HasSuffix(name, core.TextExtension) {
		name += core.TextExtension
	}
	rec, ok := m.files[name]
	if !ok {
		return core.FileRecord{}, core.ErrNotFound
	}
	rec.OwnerID = owner
	return rec, nil
}

func (m *MockStore) Write(ctx context.Context, content string, mode core.Mode, owner *int) (core.FileRecord, error) {
	m.calls++
	m.next++
	rec := core.FileRecord{
		Name:      fmt.Sprintf("file%d%s", m.next, core.TextExtension),
		Content:   content,
		CreatedAt: time.Now(),
		Size:      int64(len(content)),
		OwnerID:   owner,
	}
	m.files[rec.Name] = rec
	return rec, nil
}

func (m *MockStore) Delete(ctx context.Context, name string) (string, error) {
	m.calls++
	if !strings.HasSuffix(name, core.TextExtension) {
		name += core.TextExtension
	}
	if _, ok := m.files[name]; !ok {
		return "", core.ErrNotFound
	}
	delete(m.files, name)
	return name, nil
}

func TestService_CRUD(t *testing.T) {
	svc := core.NewService(NewMockStore(), nil)
	ctx := context.TODO()

	// 1. Write
	rec, err := svc.WriteFile(ctx, "hello world", core.ModeWriteRead, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(11), rec.Size)
	assert.Nil(t, rec.OwnerID)

	// 2. Read
	got, err := svc.ReadFile(ctx, rec.Name, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Content)

	// 3. List
	_, err = svc.WriteFile(ctx, "second", core.ModeAppend, core.Owner(7))
	require.NoError(t, err)
	files, err := svc.ListFiles(ctx, "")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	// 4. Delete
	removed, err := svc.DeleteFile(ctx, rec.Name)
	require.NoError(t, err)
	assert.Equal(t, rec.Name, removed)

	_, err = svc.ReadFile(ctx, rec.Name, nil)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_WriteFile_InvalidMode(t *testing.T) {
	store := NewMockStore()
	svc := core.NewService(store, nil)

	_, err := svc.WriteFile(context.TODO(), "content", core.Mode("x+"), nil)
	assert.ErrorIs(t, err, core.ErrInvalidMode)
	assert.Zero(t, store.calls, "store must not be touched for an invalid mode")
}

func TestService_WriteFile_DefaultMode(t *testing.T) {
	svc := core.NewService(NewMockStore(), nil)
	assert.Equal(t, core.ModeWriteRead, svc.DefaultMode())

	require.NoError(t, svc.SetDefaultMode(core.ModeAppend))
	assert.Equal(t, core.ModeAppend, svc.DefaultMode())

	rec, err := svc.WriteFile(context.TODO(), "defaulted", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "defaulted", rec.Content)

	assert.ErrorIs(t, svc.SetDefaultMode("q"), core.ErrInvalidMode)
	assert.Equal(t, core.ModeAppend, svc.DefaultMode())
}

func TestService_EmptyNames(t *testing.T) {
	store := NewMockStore()
	svc := core.NewService(store, nil)

	_, err := svc.ReadFile(context.TODO(), "", nil)
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.DeleteFile(context.TODO(), "")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Zero(t, store.calls)
}

func TestService_ListFiles_Pattern(t *testing.T) {
	store := NewMockStore()
	store.files["alpha.txt"] = core.FileRecord{Name: "alpha.txt"}
	store.files["beta.txt"] = core.FileRecord{Name: "beta.txt"}
	store.files["notes.md"] = core.FileRecord{Name: "notes.md"}
	svc := core.NewService(store, nil)

	t.Run("Glob Filters Names", func(t *testing.T) {
		files, err := svc.ListFiles(context.TODO(), "*.txt")
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "alpha.txt", files[0].Name)
		assert.Equal(t, "beta.txt", files[1].Name)
	})

	t.Run("Invalid Pattern", func(t *testing.T) {
		_, err := svc.ListFiles(context.TODO(), "[")
		assert.ErrorIs(t, err, core.ErrInvalidPattern)
	})
}

func TestService_ChangeDirectory(t *testing.T) {
	svc := core.NewService(NewMockStore(), nil)

	require.NoError(t, svc.ChangeDirectory(context.TODO(), "/elsewhere"))
	assert.Equal(t, "/elsewhere", svc.Directory())

	err := svc.ChangeDirectory(context.TODO(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "/elsewhere", svc.Directory(), "failed change must keep the pointer")
}

func TestService_Unsupported(t *testing.T) {
	svc := core.NewService(NewMockStore(), nil)

	_, err := svc.Prune(context.TODO())
	require.Error(t, err)
	assert.Equal(t, "store does not support pruning", err.Error())

	_, err = svc.Watch(context.TODO(), "*")
	require.Error(t, err)
	assert.Equal(t, "store does not support watching", err.Error())
}

func TestService_State(t *testing.T) {
	svc := core.NewService(NewMockStore(), nil)

	state, ok := svc.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, "/vault", state.Directory)
	assert.Equal(t, "off", state.Signing)
	assert.Equal(t, core.DefaultMode, state.DefaultMode)
	assert.Equal(t, "store", state.StoreType)
	assert.Equal(t, "service", svc.ComponentType())
}

func TestParseMode(t *testing.T) {
	for _, m := range core.Modes() {
		got, err := core.ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	assert.Len(t, core.Modes(), 11)

	_, err := core.ParseMode("rw")
	assert.True(t, errors.Is(err, core.ErrInvalidMode))
}
