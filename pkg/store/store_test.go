package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/objprobe/objprobe/pkg/storerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Registry Tests
// ============================================================================

func TestRegister_CustomType(t *testing.T) {
	t.Parallel()

	customType := Type("test-custom")

	Register(customType, func(cfg Config) (Store, error) {
		return NewMemory(), nil
	})

	st, err := New(Config{Type: customType})
	require.NoError(t, err)
	require.NotNil(t, st)
	defer st.Close()

	assert.Equal(t, TypeMemory, st.Type())
}

func TestNew_UnknownType(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Type: "unknown-type"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store type")
}

func TestNew_MemoryType(t *testing.T) {
	t.Parallel()

	st, err := New(Config{Type: TypeMemory})
	require.NoError(t, err)
	require.NotNil(t, st)
	defer st.Close()

	assert.Equal(t, TypeMemory, st.Type())
}

// ============================================================================
// Manager Tests
// ============================================================================

func TestManager_Add_Memory(t *testing.T) {
	t.Parallel()

	mgr := NewManager()
	defer mgr.Close()

	err := mgr.AddMemory("test-mem")
	require.NoError(t, err)

	st, ok := mgr.Get("test-mem")
	assert.True(t, ok)
	require.NotNil(t, st)
	assert.Equal(t, TypeMemory, st.Type())
}

func TestManager_Add_UnknownType(t *testing.T) {
	t.Parallel()

	mgr := NewManager()
	defer mgr.Close()

	err := mgr.Add("test", Config{Type: "invalid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store type")
}

func TestManager_Add_ReplacesExisting(t *testing.T) {
	t.Parallel()

	mgr := NewManager()
	defer mgr.Close()

	err := mgr.AddMemory("test")
	require.NoError(t, err)

	st1, ok := mgr.Get("test")
	require.True(t, ok)
	st1.(*Memory).Put("key1", []byte("data1"))

	err = mgr.AddMemory("test")
	require.NoError(t, err)

	st2, ok := mgr.Get("test")
	require.True(t, ok)
	exists, err := st2.Exists(context.Background(), "key1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestManager_Get_NotFound(t *testing.T) {
	t.Parallel()

	mgr := NewManager()
	defer mgr.Close()

	st, ok := mgr.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, st)
}

func TestManager_Remove(t *testing.T) {
	t.Parallel()

	mgr := NewManager()
	defer mgr.Close()

	err := mgr.AddMemory("test")
	require.NoError(t, err)

	err = mgr.Remove("test")
	require.NoError(t, err)

	_, ok := mgr.Get("test")
	assert.False(t, ok)
}

func TestManager_List(t *testing.T) {
	t.Parallel()

	mgr := NewManager()
	defer mgr.Close()

	require.NoError(t, mgr.AddMemory("store-a"))
	require.NoError(t, mgr.AddMemory("store-b"))
	require.NoError(t, mgr.AddMemory("store-c"))

	ids := mgr.List()
	assert.Len(t, ids, 3)
	assert.Contains(t, ids, "store-a")
	assert.Contains(t, ids, "store-b")
	assert.Contains(t, ids, "store-c")
}

func TestManager_Close(t *testing.T) {
	t.Parallel()

	mgr := NewManager()

	require.NoError(t, mgr.AddMemory("store1"))
	require.NoError(t, mgr.AddMemory("store2"))

	err := mgr.Close()
	require.NoError(t, err)

	ids := mgr.List()
	assert.Empty(t, ids)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	mgr := NewManager()
	defer mgr.Close()

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = mgr.AddMemory("store-" + string(rune('a'+id)))
		}(i)
	}

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mgr.Get("store-a")
		}()
	}

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mgr.List()
		}()
	}

	wg.Wait()
}

// ============================================================================
// Memory Store Tests
// ============================================================================

func TestMemory_Stat(t *testing.T) {
	t.Parallel()

	ms := NewMemory()
	defer ms.Close()
	ctx := context.Background()

	ms.Put("a/1.txt", []byte("0123456789"))

	info, err := ms.Stat(ctx, "a/1.txt")
	require.NoError(t, err)
	assert.Equal(t, "a/1.txt", info.Key)
	assert.Equal(t, int64(10), info.Size)
	assert.False(t, info.ModTime.IsZero())
}

func TestMemory_Stat_NotFound(t *testing.T) {
	t.Parallel()

	ms := NewMemory()
	defer ms.Close()

	_, err := ms.Stat(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, storerr.ErrNotFound))
}

func TestMemory_Stat_Idempotent(t *testing.T) {
	t.Parallel()

	ms := NewMemory()
	defer ms.Close()
	ctx := context.Background()

	ms.PutSized("key", 1<<20)

	first, err := ms.Stat(ctx, "key")
	require.NoError(t, err)
	second, err := ms.Stat(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMemory_List(t *testing.T) {
	t.Parallel()

	ms := NewMemory()
	defer ms.Close()
	ctx := context.Background()

	ms.Put("a/1.txt", []byte("aaaaaaaaaa"))
	ms.Put("a/2.txt", []byte("bbbbbbbbbbbbbbbbbbbb"))
	ms.Put("b/3.txt", []byte("cc"))

	infos, err := ms.List(ctx, "a/")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	// Lexicographic order, mirroring S3.
	assert.Equal(t, "a/1.txt", infos[0].Key)
	assert.Equal(t, "a/2.txt", infos[1].Key)
}

func TestMemory_List_Empty(t *testing.T) {
	t.Parallel()

	ms := NewMemory()
	defer ms.Close()

	infos, err := ms.List(context.Background(), "nothing/")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestMemory_Exists(t *testing.T) {
	t.Parallel()

	ms := NewMemory()
	defer ms.Close()
	ctx := context.Background()

	exists, err := ms.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.False(t, exists)

	ms.Put("key1", []byte("data"))

	exists, err = ms.Exists(ctx, "key1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemory_HasPrefix(t *testing.T) {
	t.Parallel()

	ms := NewMemory()
	defer ms.Close()
	ctx := context.Background()

	ms.Put("dir/child", []byte("x"))

	has, err := ms.HasPrefix(ctx, "dir/")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = ms.HasPrefix(ctx, "other/")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMemory_FailWith(t *testing.T) {
	t.Parallel()

	ms := NewMemory()
	defer ms.Close()
	ctx := context.Background()

	ms.Put("key", []byte("data"))
	ms.FailWith(errors.New("injected outage"))

	_, err := ms.Stat(ctx, "key")
	assert.True(t, errors.Is(err, storerr.ErrTransport))

	_, err = ms.List(ctx, "")
	assert.True(t, errors.Is(err, storerr.ErrTransport))

	ms.FailWith(nil)
	_, err = ms.Stat(ctx, "key")
	assert.NoError(t, err)
}

// ============================================================================
// Local Store Tests
// ============================================================================

func seedLocal(t *testing.T, files map[string]string) Store {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	local, err := NewLocal(Config{Type: TypeLocal, Path: tmpDir})
	require.NoError(t, err)
	t.Cleanup(func() { local.Close() })
	return local
}

func TestLocal_NewLocal_NoPath(t *testing.T) {
	t.Parallel()

	_, err := NewLocal(Config{Type: TypeLocal, Path: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path required")
}

func TestLocal_NewLocal_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := NewLocal(Config{Type: TypeLocal, Path: filepath.Join(t.TempDir(), "does-not-exist")})
	require.Error(t, err)
}

func TestLocal_Stat(t *testing.T) {
	t.Parallel()

	local := seedLocal(t, map[string]string{"a/1.txt": "hello world"})

	info, err := local.Stat(context.Background(), "a/1.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(11), info.Size)
	assert.False(t, info.IsDir)
}

func TestLocal_Stat_Directory(t *testing.T) {
	t.Parallel()

	local := seedLocal(t, map[string]string{"a/b/nested": "x"})

	info, err := local.Stat(context.Background(), "a/b")
	require.NoError(t, err)
	assert.True(t, info.IsDir)
	assert.Equal(t, int64(0), info.Size)
}

func TestLocal_Stat_NotFound(t *testing.T) {
	t.Parallel()

	local := seedLocal(t, nil)

	_, err := local.Stat(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, storerr.ErrNotFound))
}

func TestLocal_Stat_EscapesRoot(t *testing.T) {
	t.Parallel()

	local := seedLocal(t, nil)

	_, err := local.Stat(context.Background(), "../outside")
	require.Error(t, err)
	assert.True(t, errors.Is(err, storerr.ErrInvalidReference))
}

func TestLocal_List(t *testing.T) {
	t.Parallel()

	local := seedLocal(t, map[string]string{
		"a/1.txt": "aaaaaaaaaa",
		"a/2.txt": "bbbbbbbbbbbbbbbbbbbb",
		"b/3.txt": "cc",
	})

	infos, err := local.List(context.Background(), "a/")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	keys := []string{infos[0].Key, infos[1].Key}
	assert.Contains(t, keys, "a/1.txt")
	assert.Contains(t, keys, "a/2.txt")
}

func TestLocal_List_Empty(t *testing.T) {
	t.Parallel()

	local := seedLocal(t, map[string]string{"a/1.txt": "x"})

	infos, err := local.List(context.Background(), "z/")
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestLocal_Exists(t *testing.T) {
	t.Parallel()

	local := seedLocal(t, map[string]string{"a/1.txt": "x"})
	ctx := context.Background()

	exists, err := local.Exists(ctx, "a/1.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	// Directories are not objects.
	exists, err = local.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = local.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}
