package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go-careerbridge/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exercise runs the same round trip against any backend.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.SetToken(ctx, "tok-1"))
	require.NoError(t, s.SetRememberedEmail(ctx, "sam@careerbridge.test"))

	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)

	require.NoError(t, s.ClearToken(ctx))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	email, err := s.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sam@careerbridge.test", email, "logout keeps the remembered email")

	require.NoError(t, s.SetRememberedEmail(ctx, ""))
	email, err = s.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestMemoryStore(t *testing.T) {
	exercise(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	fs, err := NewFileStore(path, "")
	require.NoError(t, err)
	exercise(t, fs)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := NewFileStore(path, "")
	require.NoError(t, err)
	require.NoError(t, first.SetToken(ctx, "persisted"))

	second, err := NewFileStore(path, "")
	require.NoError(t, err)
	tok, err := second.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", tok)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	fs, err := NewFileStore(path, "")
	require.NoError(t, err)
	_, err = fs.Token(context.Background())
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	path := filepath.Join(t.TempDir(), "s.json")
	s, err = Open(ctx, Options{Backend: "FILE", FilePath: path})
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, s)
	assert.Equal(t, path, s.(*FileStore).Path())

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Backend: "redis"})
	assert.Error(t, err, "redis without a URL")
}

func TestFileStoreProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)

	alice, err := Open(ctx, Options{Backend: "file", Profile: "alice"})
	require.NoError(t, err)
	bob, err := Open(ctx, Options{Backend: "file", Profile: "bob"})
	require.NoError(t, err)

	alicePath := alice.(*FileStore).Path()
	assert.NotEqual(t, alicePath, bob.(*FileStore).Path())
	assert.True(t, strings.HasSuffix(alicePath, filepath.Join("careerbridge", "alice", "session.json")))

	require.NoError(t, alice.SetToken(ctx, "alice-token"))
	tok, err := bob.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	def, err := DefaultPath("")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(def, filepath.Join("careerbridge", "default", "session.json")))

	for _, bad := range []string{"..", "a/b", `a\b`} {
		_, err := DefaultPath(bad)
		assert.Error(t, err, bad)
	}
}

// TestRedisStore needs a live server: CB_TEST_REDIS_URL=redis://localhost:6379/15
func TestRedisStore(t *testing.T) {
	url := os.Getenv("CB_TEST_REDIS_URL")
	if url == "" {
		t.Skip("CB_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	client, err := redis.NewClient(ctx, redis.Config{URL: url})
	require.NoError(t, err)

	s := NewRedisStore(client, "test-"+t.Name())
	t.Cleanup(func() {
		_ = s.ClearToken(ctx)
		_ = s.SetRememberedEmail(ctx, "")
		_ = s.Close()
	})
	exercise(t, s)
}
