package mediainfo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNativeSession(t *testing.T) *MediaInfo {
	t.Helper()
	if !IsAvailable() {
		t.Skip("libmediainfo not available")
	}
	mi, err := New(Config{})
	require.NoError(t, err)
	t.Cleanup(func() { mi.Close() })
	return mi
}

func TestNativeVersion(t *testing.T) {
	mi := newNativeSession(t)

	v, err := mi.Version()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v, "MediaInfoLib"), v)
	t.Logf("libmediainfo %s, mode %s", v, mi.Mode())

	parsed, err := ParseLibraryVersion(v)
	require.NoError(t, err)
	assert.NotZero(t, parsed.Major()+parsed.Minor())
}

func TestNativeOpenMissingFile(t *testing.T) {
	mi := newNativeSession(t)

	status, err := mi.Open(filepath.Join(t.TempDir(), "missing.mkv"))
	require.NoError(t, err)
	assert.Equal(t, 0, status)

	v, err := mi.Get(StreamGeneral, AllStreams, "Duration")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	v, err = mi.GetI(StreamGeneral, 0, 100000, InfoText)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestNativeOpenTextFile(t *testing.T) {
	mi := newNativeSession(t)

	path := filepath.Join(t.TempDir(), "notes – ü.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a media file\n"), 0o600))

	status, err := mi.Open(path)
	require.NoError(t, err)
	if status == 0 {
		t.Skip("library refused plain file")
	}
	defer mi.CloseFile()

	n, err := mi.StreamCount(StreamGeneral)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	name, err := mi.Get(StreamGeneral, 0, "FileName")
	require.NoError(t, err)
	assert.Equal(t, "notes – ü", name)
}

func TestNativeCloseTwice(t *testing.T) {
	if !IsAvailable() {
		t.Skip("libmediainfo not available")
	}
	mi, err := New(Config{})
	require.NoError(t, err)
	require.NoError(t, mi.Close())
	require.NoError(t, mi.Close())
}

// BenchmarkNativeCallOverhead measures round trips through the loaded library,
// including parameter marshaling.
func BenchmarkNativeCallOverhead(b *testing.B) {
	if !IsAvailable() {
		b.Skip("libmediainfo not available")
	}

	b.Run("CreateClose", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			mi, err := New(Config{})
			if err != nil {
				b.Fatal(err)
			}
			mi.Close()
		}
	})

	mi, err := New(Config{})
	if err != nil {
		b.Fatal(err)
	}
	defer mi.Close()

	b.Run("Version", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := mi.Version(); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("GetUnopened", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := mi.Get(StreamGeneral, 0, "Format"); err != nil {
				b.Fatal(err)
			}
		}
	})
}
