package fetch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Never_Gonna_Give_You_Up", sanitizeName("Never Gonna Give You Up!!"))
	assert.Equal(t, "song", sanitizeName("!!!"))
}

func TestImportSong_CopiesFile(t *testing.T) {
	root := t.TempDir()
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "My Cool Song.mp3")
	require.NoError(t, os.WriteFile(src, []byte("fake-mp3-bytes"), 0o644))

	songDir, err := ImportSong(root, src)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(songDir, "song.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "fake-mp3-bytes", string(data))
}

func TestImportSong_SkipsIfAlreadyPresent(t *testing.T) {
	root := t.TempDir()
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "track.mp3")
	require.NoError(t, os.WriteFile(src, []byte("first"), 0o644))

	songDir, err := ImportSong(root, src)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(src, []byte("second"), 0o644))
	songDir2, err := ImportSong(root, src)
	require.NoError(t, err)
	assert.Equal(t, songDir, songDir2)

	data, err := os.ReadFile(filepath.Join(songDir, "song.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data), "existing song.mp3 should not be overwritten")
}
