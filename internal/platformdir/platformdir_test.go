package platformdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkVersionDirs(t *testing.T, names ...string) string {
	dir := t.TempDir()
	for _, n := range names {
		require.NoError(t, os.Mkdir(filepath.Join(dir, n), 0o755))
	}
	return dir
}

func TestParseVersionRejectsWrongShape(t *testing.T) {
	_, ok := ParseVersion("8.3.27")
	assert.False(t, ok)
	_, ok = ParseVersion("8.3.27.x")
	assert.False(t, ok)
}

func TestDiscoverPicksLatestWhenNoVersionRequested(t *testing.T) {
	dir := mkVersionDirs(t, "8.3.20.1549", "8.3.27.1644", "8.3.25.1257", "not-a-version")

	resolved, err := Discover(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "8.3.27.1644"), resolved)
}

func TestDiscoverPicksClosestToRequested(t *testing.T) {
	dir := mkVersionDirs(t, "8.3.20.1549", "8.3.27.1644", "8.3.25.1257")

	resolved, err := Discover(dir, "8.3.26.0")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "8.3.25.1257"), resolved)
}

func TestDiscoverErrorsWithNoVersionDirectories(t *testing.T) {
	dir := mkVersionDirs(t, "not-a-version", "also-not-one")

	_, err := Discover(dir, "")
	assert.Error(t, err)
}
