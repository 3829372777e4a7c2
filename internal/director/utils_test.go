package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStoryboardPath(t *testing.T) {
	path := GenerateStoryboardPath(DefaultDir)

	assert.True(t, strings.HasPrefix(path, DefaultDir+string(filepath.Separator)+"storyboard_"), path)
	assert.True(t, strings.HasSuffix(path, ".yaml"), path)

	t.Logf("Generated path: %s", path)
}

func TestFindLatestStoryboard(t *testing.T) {
	testDir := t.TempDir()

	files := []string{
		filepath.Join(testDir, "storyboard_2026-02-12_10-00-00.yaml"),
		filepath.Join(testDir, "storyboard_2026-02-13_01-00-00.yml"),
		filepath.Join(testDir, "storyboard_2026-02-11_15-30-00.yaml"),
	}

	for i, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("version: \"1.0\"\n"), 0644))
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		require.NoError(t, os.Chtimes(f, modTime, modTime))
	}
	require.NoError(t, os.WriteFile(filepath.Join(testDir, "notes.txt"), []byte("x"), 0644))

	latest, err := FindLatestStoryboard(testDir)
	require.NoError(t, err)
	assert.Equal(t, files[len(files)-1], latest)
}

func TestFindLatestStoryboardEmpty(t *testing.T) {
	_, err := FindLatestStoryboard(t.TempDir())
	assert.Error(t, err)

	_, err = FindLatestStoryboard(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
