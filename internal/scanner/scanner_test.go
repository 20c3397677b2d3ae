package scanner

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wizzomafizzo/rebrand/internal/config"
	"github.com/wizzomafizzo/rebrand/internal/pathfilter"
)

const root = "/project"

func write(t *testing.T, fs afero.Fs, rel string, data []byte) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, afero.WriteFile(fs, path, data, 0o600))
	return path
}

func TestFind_ReturnsExactlyTheFilesContainingNeedle(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	app := write(t, fs, "composeApp/src/commonMain/kotlin/App.kt", []byte("package com.jetbrains.kmpapp\n"))
	gradle := write(t, fs, "composeApp/build.gradle.kts", []byte(`namespace = "com.jetbrains.kmpapp"`))
	write(t, fs, "README.md", []byte("nothing to see"))
	write(t, fs, "partial.txt", []byte("com.jetbrains.kmp"))

	got := Find(fs, root, "com.jetbrains.kmpapp", nil)

	assert.Equal(t, []string{gradle, app}, got)
}

func TestFind_NeverReportsSkippedPaths(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	kept := write(t, fs, "shared/Greeting.kt", []byte("KMP App"))
	write(t, fs, "composeApp/build/intermediates/Greeting.kt", []byte("KMP App"))
	write(t, fs, ".git/COMMIT_EDITMSG", []byte("KMP App"))
	write(t, fs, "rebrand.ts", []byte(`const OLD_APP_NAME = "KMP App";`))

	filter := pathfilter.MustNew(config.DefaultSkipPatterns)
	got := Find(fs, root, "KMP App", filter)

	assert.Equal(t, []string{kept}, got)
}

func TestFind_IgnoresBinaryContent(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	write(t, fs, "blob.bin", append([]byte("KMP App"), 0x00, 0xff))
	write(t, fs, "latin1.txt", []byte{'K', 'M', 'P', ' ', 'A', 'p', 'p', 0xe9})
	text := write(t, fs, "ok.txt", []byte("KMP App ✓"))

	assert.Equal(t, []string{text}, Find(fs, root, "KMP App", nil))
}

func TestFind_MissingRoot(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Find(afero.NewMemMapFs(), "/missing", "x", nil))
}

func TestReadText(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := write(t, fs, "a.txt", []byte("hello"))

	content, ok := ReadText(fs, path)
	assert.True(t, ok)
	assert.Equal(t, "hello", content)

	_, ok = ReadText(fs, filepath.Join(root, "missing.txt"))
	assert.False(t, ok)
}
