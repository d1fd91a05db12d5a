package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProject(t *testing.T) {
	p, err := Parse([]byte(`
coolc: ">= 1.0, < 2"
sources:
  - main.cl
  - lib/list.cl
require_main: true
color: never
archive: runs.db
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"main.cl", "lib/list.cl"}, p.Sources)
	assert.True(t, p.RequireMain)
	assert.Equal(t, "never", p.Color)
	assert.Equal(t, "runs.db", p.Archive)
}

func TestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectFileName)
	require.NoError(t, os.WriteFile(path, []byte("sources: [a.cl, /abs/b.cl]\narchive: out/runs.db\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.cl"), "/abs/b.cl"}, p.SourcePaths())
	assert.Equal(t, filepath.Join(dir, "out/runs.db"), p.ArchivePath())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersionConstraint(t *testing.T) {
	p := &Project{Coolc: ">= 2.0"}
	err := p.Validate("1.3.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionMismatch)

	assert.NoError(t, p.Validate("2.1.0"))
	assert.NoError(t, (&Project{}).Validate(Version))
}

func TestInvalidProject(t *testing.T) {
	_, err := Parse([]byte("coolc: \"not a constraint\"\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("color: rainbow\n"))
	assert.ErrorContains(t, err, "unknown mode")

	_, err = Parse([]byte("sources: [unclosed\n"))
	assert.ErrorContains(t, err, "parsing project file")
}
