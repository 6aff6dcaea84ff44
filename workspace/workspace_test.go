package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lens-go/opticgen/errors"
)

type stubProvider struct {
	members []Member
	req     Request
}

func (s *stubProvider) Discover(req Request) ([]Member, error) {
	s.req = req
	return s.members, nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAggregateReadsEveryFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.go", "package a\n")
	b := writeFile(t, dir, "b.go", "package a\n\nvar B = 1\n")

	provider := &stubProvider{members: []Member{
		{ManifestPath: filepath.Join(dir, "go.mod"), SourceFiles: []string{a, b}},
	}}

	manifests, sources, err := Aggregate(provider, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "go.mod")}, manifests)
	require.Len(t, sources, 2)
	assert.Equal(t, a, sources[0].Path)
	assert.Equal(t, "package a\n", sources[0].Text)
	assert.Equal(t, "package a\n\nvar B = 1\n", sources[1].Text)
}

func TestAggregateRequestOptionsAreFixed(t *testing.T) {
	provider := &stubProvider{}

	_, _, err := Aggregate(provider, []string{"./scan/..."})
	require.NoError(t, err)

	assert.False(t, provider.req.WatchManifest)
	assert.False(t, provider.req.WatchSourceFiles)
	assert.True(t, provider.req.DumpSourceFiles)
	assert.Equal(t, []string{"./scan/..."}, provider.req.Patterns)
}

func TestAggregateUnreadableFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	provider := &stubProvider{members: []Member{
		{ManifestPath: "go.mod", SourceFiles: []string{filepath.Join(dir, "missing.go")}},
	}}

	_, _, err := Aggregate(provider, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSourceRead))
}

func TestAggregateInvalidUTF8IsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.go")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0644))

	provider := &stubProvider{members: []Member{
		{ManifestPath: "go.mod", SourceFiles: []string{path}},
	}}

	_, _, err := Aggregate(provider, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSourceRead))
	assert.Contains(t, err.Error(), "UTF-8")
}

func TestDedupe(t *testing.T) {
	assert.Nil(t, dedupe(nil))
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{"a", "b", "a", "b", "a"}))
}
