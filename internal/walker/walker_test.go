package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/shapegen/internal/config"
	"github.com/usestring/shapegen/internal/filter"
	"github.com/usestring/shapegen/pkg/shape"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func testConfig() *config.Config {
	return &config.Config{Workers: 4, MaxFileBytes: 1 << 20}
}

func TestRun_SharesShapesAcrossFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.json":        `{"id": 1, "name": "x"}`,
		"b.json":        `{"id": 2, "name": "y"}`,
		"nested/c.json": `{"other": true}`,
	})

	cache := shape.NewCache()
	result, err := New(testConfig(), nil).Run(context.Background(), dir, cache)
	require.NoError(t, err)

	require.Len(t, result.Docs, 3)
	assert.Equal(t, "a.json", result.Docs[0].Label)
	assert.Equal(t, "b.json", result.Docs[1].Label)
	assert.Equal(t, "nested/c.json", result.Docs[2].Label)

	// a and b have the same shape and must share one alias.
	assert.Equal(t, result.Docs[0].Alias, result.Docs[1].Alias)
	assert.NotEqual(t, result.Docs[0].Alias, result.Docs[2].Alias)
	assert.Equal(t, 2, cache.Len())

	shared := cache.Decls()[0]
	assert.Equal(t, []string{"a.json:root", "b.json:root"}, shared.Contexts)
}

func TestRun_DeterministicIDs(t *testing.T) {
	files := map[string]string{
		"x.json": `{"a": 1}`,
		"y.json": `{"b": "s"}`,
		"z.json": `{"c": true}`,
	}

	var first []string
	for run := 0; run < 3; run++ {
		dir := writeTree(t, files)
		cache := shape.NewCache()
		result, err := New(testConfig(), nil).Run(context.Background(), dir, cache)
		require.NoError(t, err)

		aliases := make([]string, 0, len(result.Docs))
		for _, d := range result.Docs {
			aliases = append(aliases, d.Alias)
		}
		if first == nil {
			first = aliases
			continue
		}
		assert.Equal(t, first, aliases, "alias assignment must be stable across runs")
	}
}

func TestRun_SkipsBadInputs(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"good.json":   `{"ok": true}`,
		"broken.json": `{not json`,
		"notes.txt":   `ignored entirely`,
	})

	cache := shape.NewCache()
	result, err := New(testConfig(), nil).Run(context.Background(), dir, cache)
	require.NoError(t, err)

	require.Len(t, result.Docs, 1)
	assert.Equal(t, "good.json", result.Docs[0].Label)
	assert.Equal(t, []string{"broken.json"}, result.Skipped)
}

func TestRun_SkipsOversizedFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"big.json":   `{"payload": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}`,
		"small.json": `1`,
	})

	cfg := testConfig()
	cfg.MaxFileBytes = 16
	cache := shape.NewCache()
	result, err := New(cfg, nil).Run(context.Background(), dir, cache)
	require.NoError(t, err)

	require.Len(t, result.Docs, 1)
	assert.Equal(t, "small.json", result.Docs[0].Label)
	assert.Equal(t, []string{"big.json"}, result.Skipped)
}

func TestRun_AppliesFilter(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"wrapped.json": `{"data": {"id": 5}}`,
	})

	f, err := filter.New(".data")
	require.NoError(t, err)

	cache := shape.NewCache()
	result, err := New(testConfig(), f).Run(context.Background(), dir, cache)
	require.NoError(t, err)

	require.Len(t, result.Docs, 1)
	require.Equal(t, 1, cache.Len())
	assert.Equal(t, shape.TagNumber, cache.Decls()[0].Type.Object["id"])
}

func TestRun_EmptyDir(t *testing.T) {
	cache := shape.NewCache()
	result, err := New(testConfig(), nil).Run(context.Background(), t.TempDir(), cache)
	require.NoError(t, err)
	assert.Empty(t, result.Docs)
	assert.Equal(t, 0, cache.Len())
}

func TestRun_CancelledContext(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.json": `1`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig(), nil).Run(ctx, dir, shape.NewCache())
	assert.Error(t, err)
}
