package crossref

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/shapegen/pkg/shape"
)

func buildFromDocs(t *testing.T, docs map[string]string) *Index {
	t.Helper()
	cache := shape.NewCache()
	// Deterministic order for stable decl ids.
	for _, label := range []string{"a.json", "b.json", "c.json"} {
		src, ok := docs[label]
		if !ok {
			continue
		}
		var v any
		require.NoError(t, json.Unmarshal([]byte(src), &v))
		_, err := cache.Normalize(v, label+":root")
		require.NoError(t, err)
	}
	return Build(cache.Decls())
}

func TestBuild_DocsAndDecls(t *testing.T) {
	x := buildFromDocs(t, map[string]string{
		"a.json": `{"id": 1}`,
		"b.json": `{"id": 2}`,
		"c.json": `{"name": "x"}`,
	})

	assert.Equal(t, []string{"a.json", "b.json", "c.json"}, x.Docs())

	// T0 is the {id: number} shape shared by a and b.
	assert.Equal(t, []string{"a.json", "b.json"}, x.DocsFor(0))
	assert.Equal(t, []string{"c.json"}, x.DocsFor(1))

	assert.Equal(t, []int{0}, x.DeclsFor("a.json"))
	assert.Equal(t, []int{1}, x.DeclsFor("c.json"))
	assert.Nil(t, x.DeclsFor("missing.json"))
}

func TestShared(t *testing.T) {
	x := buildFromDocs(t, map[string]string{
		"a.json": `{"user": {"id": 1}}`,
		"b.json": `{"user": {"id": 9}}`,
		"c.json": `{"other": true}`,
	})

	shared := x.Shared(2)
	require.Len(t, shared, 2) // inner {id} and outer {user} both span a and b

	assert.Equal(t, "T0", shared[0].Alias)
	assert.Equal(t, []string{"a.json", "b.json"}, shared[0].Docs)
}

func TestShared_MinDocsFloor(t *testing.T) {
	x := buildFromDocs(t, map[string]string{"a.json": `{"id": 1}`})
	assert.Empty(t, x.Shared(0), "single-document shapes are never shared")
}

func TestBuild_SkipsUnlabeledContexts(t *testing.T) {
	cache := shape.NewCache()
	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1}`), &v))
	_, err := cache.Normalize(v, "root") // no document label
	require.NoError(t, err)

	x := Build(cache.Decls())
	assert.Empty(t, x.Docs())
	assert.Empty(t, x.DocsFor(0))
}

func TestReport(t *testing.T) {
	x := buildFromDocs(t, map[string]string{
		"a.json": `{"id": 1}`,
		"b.json": `{"id": 2}`,
	})

	report := string(x.Report(2))
	assert.Contains(t, report, "1 shape(s) shared across 2 document(s)")
	assert.Contains(t, report, "T0: a.json, b.json")
}
