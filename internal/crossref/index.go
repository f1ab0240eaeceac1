// Package crossref indexes which input documents contributed to which
// declarations. Declaration contexts carry labels of the form
// "<document>:<path>"; the index inverts them into per-declaration and
// per-document bitmaps so shared shapes across a run can be reported cheaply.
package crossref

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/shapegen/pkg/shape"
)

// Index maps declarations to the documents that mention them and back.
type Index struct {
	docIDs map[string]uint32
	docs   []string

	byDecl map[int]*roaring.Bitmap    // decl id -> document ordinals
	byDoc  map[uint32]*roaring.Bitmap // document ordinal -> decl ids
}

// Build constructs the index from a run's declarations. Contexts without a
// document label (no ":" separator) are not attributable and are skipped.
func Build(decls []*shape.Decl) *Index {
	x := &Index{
		docIDs: make(map[string]uint32),
		byDecl: make(map[int]*roaring.Bitmap, len(decls)),
		byDoc:  make(map[uint32]*roaring.Bitmap),
	}

	for _, d := range decls {
		declDocs := roaring.New()
		for _, ctx := range d.Contexts {
			doc, ok := documentOf(ctx)
			if !ok {
				continue
			}
			ord := x.ordinal(doc)
			declDocs.Add(ord)

			docDecls, exists := x.byDoc[ord]
			if !exists {
				docDecls = roaring.New()
				x.byDoc[ord] = docDecls
			}
			docDecls.Add(uint32(d.ID))
		}
		x.byDecl[d.ID] = declDocs
	}

	return x
}

// documentOf splits the document label off an origin context. The path part
// never contains ":", so the last separator wins even when labels do.
func documentOf(ctx string) (string, bool) {
	i := strings.LastIndex(ctx, ":")
	if i < 0 {
		return "", false
	}
	return ctx[:i], true
}

func (x *Index) ordinal(doc string) uint32 {
	if ord, ok := x.docIDs[doc]; ok {
		return ord
	}
	ord := uint32(len(x.docs))
	x.docIDs[doc] = ord
	x.docs = append(x.docs, doc)
	return ord
}

// Docs returns all indexed document labels in first-seen order.
func (x *Index) Docs() []string {
	out := make([]string, len(x.docs))
	copy(out, x.docs)
	return out
}

// DocsFor returns the documents a declaration was observed in.
func (x *Index) DocsFor(declID int) []string {
	bm, ok := x.byDecl[declID]
	if !ok {
		return nil
	}
	out := make([]string, 0, bm.GetCardinality())
	for _, ord := range bm.ToArray() {
		out = append(out, x.docs[ord])
	}
	return out
}

// DeclsFor returns the declaration ids observed in a document, ascending.
func (x *Index) DeclsFor(doc string) []int {
	ord, ok := x.docIDs[doc]
	if !ok {
		return nil
	}
	bm := x.byDoc[ord]
	out := make([]int, 0, bm.GetCardinality())
	for _, id := range bm.ToArray() {
		out = append(out, int(id))
	}
	return out
}

// SharedShape reports a declaration observed in at least minDocs documents.
type SharedShape struct {
	DeclID int      `json:"decl_id"`
	Alias  string   `json:"alias"`
	Docs   []string `json:"docs"`
}

// Shared returns declarations spanning at least minDocs distinct documents,
// in id order. minDocs below 2 is treated as 2: a shape seen in one document
// is not shared.
func (x *Index) Shared(minDocs int) []SharedShape {
	if minDocs < 2 {
		minDocs = 2
	}

	var out []SharedShape
	for id := 0; id < len(x.byDecl); id++ {
		bm := x.byDecl[id]
		if bm == nil || bm.GetCardinality() < uint64(minDocs) {
			continue
		}
		d := shape.Decl{ID: id}
		out = append(out, SharedShape{
			DeclID: id,
			Alias:  d.Alias(),
			Docs:   x.DocsFor(id),
		})
	}
	return out
}

// Report renders a human-readable summary of shapes shared across documents.
func (x *Index) Report(minDocs int) []byte {
	shared := x.Shared(minDocs)

	var b strings.Builder
	fmt.Fprintf(&b, "%d shape(s) shared across %d document(s)\n", len(shared), len(x.docs))
	for _, s := range shared {
		fmt.Fprintf(&b, "%s: %s\n", s.Alias, strings.Join(s.Docs, ", "))
	}
	return []byte(b.String())
}
