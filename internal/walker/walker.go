// Package walker feeds a tree of JSON files into one shared run cache. File
// reads and parses fan out over a worker pool; normalization stays a single
// sequential pass because the cache's check-then-insert is not safe under
// concurrent registration, and sequential encounter order keeps alias ids
// deterministic for a given input tree.
package walker

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/usestring/shapegen/internal/config"
	"github.com/usestring/shapegen/internal/filter"
	"github.com/usestring/shapegen/pkg/shape"
)

// Walker walks an input directory and normalizes every JSON document found.
type Walker struct {
	cfg    *config.Config
	filter *filter.Filter
}

// New creates a walker. The filter may be nil.
func New(cfg *config.Config, f *filter.Filter) *Walker {
	return &Walker{cfg: cfg, filter: f}
}

// DocResult records the root alias inferred for one input document.
type DocResult struct {
	Label string `json:"label"`
	Alias string `json:"alias"`
}

// Result summarizes one walk.
type Result struct {
	Docs    []DocResult `json:"docs"`
	Skipped []string    `json:"skipped,omitempty"` // labels of unreadable/unparsable inputs
}

type input struct {
	path  string
	label string
	doc   any
	skip  string // non-empty reason when the input cannot be used
}

// Run walks dir, parses every *.json file under it, and normalizes each
// document into cache. Inputs that cannot be read, parsed, or filtered are
// skipped with a warning; only walk failures and cancellation abort the run.
func (w *Walker) Run(ctx context.Context, dir string, cache *shape.Cache) (*Result, error) {
	inputs, err := w.collect(dir)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.cfg.Workers)
	for i := range inputs {
		in := &inputs[i]
		if in.skip != "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			w.load(in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Single sequential pass over the shared cache, in walk order.
	result := &Result{}
	for i := range inputs {
		in := &inputs[i]
		if in.skip != "" {
			slog.Warn("skipping input", "label", in.label, "reason", in.skip)
			result.Skipped = append(result.Skipped, in.label)
			continue
		}
		alias, err := cache.Normalize(in.doc, in.label+":root")
		if err != nil {
			return nil, fmt.Errorf("normalizing %s: %w", in.label, err)
		}
		result.Docs = append(result.Docs, DocResult{Label: in.label, Alias: alias})
	}
	return result, nil
}

// collect gathers *.json files under dir in lexical walk order.
func (w *Walker) collect(dir string) ([]input, error) {
	var inputs []input

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		in := input{path: path, label: originLabel(rel)}

		if info, err := d.Info(); err == nil && info.Size() > int64(w.cfg.MaxFileBytes) {
			in.skip = fmt.Sprintf("file exceeds %d bytes", w.cfg.MaxFileBytes)
		}
		inputs = append(inputs, in)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return inputs, nil
}

// load reads, parses, and filters one input, recording a skip reason on
// failure.
func (w *Walker) load(in *input) {
	data, err := os.ReadFile(in.path)
	if err != nil {
		in.skip = err.Error()
		return
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		in.skip = fmt.Sprintf("invalid JSON: %v", err)
		return
	}

	filtered, err := w.filter.Apply(doc)
	if err != nil {
		in.skip = err.Error()
		return
	}
	in.doc = filtered
}

// originLabel builds the document label for a relative path: slash-separated
// and NFC-normalized, so the same tree produces the same labels regardless of
// platform path conventions or filename normalization (macOS stores NFD).
func originLabel(rel string) string {
	return norm.NFC.String(filepath.ToSlash(rel))
}
