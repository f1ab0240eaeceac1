// Command shapegen scans a directory of JSON files and emits deduplicated
// type-alias declarations, one alias per distinct shape, with origin comments
// pointing back at every place each shape occurred.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/shapegen/internal/config"
	"github.com/usestring/shapegen/internal/crossref"
	"github.com/usestring/shapegen/internal/filter"
	"github.com/usestring/shapegen/internal/logging"
	"github.com/usestring/shapegen/internal/output"
	"github.com/usestring/shapegen/internal/walker"
	"github.com/usestring/shapegen/pkg/render"
	"github.com/usestring/shapegen/pkg/shape"
)

type options struct {
	inDir    string
	outFile  string
	format   string
	filter   string
	crossRef string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Env config provides defaults (SHAPEGEN_FORMAT, SHAPEGEN_FILTER, worker
	// and logging settings); flags override per invocation.
	cfg := config.Load()

	var opts options
	flag.StringVar(&opts.inDir, "in", ".", "input directory scanned recursively for *.json files")
	flag.StringVar(&opts.outFile, "out", "types.d.ts", "output file for rendered declarations")
	flag.StringVar(&opts.format, "format", cfg.Format, "output format: dts or jsonschema")
	flag.StringVar(&opts.filter, "filter", cfg.Filter, "jq expression applied to each document before inference")
	flag.StringVar(&opts.crossRef, "cross-ref", "", "optional path for a report of shapes shared across documents")
	flag.Parse()

	logCleanup, err := logging.Setup(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logging:", err)
		os.Exit(1)
	}
	defer logCleanup()

	if err := run(ctx, cfg, opts); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	renderer, err := render.ForFormat(opts.format)
	if err != nil {
		return err
	}
	f, err := filter.New(opts.filter)
	if err != nil {
		return err
	}

	cache := shape.NewCache()
	result, err := walker.New(cfg, f).Run(ctx, opts.inDir, cache)
	if err != nil {
		return err
	}

	rendered, err := renderer.Render(cache.Decls())
	if err != nil {
		return err
	}
	if err := output.Write(opts.outFile, rendered); err != nil {
		return err
	}

	if opts.crossRef != "" {
		report := crossref.Build(cache.Decls()).Report(2)
		if err := output.Write(opts.crossRef, report); err != nil {
			return err
		}
	}

	// Empty arrays are non-fatal but need a human decision; surface every
	// affected alias so they can be resolved after generation.
	for _, w := range cache.Warnings() {
		d := shape.Decl{ID: w.DeclID}
		slog.Warn("empty array, element type could not be inferred",
			"alias", d.Alias(), "context", w.Context)
	}

	slog.Info("generation complete",
		"documents", len(result.Docs),
		"skipped", len(result.Skipped),
		"declarations", cache.Len(),
		"unresolved", len(cache.Warnings()),
	)
	return nil
}
