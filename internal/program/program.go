// Package program orchestrates the Collector/Resolver pipeline across an
// entire multi-file input set (spec §5): Pass A fans out per file, Pass B
// fans out per file once Pass A has completed for the whole set, and the
// Resolver walks every file sequentially once Pass B has completed for the
// whole set. Generalizes the teacher's single-file `cmd/compiler/main.go`
// driver, which never had more than one file to sequence.
package program

import (
	"context"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/collector"
	"github.com/hassan/langcore/internal/config"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/lexer"
	"github.com/hassan/langcore/internal/parser"
	"github.com/hassan/langcore/internal/resolver"
)

// Result is everything a caller (the CLI, a test) needs after a run:
// the diagnostics from each phase, kept separate per spec §6.3's "three
// diagnostic lists", plus the collected files for any further inspection
// (e.g. `dump-scope`).
type Result struct {
	ParseErrors    []diag.Diagnostic
	CollectErrors  []diag.Diagnostic
	ResolveErrors  []diag.Diagnostic
	Files          []*collector.CollectedFile
	Ctx            *config.AnalysisContext
}

// HasErrors reports whether any phase produced a diagnostic.
func (r *Result) HasErrors() bool {
	return len(r.ParseErrors) > 0 || len(r.CollectErrors) > 0 || len(r.ResolveErrors) > 0
}

// Run reads, parses, collects, and resolves every path in paths, in that
// phase order, against a single fresh config.AnalysisContext built from
// cfg. logger receives one Info line per phase transition with file-count
// and diagnostic-count fields; it is never a package-global, matching the
// constructor-injection style SPEC_FULL §1 asks for.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, paths []string) (*Result, error) {
	files, parseErrs, err := parseAll(paths)
	if err != nil {
		return nil, err
	}
	logger.Info("parse complete", zap.Int("files", len(files)), zap.Int("errors", len(parseErrs)))

	actx := config.NewContext(cfg)
	c := collector.New(actx)

	collected, err := collectPassA(ctx, c, files)
	if err != nil {
		return nil, err
	}
	logger.Info("collector.pass_a", zap.Int("files", len(collected)), zap.Int("errors", len(c.Errors())))

	if err := collectPassB(ctx, c, collected); err != nil {
		return nil, err
	}
	logger.Info("collector.pass_b", zap.Int("files", len(collected)), zap.Int("errors", len(c.Errors())))

	res := resolver.New(actx)
	for _, cf := range collected {
		res.ResolveFile(cf)
	}
	logger.Info("resolver.run", zap.Int("files", len(collected)), zap.Int("errors", len(res.Errors())))

	return &Result{
		ParseErrors:   parseErrs,
		CollectErrors: c.Errors(),
		ResolveErrors: res.Errors(),
		Files:         collected,
		Ctx:           actx,
	}, nil
}

type parsedFile struct {
	path string
	file *ast.File
}

// parseAll reads and parses every path sequentially; lexing/parsing a
// single file is cheap enough (and inherently sequential token-by-token)
// that SPEC_FULL §2 reserves errgroup fan-out for the Collector phases,
// which do real cross-file scope work.
func parseAll(paths []string) ([]parsedFile, []diag.Diagnostic, error) {
	var files []parsedFile
	var errs []diag.Diagnostic

	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		p := parser.New(lexer.New(string(src), path), path)
		file, perrs := p.ParseFile()
		errs = append(errs, perrs...)
		if file != nil {
			files = append(files, parsedFile{path: path, file: file})
		}
	}
	return files, errs, nil
}

// collectPassA runs Collector.CollectFileA over every file concurrently
// via errgroup, matching SPEC_FULL §2: module-scope insertion is already
// serialized inside Collector by module-path prefix, so the only thing
// this function owns is keeping each file's CollectedFile alongside its
// original index so collectPassB can iterate in a stable order.
func collectPassA(ctx context.Context, c *collector.Collector, files []parsedFile) ([]*collector.CollectedFile, error) {
	out := make([]*collector.CollectedFile, len(files))
	g, _ := errgroup.WithContext(ctx)
	for i, pf := range files {
		i, pf := i, pf
		g.Go(func() error {
			out[i] = c.CollectFileA(pf.file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// collectPassB runs Collector.CollectFileB over every already-Pass-A'd
// file concurrently: spec §4.5 explicitly licenses this ("failure of one
// file's imports does not prevent Pass B from running on other files"),
// and the global scope Pass A built is read-only from here on.
func collectPassB(ctx context.Context, c *collector.Collector, files []*collector.CollectedFile) error {
	g, _ := errgroup.WithContext(ctx)
	for _, cf := range files {
		cf := cf
		g.Go(func() error {
			c.CollectFileB(cf)
			return nil
		})
	}
	return g.Wait()
}
