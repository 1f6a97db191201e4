// Package loader is the ambient, out-of-core counterpart to package check
// (spec.md §1, "file I/O and package loading... modeled only as a thin
// ambient loader"): it turns a program's import names into the
// ast.SymbolSeed the checker consumes, fetching the import set
// concurrently since nothing about that fetch needs to be serialized with
// the checker's own single-threaded walk.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/leo-lang/leotype/ast"
)

// ProgramReader parses one source file into its ast.Program. Lexing and
// parsing live upstream of this module, so Loader is handed a reader
// rather than importing a parser itself.
type ProgramReader func(path string) (*ast.Program, error)

// Options configures a Loader, built the same functional-options way as
// check.Checker.
type Options struct {
	Root        string
	Concurrency int
}

// Option mutates an Options value.
type Option func(*Options)

// WithRoot sets the base directory import patterns resolve against.
func WithRoot(root string) Option { return func(o *Options) { o.Root = root } }

// WithConcurrency bounds how many imports are fetched in flight at once.
func WithConcurrency(n int) Option { return func(o *Options) { o.Concurrency = n } }

// Loader discovers and fetches a program's import closure from disk.
type Loader struct {
	root        string
	concurrency int
	read        ProgramReader
}

// New returns a Loader that reads source files with read.
func New(read ProgramReader, opts ...Option) *Loader {
	o := Options{Root: ".", Concurrency: 8}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	return &Loader{root: o.Root, concurrency: o.Concurrency, read: read}
}

// ResolveImportPath expands an import reference into candidate source
// file paths under the loader's root. A bare "token.aleo" name resolves
// directly; a "./..." recursive pattern is handed to
// golang.org/x/tools/go/packages, which already implements "..." wildcard
// matching against a directory tree. Most Leo workspaces aren't also Go
// modules, so packages.Load commonly fails here; ResolveImportPath treats
// that as the common case and falls back to a plain directory walk rather
// than surfacing the error.
func (l *Loader) ResolveImportPath(pattern string) ([]string, error) {
	if !strings.Contains(pattern, "...") {
		return []string{filepath.Join(l.root, pattern)}, nil
	}
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedFiles, Dir: l.root}
	if pkgs, err := packages.Load(cfg, pattern); err == nil {
		var out []string
		for _, pkg := range pkgs {
			for _, f := range pkg.GoFiles {
				out = append(out, findAleoFiles(filepath.Dir(f))...)
			}
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	return findAleoFiles(l.root), nil
}

func findAleoFiles(root string) []string {
	var out []string
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".aleo") {
			out = append(out, path)
		}
		return nil
	})
	return out
}

// Load reads entryPath as the current program, then fetches every program
// it imports, concurrently and bounded by l.concurrency, and assembles
// the resulting ast.SymbolSeed. Leo program imports are a flat list of
// external program names with no transitive import chain to walk: the
// checker only ever needs the current program's direct imports (see
// DESIGN.md).
func (l *Loader) Load(ctx context.Context, entryPath string) (ast.SymbolSeed, error) {
	current, err := l.read(entryPath)
	if err != nil {
		return ast.SymbolSeed{}, fmt.Errorf("loader: reading %s: %w", entryPath, err)
	}

	seed := ast.SymbolSeed{Current: current, Imports: map[string]*ast.Program{}}
	if len(current.Imports) == 0 {
		return seed, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)

	type fetched struct {
		name string
		prog *ast.Program
	}
	results := make(chan fetched, len(current.Imports))

	for _, name := range current.Imports {
		name := name
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			paths, err := l.ResolveImportPath(name)
			if err != nil || len(paths) == 0 {
				return fmt.Errorf("loader: resolving import %s: %w", name, err)
			}
			prog, err := l.read(paths[0])
			if err != nil {
				return fmt.Errorf("loader: reading import %s: %w", name, err)
			}
			results <- fetched{name: name, prog: prog}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ast.SymbolSeed{}, err
	}
	close(results)
	for f := range results {
		seed.Imports[f.name] = f.prog
	}
	return seed, nil
}
