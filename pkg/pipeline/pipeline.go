// Package pipeline orchestrates the full compilation from source text
// to a render-command Scene: parse, resolve tokens, resolve references,
// expand components, compute layout, build scene (spec §2). Each stage
// consumes the previous stage's Document and returns a new one; no
// stage mutates its input (spec §3.5). Compiling a single document is
// single-threaded cooperative (spec §5): callers wanting concurrency
// run independent Compile calls on separate goroutines, sharing only
// the read-only TokenMap and Registry.
package pipeline

import (
	"fmt"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/components"
	"github.com/dshills/seed/pkg/layout"
	"github.com/dshills/seed/pkg/parser"
	"github.com/dshills/seed/pkg/refs"
	"github.com/dshills/seed/pkg/scene"
	"github.com/dshills/seed/pkg/tokens"
)

// Stage names one pipeline phase. CompileError carries one, so callers
// can match coarsely (stage) or finely (errors.As on the wrapped err).
type Stage string

const (
	StageParse      Stage = "parse"
	StageTokens     Stage = "tokens"
	StageReferences Stage = "references"
	StageComponents Stage = "components"
	StageLayout     Stage = "layout"
	StageScene      Stage = "scene"
)

// CompileError is the pipeline's single top-level error variant (spec
// §7), mirroring the teacher's DefaultGenerator.Generate single wrapped
// error return.
type CompileError struct {
	Stage Stage
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Result carries every artifact a compile produces.
type Result struct {
	// Document is the fully resolved tree: no TokenRef, ElementRef, or
	// Component/Slot element remains in it (spec §3.4).
	Document *ast.Document
	Layout   *layout.Tree
	Scene    *scene.Scene
}

// Compile runs the full pipeline over source text, given a token map
// and component registry the caller prepared (spec §6.3: both are
// read-only compile inputs, created once and shared across concurrent
// compiles).
func Compile(src string, tmap tokens.Map, registry *ast.Registry, opts layout.Options) (*Result, error) {
	doc, err := parser.Parse(src)
	if err != nil {
		return nil, &CompileError{Stage: StageParse, Err: err}
	}

	// The document's own tokens: block layers over the caller's map, so
	// a source file can both extend and shadow the pack it is compiled
	// against.
	if len(doc.Tokens) > 0 {
		tmap, err = tokens.FlattenOver(doc.Tokens, tmap)
		if err != nil {
			return nil, &CompileError{Stage: StageTokens, Err: err}
		}
	}

	doc, err = tokens.Resolve(doc, tmap)
	if err != nil {
		return nil, &CompileError{Stage: StageTokens, Err: err}
	}

	doc, err = refs.Resolve(doc)
	if err != nil {
		return nil, &CompileError{Stage: StageReferences, Err: err}
	}

	doc, err = components.Expand(doc, registry, tmap)
	if err != nil {
		return nil, &CompileError{Stage: StageComponents, Err: err}
	}

	tree, err := layout.ComputeLayout(doc, opts)
	if err != nil {
		return nil, &CompileError{Stage: StageLayout, Err: err}
	}

	sc, err := scene.Build(tree)
	if err != nil {
		return nil, &CompileError{Stage: StageScene, Err: err}
	}

	return &Result{Document: doc, Layout: tree, Scene: sc}, nil
}
