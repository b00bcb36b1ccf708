package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dshills/seed/pkg/ast"
	"github.com/dshills/seed/pkg/parser"
	"github.com/dshills/seed/pkg/pipeline"
	"github.com/dshills/seed/pkg/tokenpack"
	"github.com/dshills/seed/pkg/tokens"
)

// compileFile loads this invocation's compile inputs (source text, an
// optional token pack, an optional component pack, layout options
// pulled from seedc.toml and any flag overrides) and runs the full
// pipeline once. The source text is returned alongside the result so
// error paths can render caret diagnostics against it.
func compileFile(path string) (*pipeline.Result, string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}

	var tmap tokens.Map
	if tokensFile != "" {
		tmap, err = tokenpack.LoadTokens(tokensFile)
		if err != nil {
			return nil, string(src), fmt.Errorf("loading token pack: %w", err)
		}
	}

	registry := ast.NewRegistry()
	if compsFile != "" {
		registry, err = tokenpack.LoadComponents(compsFile)
		if err != nil {
			return nil, string(src), fmt.Errorf("loading component pack: %w", err)
		}
	}

	opts, err := loadLayoutOptions(cfgFile)
	if err != nil {
		return nil, string(src), err
	}

	res, err := pipeline.Compile(string(src), tmap, registry, opts)
	if err != nil {
		return nil, string(src), err
	}
	return res, string(src), nil
}

func stageOf(err error) (pipeline.Stage, bool) {
	var ce *pipeline.CompileError
	if errors.As(err, &ce) {
		return ce.Stage, true
	}
	return "", false
}

// describeError prepares a compile failure for the terminal: a syntax
// error gets the caret-pointer rendering under the offending source
// line; other stage errors are prefixed with their stage name.
func describeError(src string, err error) error {
	var syn *parser.SyntaxError
	if errors.As(err, &syn) {
		return errors.New(parser.RenderCaret(src, syn))
	}
	if stage, ok := stageOf(err); ok {
		return fmt.Errorf("%s stage failed: %w", stage, err)
	}
	return err
}
