// Package cmd drives the compilation phases over a CompilerContext.
// Phases are stateless workers; all state lives in the context.
package cmd

import (
	"fmt"
	"os"
	"sync"

	"slc/internal/context"
	"slc/internal/frontend/lexer"
	"slc/internal/frontend/parser"
	"slc/internal/semantics"
	"slc/internal/semantics/collector"
	"slc/internal/semantics/resolver"
)

// Compile runs every phase over the given entry files. Phases report
// through ctx.Diagnostics; the returned error covers fatal failures
// only (unreadable files), not diagnostics.
func Compile(paths []string, ctx *context.CompilerContext) error {
	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Compilation Started] %d file(s)\n", len(paths))
	}

	for _, path := range paths {
		if _, err := ctx.LoadFile(path); err != nil {
			return err
		}
	}

	if err := RunLexAndParsePhase(ctx); err != nil {
		return fmt.Errorf("lex/parse failed: %w", err)
	}

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Phase 3] Declaration Collection\n")
	}
	RunCollectorPhase(ctx)

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Phase 4] Name Resolution\n")
	}
	RunResolverPhase(ctx)

	ctx.CurrentPhase = context.PhaseComplete
	return nil
}

// RunLexAndParsePhase tokenizes and parses all files in parallel.
// Files are independent compilation units, so per-file goroutines only
// share the thread-safe diagnostic bag.
func RunLexAndParsePhase(ctx *context.CompilerContext) error {
	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "\n[Phase 1 & 2] Lex + Parse (Parallel)\n")
	}
	ctx.CurrentPhase = context.PhaseLexing

	files := ctx.GetAllFiles()
	errorChan := make(chan error, len(files))
	var wg sync.WaitGroup

	for _, file := range files {
		wg.Add(1)
		go func(f *context.SourceFile) {
			defer wg.Done()

			if err := lexFile(f, ctx); err != nil {
				errorChan <- fmt.Errorf("lexer failed on %s: %w", f.Path, err)
				return
			}
			if err := parseFile(f, ctx); err != nil {
				errorChan <- fmt.Errorf("parser failed on %s: %w", f.Path, err)
				return
			}
		}(file)
	}

	wg.Wait()
	close(errorChan)

	for err := range errorChan {
		if err != nil {
			return err
		}
	}

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  ✓ Processed %d file(s)\n", len(files))
	}

	return nil
}

// lexFile tokenizes a single source file
func lexFile(file *context.SourceFile, ctx *context.CompilerContext) error {
	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  Tokenizing %s (%d bytes)\n", file.Path, len(file.Content))
	}

	tokenizer := lexer.New(file.Path, file.Content, ctx.Diagnostics)
	file.Tokens = tokenizer.Tokenize()

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "    Generated %d tokens\n", len(file.Tokens))
	}
	return nil
}

// parseFile parses a single tokenized file into an AST
func parseFile(file *context.SourceFile, ctx *context.CompilerContext) error {
	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  Parsing %s (%d tokens)\n", file.Path, len(file.Tokens))
	}

	file.AST = parser.Parse(file.Tokens, file.Path, ctx.Diagnostics)

	if ctx.Options.Debug && file.AST != nil {
		fmt.Fprintf(os.Stderr, "    Generated %d top-level declarations\n", len(file.AST.Nodes))
	}
	return nil
}

// RunCollectorPhase declares module-level symbols for every file
func RunCollectorPhase(ctx *context.CompilerContext) {
	ctx.CurrentPhase = context.PhaseCollecting

	for _, file := range ctx.GetAllFiles() {
		ctx.InitializeSemantics(file)
	}

	for _, file := range ctx.GetAllFiles() {
		if file.AST == nil {
			continue
		}
		semCtx := semantics.NewContext(file.Path, ctx.Diagnostics)
		file.Funcs = collector.New(file.Scope, semCtx).Collect(file.AST)
	}

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  ✓ Collected symbols from %d file(s)\n", len(ctx.GetAllFiles()))
	}
}

// RunResolverPhase binds names inside function bodies for every file
func RunResolverPhase(ctx *context.CompilerContext) {
	ctx.CurrentPhase = context.PhaseResolving

	for _, file := range ctx.GetAllFiles() {
		if file.AST == nil || file.Scope == nil {
			continue
		}
		semCtx := semantics.NewContext(file.Path, ctx.Diagnostics)
		file.Refs = resolver.New(semCtx).Resolve(file.AST, file.Scope, file.Funcs)
	}

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  ✓ Resolved names in %d file(s)\n", len(ctx.GetAllFiles()))
	}
}

// DumpSymbols prints each file's module scope, sorted by name
func DumpSymbols(ctx *context.CompilerContext) {
	for _, file := range ctx.GetAllFiles() {
		if file.Scope == nil {
			continue
		}
		fmt.Printf("%s:\n", file.Path)
		for _, sym := range file.Scope.LocalSymbols() {
			switch s := sym.(type) {
			case *semantics.FunctionDeclaration:
				fmt.Printf("  %-10s %s", s.SymbolKind(), s.Description())
				if n := s.OverloadCount(); n > 1 {
					fmt.Printf(" (+%d overload(s))", n-1)
				}
				fmt.Println()
			case *semantics.Variable:
				typeName := "<unresolved>"
				if s.Type != nil {
					typeName = s.Type.Name()
				}
				fmt.Printf("  %-10s %s %s\n", s.SymbolKind(), typeName, s.Name())
			default:
				fmt.Printf("  %-10s %s\n", sym.SymbolKind(), sym.Name())
			}
		}
	}
}

// DumpRefs prints every resolved reference in source order
func DumpRefs(ctx *context.CompilerContext) {
	for _, file := range ctx.GetAllFiles() {
		fmt.Printf("%s:\n", file.Path)
		for _, ref := range file.Refs {
			loc := ref.Loc()
			if loc != nil {
				fmt.Printf("  %d:%d  %s\n", loc.Line, loc.Column, ref)
			} else {
				fmt.Printf("  -  %s\n", ref)
			}
		}
	}
}
