// Package context provides the shared compilation context for all
// compiler phases. Phases are stateless workers that receive a
// CompilerContext and operate on SourceFile objects within it; all
// diagnostics flow into the context's bag and all semantic state hangs
// off the SymbolTable hierarchy rooted at the shared builtin scope.
package context

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"slc/internal/diagnostics"
	"slc/internal/frontend/ast"
	"slc/internal/frontend/lexer"
	"slc/internal/semantics"
)

// CompilationPhase tracks the current phase of compilation. All files
// move through phases together.
type CompilationPhase int

const (
	PhaseInitial    CompilationPhase = iota
	PhaseLexing                      // Tokenizing source files
	PhaseParsing                     // Building ASTs
	PhaseCollecting                  // Declaring module-level symbols
	PhaseResolving                   // Binding names inside bodies
	PhaseComplete                    // Compilation finished
)

// CompilerContext is the central hub for one compilation session.
// Shader files are independent compilation units; they share only the
// frozen builtin scope, so per-file work can run in parallel.
type CompilerContext struct {
	// Diagnostics collects errors and warnings from every phase
	Diagnostics *diagnostics.DiagnosticBag

	// Files maps absolute file path to its SourceFile
	Files map[string]*SourceFile

	// FileOrder preserves registration order for deterministic output
	FileOrder []string

	// BuiltinScope is the frozen root of every file's scope chain
	BuiltinScope *semantics.SymbolTable

	CurrentPhase CompilationPhase

	Options *CompilerOptions

	mu sync.RWMutex
}

// SourceFile carries one file through every compilation phase
type SourceFile struct {
	Path    string
	Content string

	Tokens []lexer.Token
	AST    *ast.Module

	// Scope is the file's module scope; its parent is the builtin scope
	Scope *semantics.SymbolTable

	// Funcs maps function syntax to its declared symbol
	Funcs map[*ast.FuncDecl]*semantics.FunctionDeclaration

	// Refs holds every reference node the resolver produced, in source order
	Refs []semantics.Expression
}

// CompilerOptions holds compiler configuration. Immutable after creation.
type CompilerOptions struct {
	Debug       bool // verbose phase output on stderr
	DumpSymbols bool // print each file's module scope after resolution
	DumpRefs    bool // print each resolved reference after resolution
}

// New creates a compilation context. Building the builtin scope is a
// one-time process-wide cost shared across contexts.
func New(options *CompilerOptions) *CompilerContext {
	if options == nil {
		options = &CompilerOptions{}
	}

	return &CompilerContext{
		Diagnostics:  diagnostics.NewDiagnosticBag(""),
		Files:        make(map[string]*SourceFile),
		FileOrder:    make([]string, 0),
		BuiltinScope: semantics.BuiltinScope(),
		Options:      options,
		CurrentPhase: PhaseInitial,
	}
}

// AddFile registers a source file with the given content
func (ctx *CompilerContext) AddFile(path string, content string) *SourceFile {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	file := &SourceFile{
		Path:    path,
		Content: content,
	}

	ctx.Files[path] = file
	ctx.FileOrder = append(ctx.FileOrder, path)

	return file
}

// LoadFile reads path from disk and registers it. Paths are normalized
// to absolute so the same file can't be registered twice under
// different spellings.
func (ctx *CompilerContext) LoadFile(path string) (*SourceFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	if existing := ctx.GetFile(absPath); existing != nil {
		return existing, nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if ctx.Options.Debug {
		fmt.Fprintf(os.Stderr, "  %s\n", filepath.Base(absPath))
	}
	return ctx.AddFile(absPath, string(content)), nil
}

// GetFile retrieves a registered file by path, or nil
func (ctx *CompilerContext) GetFile(path string) *SourceFile {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.Files[path]
}

// GetAllFiles returns all registered files in registration order
func (ctx *CompilerContext) GetAllFiles() []*SourceFile {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	files := make([]*SourceFile, 0, len(ctx.FileOrder))
	for _, path := range ctx.FileOrder {
		files = append(files, ctx.Files[path])
	}
	return files
}

// InitializeSemantics creates the file's module scope. Called when
// transitioning into the collector phase.
func (ctx *CompilerContext) InitializeSemantics(file *SourceFile) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	if file.Scope == nil {
		file.Scope = semantics.NewModuleScope(ctx.BuiltinScope)
	}
	if file.Funcs == nil {
		file.Funcs = make(map[*ast.FuncDecl]*semantics.FunctionDeclaration)
	}
}

// HasErrors reports whether any phase has reported an error
func (ctx *CompilerContext) HasErrors() bool {
	return ctx.Diagnostics.HasErrors()
}

// EmitDiagnostics prints all collected diagnostics to the console
func (ctx *CompilerContext) EmitDiagnostics() {
	ctx.Diagnostics.EmitAll()
}
