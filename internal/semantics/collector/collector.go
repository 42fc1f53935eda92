// Package collector populates a file's module scope with its top-level
// declarations: struct types, global variables, interface blocks and
// function signatures. Function bodies are not entered here; the
// resolver walks them once every module-level name is known.
package collector

import (
	"strconv"

	"slc/internal/diagnostics"
	"slc/internal/frontend/ast"
	"slc/internal/semantics"
)

// Collector declares module-level symbols into a scope
type Collector struct {
	scope *semantics.SymbolTable
	ctx   *semantics.Context
}

// New creates a collector targeting the given module scope
func New(scope *semantics.SymbolTable, ctx *semantics.Context) *Collector {
	return &Collector{scope: scope, ctx: ctx}
}

// Collect declares every top-level symbol of module and returns the
// mapping from function declarations to their symbols, which the
// resolver uses to bring parameters into scope.
func (c *Collector) Collect(module *ast.Module) map[*ast.FuncDecl]*semantics.FunctionDeclaration {
	funcs := make(map[*ast.FuncDecl]*semantics.FunctionDeclaration)

	for _, node := range module.Nodes {
		switch decl := node.(type) {
		case *ast.StructDecl:
			c.collectStruct(decl)
		case *ast.VarDecl:
			c.collectGlobal(decl)
		case *ast.FuncDecl:
			funcs[decl] = c.collectFunction(decl)
		case *ast.InterfaceBlock:
			c.collectInterfaceBlock(decl)
		}
	}

	return funcs
}

func (c *Collector) collectStruct(decl *ast.StructDecl) {
	fields := make([]semantics.StructField, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		ft := c.resolveType(f.Type)
		fields = append(fields, semantics.StructField{
			Name: f.Name.Name,
			Type: ft,
			Loc:  f.Name.Loc(),
		})
	}

	typ := semantics.MakeStructType(decl.Name.Loc(), decl.Name.Name, fields)
	c.scope.AddWithoutOwnership(c.ctx, typ)
}

func (c *Collector) collectGlobal(decl *ast.VarDecl) {
	typ := c.resolveType(decl.Type)
	v := semantics.NewVariable(decl.Name.Loc(), decl.Name.Name, typ, storageFor(decl.Qualifier))
	c.scope.AddWithoutOwnership(c.ctx, v)
}

func (c *Collector) collectFunction(decl *ast.FuncDecl) *semantics.FunctionDeclaration {
	returnType := c.resolveType(decl.ReturnType)

	params := make([]*semantics.Variable, 0, len(decl.Params))
	for _, p := range decl.Params {
		pt := c.resolveType(p.Type)
		name := ""
		loc := &p.Location
		if p.Name != nil {
			name = p.Name.Name
			loc = p.Name.Loc()
		}
		params = append(params, semantics.NewVariable(loc, name, pt, semantics.StorageParameter))
	}

	fn := semantics.NewFunctionDeclaration(decl.Name.Loc(), decl.Name.Name, params, returnType)
	c.scope.AddWithoutOwnership(c.ctx, fn)
	return fn
}

// collectInterfaceBlock registers the block's struct type and its access
// path. An anonymous block declares an unnamed owner variable and one
// Field symbol per member, so members resolve as bare names; a named
// instance declares an ordinary variable instead.
func (c *Collector) collectInterfaceBlock(decl *ast.InterfaceBlock) {
	fields := make([]semantics.StructField, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		ft := c.resolveType(f.Type)
		fields = append(fields, semantics.StructField{
			Name: f.Name.Name,
			Type: ft,
			Loc:  f.Name.Loc(),
		})
	}

	var blockName string
	if decl.Name != nil {
		blockName = decl.Name.Name
	}
	blockType := semantics.MakeStructType(decl.Loc(), blockName, fields)
	c.scope.AddWithoutOwnership(c.ctx, blockType)

	if decl.Instance != nil {
		v := semantics.NewVariable(decl.Instance.Loc(), decl.Instance.Name, blockType, semantics.StorageUniform)
		c.scope.AddWithoutOwnership(c.ctx, v)
		return
	}

	// The owner variable has no name, so registration is a no-op; the
	// table takes ownership to keep it alive for the Field symbols.
	owner := semantics.NewVariable(decl.Loc(), "", blockType, semantics.StorageUniform)
	c.scope.Add(c.ctx, owner)

	for i, f := range decl.Fields {
		field := semantics.NewField(f.Name.Loc(), f.Name.Name, owner, i)
		c.scope.AddWithoutOwnership(c.ctx, field)
	}
}

// resolveType resolves a syntactic type reference to a Type, wrapping it
// in an array type when the declarator carried a dimension. Returns nil
// after reporting when the name doesn't resolve to a type.
func (c *Collector) resolveType(spec *ast.TypeSpec) *semantics.Type {
	return ResolveType(c.scope, c.ctx, spec)
}

// ResolveType is the shared syntactic-type resolution used by both the
// collector and the resolver (for local declarations).
func ResolveType(scope *semantics.SymbolTable, ctx *semantics.Context, spec *ast.TypeSpec) *semantics.Type {
	if spec == nil || spec.Name == nil {
		return nil
	}

	sym := scope.Find(spec.Name.Name)
	if sym == nil {
		ctx.Diagnostics.Add(diagnostics.UnknownIdentifier(ctx.FilePath, spec.Name.Loc(), spec.Name.Name))
		return nil
	}
	base, ok := sym.(*semantics.Type)
	if !ok {
		ctx.Diagnostics.Add(diagnostics.NotAType(ctx.FilePath, spec.Name.Loc(), spec.Name.Name))
		return nil
	}

	if spec.ArraySize == nil {
		return base
	}

	size, ok := evalArraySize(ctx, spec.ArraySize)
	if !ok {
		return base
	}
	return scope.AddArrayDimension(ctx, base, size)
}

// evalArraySize evaluates a declarator dimension. Only positive integer
// literals are accepted.
func evalArraySize(ctx *semantics.Context, expr ast.Expression) (int, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != ast.INT {
		ctx.Diagnostics.Add(diagnostics.InvalidArraySize(ctx.FilePath, expr.Loc(), "array size must be an integer literal"))
		return 0, false
	}

	size, err := strconv.Atoi(lit.Value)
	if err != nil || size <= 0 {
		ctx.Diagnostics.Add(diagnostics.InvalidArraySize(ctx.FilePath, lit.Loc(), "array size must be greater than zero"))
		return 0, false
	}
	return size, true
}

func storageFor(q ast.Qualifier) semantics.Storage {
	switch q {
	case ast.QualifierUniform:
		return semantics.StorageUniform
	case ast.QualifierIn:
		return semantics.StorageIn
	case ast.QualifierOut:
		return semantics.StorageOut
	default:
		return semantics.StorageGlobal
	}
}
