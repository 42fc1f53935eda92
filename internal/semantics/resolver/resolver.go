// Package resolver walks function bodies and binds every identifier to
// its symbol. Each block opens a child scope; locals are declared in
// statement order, so a name is visible only after its declaration.
package resolver

import (
	"slc/internal/frontend/ast"
	"slc/internal/semantics"
	"slc/internal/semantics/collector"
)

// Resolver resolves names inside function bodies
type Resolver struct {
	ctx  *semantics.Context
	refs []semantics.Expression
}

// New creates a resolver reporting through ctx
func New(ctx *semantics.Context) *Resolver {
	return &Resolver{ctx: ctx}
}

// Resolve walks every function body in module, declaring parameters and
// locals and binding identifiers. funcs is the collector's mapping from
// syntax to symbol. The resolved reference nodes are returned in
// source order.
func (r *Resolver) Resolve(module *ast.Module, scope *semantics.SymbolTable, funcs map[*ast.FuncDecl]*semantics.FunctionDeclaration) []semantics.Expression {
	for _, node := range module.Nodes {
		switch decl := node.(type) {
		case *ast.FuncDecl:
			if decl.Body == nil {
				continue
			}
			bodyScope := semantics.NewSymbolTable(scope)
			if fn := funcs[decl]; fn != nil {
				for _, p := range fn.Params {
					// Anonymous parameters register as a no-op.
					bodyScope.AddWithoutOwnership(r.ctx, p)
				}
			}
			r.resolveBlockInto(decl.Body, bodyScope)

		case *ast.VarDecl:
			// Global initializers resolve against module scope.
			if decl.Init != nil {
				r.resolveExpr(decl.Init, scope)
			}
		}
	}

	return r.refs
}

// resolveBlock opens a child scope for block and resolves it
func (r *Resolver) resolveBlock(block *ast.Block, parent *semantics.SymbolTable) {
	r.resolveBlockInto(block, semantics.NewSymbolTable(parent))
}

// resolveBlockInto resolves block's statements in the given scope. The
// function-body block reuses the parameter scope instead of opening
// another level.
func (r *Resolver) resolveBlockInto(block *ast.Block, scope *semantics.SymbolTable) {
	for _, node := range block.Nodes {
		r.resolveStmt(node, scope)
	}
}

func (r *Resolver) resolveStmt(node ast.Node, scope *semantics.SymbolTable) {
	switch stmt := node.(type) {
	case *ast.VarDecl:
		// The initializer resolves before the name becomes visible, so
		// `float x = x;` is an error rather than a self-reference.
		if stmt.Init != nil {
			r.resolveExpr(stmt.Init, scope)
		}
		typ := collector.ResolveType(scope, r.ctx, stmt.Type)
		v := semantics.NewVariable(stmt.Name.Loc(), stmt.Name.Name, typ, semantics.StorageLocal)
		scope.AddWithoutOwnership(r.ctx, v)

	case *ast.ReturnStmt:
		if stmt.Value != nil {
			r.resolveExpr(stmt.Value, scope)
		}

	case *ast.IfStmt:
		r.resolveExpr(stmt.Cond, scope)
		r.resolveBlock(stmt.Body, scope)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else, scope)
		}

	case *ast.Block:
		r.resolveBlock(stmt, scope)

	case *ast.ExprStmt:
		r.resolveExpr(stmt.X, scope)
	}
}

// resolveExpr binds expr's identifiers and returns the reference node
// for expr itself when it has one
func (r *Resolver) resolveExpr(expr ast.Expression, scope *semantics.SymbolTable) semantics.Expression {
	switch e := expr.(type) {
	case *ast.Ident:
		ref := scope.InstantiateSymbolRef(r.ctx, e.Name, e.Loc())
		if ref != nil {
			r.refs = append(r.refs, ref)
		}
		return ref

	case *ast.AssignExpr:
		target := r.resolveExpr(e.Target, scope)
		if ref, ok := target.(*semantics.VariableReference); ok {
			ref.SetRefKind(semantics.RefKindWrite)
		}
		r.resolveExpr(e.Value, scope)
		return nil

	case *ast.BinaryExpr:
		r.resolveExpr(e.Left, scope)
		r.resolveExpr(e.Right, scope)

	case *ast.PrefixExpr:
		r.resolveExpr(e.X, scope)

	case *ast.CallExpr:
		r.resolveExpr(e.Callee, scope)
		for _, arg := range e.Args {
			r.resolveExpr(arg, scope)
		}

	case *ast.FieldExpr:
		// Member names resolve against the base's type during type
		// checking; only the base is a name-resolution concern here.
		r.resolveExpr(e.X, scope)

	case *ast.IndexExpr:
		r.resolveExpr(e.X, scope)
		r.resolveExpr(e.Index, scope)
	}

	return nil
}
