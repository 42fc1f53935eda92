// Package ast defines the pure syntax tree for the shader language.
// Nodes carry no semantic annotations; symbols and types live in the
// symbol table hierarchy, never on the AST.
package ast

import "slc/internal/source"

// Node is implemented by every syntax node
type Node interface {
	INode()
	Loc() *source.Location
}

// Expression is a marker interface for all expression nodes
type Expression interface {
	Node
	Expr()
}

// Statement is a marker interface for all statement nodes
type Statement interface {
	Node
	Stmt()
}

// Module is the root node for one source file
type Module struct {
	FullPath string
	Nodes    []Node
}

// Ident is a bare identifier
type Ident struct {
	Name string
	source.Location
}

func (i *Ident) INode()                {}
func (i *Ident) Expr()                 {}
func (i *Ident) Loc() *source.Location { return &i.Location }

// TypeSpec names a type, optionally with an array dimension. The
// dimension comes from C-style declarator syntax (float x[4]) and is
// attached here by the parser.
type TypeSpec struct {
	Name      *Ident
	ArraySize Expression // nil when not an array
	source.Location
}

func (t *TypeSpec) INode()                {}
func (t *TypeSpec) Loc() *source.Location { return &t.Location }
