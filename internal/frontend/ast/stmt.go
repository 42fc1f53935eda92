package ast

import "slc/internal/source"

// Block is a braced statement list; it opens a child scope
type Block struct {
	Nodes []Node
	source.Location
}

func (b *Block) INode()                {}
func (b *Block) Stmt()                 {}
func (b *Block) Loc() *source.Location { return &b.Location }

// ReturnStmt returns from the enclosing function
type ReturnStmt struct {
	Value Expression // nil for a bare return
	source.Location
}

func (r *ReturnStmt) INode()                {}
func (r *ReturnStmt) Stmt()                 {}
func (r *ReturnStmt) Loc() *source.Location { return &r.Location }

// IfStmt is a conditional; Else is nil, a *Block, or another *IfStmt
type IfStmt struct {
	Cond Expression
	Body *Block
	Else Node
	source.Location
}

func (i *IfStmt) INode()                {}
func (i *IfStmt) Stmt()                 {}
func (i *IfStmt) Loc() *source.Location { return &i.Location }

// ExprStmt is an expression evaluated for its side effects
type ExprStmt struct {
	X Expression
	source.Location
}

func (e *ExprStmt) INode()                {}
func (e *ExprStmt) Stmt()                 {}
func (e *ExprStmt) Loc() *source.Location { return &e.Location }
