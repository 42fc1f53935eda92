package ast

import "slc/internal/source"

type LiteralKind int

const (
	INT LiteralKind = iota
	FLOAT
	BOOL
)

// BasicLit represents a literal of basic type (int, float, bool)
type BasicLit struct {
	Kind  LiteralKind
	Value string // the literal value as a string
	source.Location
}

func (b *BasicLit) INode()                {}
func (b *BasicLit) Expr()                 {}
func (b *BasicLit) Loc() *source.Location { return &b.Location }

// BinaryExpr is a binary operation: a + b, a == b, a && b
type BinaryExpr struct {
	Op    string
	Left  Expression
	Right Expression
	source.Location
}

func (b *BinaryExpr) INode()                {}
func (b *BinaryExpr) Expr()                 {}
func (b *BinaryExpr) Loc() *source.Location { return &b.Location }

// AssignExpr is an assignment: target = value
type AssignExpr struct {
	Target Expression
	Value  Expression
	source.Location
}

func (a *AssignExpr) INode()                {}
func (a *AssignExpr) Expr()                 {}
func (a *AssignExpr) Loc() *source.Location { return &a.Location }

// PrefixExpr is a unary operation: -x, !x
type PrefixExpr struct {
	Op string
	X  Expression
	source.Location
}

func (p *PrefixExpr) INode()                {}
func (p *PrefixExpr) Expr()                 {}
func (p *PrefixExpr) Loc() *source.Location { return &p.Location }

// CallExpr is a function or constructor call: tint(c, 0.5), float4(1)
type CallExpr struct {
	Callee Expression
	Args   []Expression
	source.Location
}

func (c *CallExpr) INode()                {}
func (c *CallExpr) Expr()                 {}
func (c *CallExpr) Loc() *source.Location { return &c.Location }

// FieldExpr selects a member or swizzle: light.color, pos.xy
type FieldExpr struct {
	X    Expression
	Name *Ident
	source.Location
}

func (f *FieldExpr) INode()                {}
func (f *FieldExpr) Expr()                 {}
func (f *FieldExpr) Loc() *source.Location { return &f.Location }

// IndexExpr subscripts an array: weights[2]
type IndexExpr struct {
	X     Expression
	Index Expression
	source.Location
}

func (i *IndexExpr) INode()                {}
func (i *IndexExpr) Expr()                 {}
func (i *IndexExpr) Loc() *source.Location { return &i.Location }
