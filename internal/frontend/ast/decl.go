package ast

import "slc/internal/source"

// Qualifier is a storage qualifier on a variable declaration
type Qualifier int

const (
	QualifierNone Qualifier = iota
	QualifierConst
	QualifierUniform
	QualifierIn
	QualifierOut
)

func (q Qualifier) String() string {
	switch q {
	case QualifierConst:
		return "const"
	case QualifierUniform:
		return "uniform"
	case QualifierIn:
		return "in"
	case QualifierOut:
		return "out"
	default:
		return ""
	}
}

// FieldDecl is one member of a struct or interface block
type FieldDecl struct {
	Type *TypeSpec
	Name *Ident
	source.Location
}

func (f *FieldDecl) INode()                {}
func (f *FieldDecl) Loc() *source.Location { return &f.Location }

// StructDecl declares a named struct type: struct Light { ... };
type StructDecl struct {
	Name   *Ident
	Fields []*FieldDecl
	source.Location
}

func (s *StructDecl) INode()                {}
func (s *StructDecl) Loc() *source.Location { return &s.Location }

// InterfaceBlock declares a uniform block: uniform Constants { ... };
// With no instance name the block is anonymous and its members are
// addressable directly; with an instance name the block behaves like a
// single struct-typed variable.
type InterfaceBlock struct {
	Name     *Ident
	Fields   []*FieldDecl
	Instance *Ident // nil for anonymous blocks
	source.Location
}

func (b *InterfaceBlock) INode()                {}
func (b *InterfaceBlock) Loc() *source.Location { return &b.Location }

// VarDecl declares a variable, at module scope or inside a function:
// const float scale = 2.0;
type VarDecl struct {
	Qualifier Qualifier
	Type      *TypeSpec
	Name      *Ident
	Init      Expression // nil when uninitialized
	source.Location
}

func (v *VarDecl) INode()                {}
func (v *VarDecl) Stmt()                 {}
func (v *VarDecl) Loc() *source.Location { return &v.Location }

// ParamDecl is one function parameter
type ParamDecl struct {
	Type *TypeSpec
	Name *Ident // nil for anonymous parameters
	source.Location
}

func (p *ParamDecl) INode()                {}
func (p *ParamDecl) Loc() *source.Location { return &p.Location }

// FuncDecl declares a function: float4 tint(float4 c, float amount) { ... }
type FuncDecl struct {
	ReturnType *TypeSpec
	Name       *Ident
	Params     []*ParamDecl
	Body       *Block // nil for a bare prototype
	source.Location
}

func (f *FuncDecl) INode()                {}
func (f *FuncDecl) Loc() *source.Location { return &f.Location }
