package semantics

import (
	"strings"

	"slc/internal/source"
)

// SymbolKind discriminates the symbol variants stored in a SymbolTable
type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolVariable
	SymbolField
	SymbolType
)

// String returns a string representation of the SymbolKind
func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolVariable:
		return "variable"
	case SymbolField:
		return "field"
	case SymbolType:
		return "type"
	default:
		return "unknown"
	}
}

// Symbol represents a named entity in the program.
//
// Symbols are owned by whichever compilation created them; the symbol
// table holds references only, except for the array types it synthesizes
// itself (see SymbolTable.Add). The concrete variants are
// *FunctionDeclaration, *Variable, *Field and *Type, and every consumer
// dispatches with an exhaustive type switch.
type Symbol interface {
	Name() string
	Loc() *source.Location
	SymbolKind() SymbolKind

	// setName supports SymbolTable.RenameSymbol; renaming outside the
	// table would desynchronize the table's key mapping.
	setName(name string)
}

// symbolBase carries the attributes shared by all symbol variants
type symbolBase struct {
	name string
	loc  *source.Location
}

func (s *symbolBase) Name() string          { return s.name }
func (s *symbolBase) Loc() *source.Location { return s.loc }
func (s *symbolBase) setName(name string)   { s.name = name }

// Storage describes where a variable lives
type Storage int

const (
	StorageGlobal Storage = iota
	StorageUniform
	StorageIn
	StorageOut
	StorageLocal
	StorageParameter
)

func (s Storage) String() string {
	switch s {
	case StorageGlobal:
		return "global"
	case StorageUniform:
		return "uniform"
	case StorageIn:
		return "in"
	case StorageOut:
		return "out"
	case StorageLocal:
		return "local"
	case StorageParameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// Variable represents a declared variable of any storage class.
// Read/write access is a property of each reference to the variable, not
// of the variable itself; see VariableReference.
type Variable struct {
	symbolBase
	Type    *Type
	Storage Storage
	Builtin bool
}

// NewVariable creates a variable symbol
func NewVariable(loc *source.Location, name string, typ *Type, storage Storage) *Variable {
	return &Variable{
		symbolBase: symbolBase{name: name, loc: loc},
		Type:       typ,
		Storage:    storage,
	}
}

func (v *Variable) SymbolKind() SymbolKind { return SymbolVariable }

// FunctionDeclaration represents one declaration of a function. All
// declarations sharing a name in one scope form an overload set, linked
// through NextOverload with the most recent declaration at the head.
type FunctionDeclaration struct {
	symbolBase
	Params     []*Variable
	ReturnType *Type
	Builtin    bool

	// NextOverload links to the previously declared overload with the
	// same name. Maintained by SymbolTable.AddWithoutOwnership; chains
	// are only extended, never re-ordered.
	NextOverload *FunctionDeclaration
}

// NewFunctionDeclaration creates a function symbol
func NewFunctionDeclaration(loc *source.Location, name string, params []*Variable, returnType *Type) *FunctionDeclaration {
	return &FunctionDeclaration{
		symbolBase: symbolBase{name: name, loc: loc},
		Params:     params,
		ReturnType: returnType,
	}
}

func (f *FunctionDeclaration) SymbolKind() SymbolKind { return SymbolFunction }

// Description returns a human-readable signature like "float4 tint(float4, float)"
func (f *FunctionDeclaration) Description() string {
	var sb strings.Builder
	if f.ReturnType != nil {
		sb.WriteString(f.ReturnType.Name())
		sb.WriteString(" ")
	}
	sb.WriteString(f.name)
	sb.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p.Type != nil {
			sb.WriteString(p.Type.Name())
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// OverloadCount returns the length of the overload chain headed by f
func (f *FunctionDeclaration) OverloadCount() int {
	n := 0
	for fn := f; fn != nil; fn = fn.NextOverload {
		n++
	}
	return n
}

// Field represents an implicit member introduced by an anonymous
// interface block. The owning variable is anonymous and unregistered;
// the fields are what lookup finds.
type Field struct {
	symbolBase
	Owner      *Variable
	FieldIndex int
}

// NewField creates a field symbol for member index of owner's type
func NewField(loc *source.Location, name string, owner *Variable, index int) *Field {
	return &Field{
		symbolBase: symbolBase{name: name, loc: loc},
		Owner:      owner,
		FieldIndex: index,
	}
}

func (f *Field) SymbolKind() SymbolKind { return SymbolField }
