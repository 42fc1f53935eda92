package semantics

import (
	"fmt"

	"slc/internal/source"
)

// Expression is a resolved reference node produced by name resolution.
// Only the four node kinds synthesized by InstantiateSymbolRef live here;
// the full expression IR belongs to later compiler stages.
type Expression interface {
	Loc() *source.Location
	String() string
}

type exprBase struct {
	loc *source.Location
}

func (e *exprBase) Loc() *source.Location { return e.loc }

// RefKind describes how a variable reference accesses its variable
type RefKind int

const (
	RefKindRead RefKind = iota
	RefKindWrite
	RefKindReadWrite
	RefKindPointer
)

func (k RefKind) String() string {
	switch k {
	case RefKindRead:
		return "read"
	case RefKindWrite:
		return "write"
	case RefKindReadWrite:
		return "readwrite"
	case RefKindPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// FunctionReference refers to an overload set by its chain head. Picking
// the matching overload is a later stage's job.
type FunctionReference struct {
	exprBase
	Overloads *FunctionDeclaration
}

// NewFunctionReference creates a reference to the overload chain headed by fn
func NewFunctionReference(loc *source.Location, fn *FunctionDeclaration) *FunctionReference {
	return &FunctionReference{exprBase: exprBase{loc: loc}, Overloads: fn}
}

func (f *FunctionReference) String() string {
	return "<function " + f.Overloads.Name() + ">"
}

// VariableReference refers to a variable with a particular access kind.
// References default to read access; a caller that determines the
// reference is an assignment target re-tags it with SetRefKind.
type VariableReference struct {
	exprBase
	Variable *Variable
	refKind  RefKind
}

// NewVariableReference creates a reference to v with the given access kind
func NewVariableReference(loc *source.Location, v *Variable, kind RefKind) *VariableReference {
	return &VariableReference{exprBase: exprBase{loc: loc}, Variable: v, refKind: kind}
}

// RefKind returns the access kind of this reference
func (r *VariableReference) RefKind() RefKind { return r.refKind }

// SetRefKind re-tags the access kind of this reference
func (r *VariableReference) SetRefKind(kind RefKind) { r.refKind = kind }

func (r *VariableReference) String() string {
	return r.Variable.Name()
}

// FieldAccessOwnerKind records where a field access came from
type FieldAccessOwnerKind int

const (
	OwnerKindDefault FieldAccessOwnerKind = iota
	OwnerKindAnonymousBlock
)

// FieldAccess selects a member of a struct-typed expression by index
type FieldAccess struct {
	exprBase
	Base       Expression
	FieldIndex int
	OwnerKind  FieldAccessOwnerKind
}

// NewFieldAccess creates a field access over base selecting member index
func NewFieldAccess(loc *source.Location, base Expression, index int, ownerKind FieldAccessOwnerKind) *FieldAccess {
	return &FieldAccess{exprBase: exprBase{loc: loc}, Base: base, FieldIndex: index, OwnerKind: ownerKind}
}

func (f *FieldAccess) String() string {
	if ref, ok := f.Base.(*VariableReference); ok && ref.Variable.Type != nil {
		fields := ref.Variable.Type.Fields()
		if f.FieldIndex >= 0 && f.FieldIndex < len(fields) {
			base := ref.String()
			if base == "" {
				return fields[f.FieldIndex].Name
			}
			return base + "." + fields[f.FieldIndex].Name
		}
	}
	return fmt.Sprintf("%s.<field %d>", f.Base, f.FieldIndex)
}

// TypeReference refers to a type used in expression position, e.g. a
// constructor call like float4(1)
type TypeReference struct {
	exprBase
	Type *Type
}

// NewTypeReference creates a reference to typ
func NewTypeReference(loc *source.Location, typ *Type) *TypeReference {
	return &TypeReference{exprBase: exprBase{loc: loc}, Type: typ}
}

func (t *TypeReference) String() string {
	return "<type " + t.Type.Name() + ">"
}
