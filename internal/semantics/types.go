package semantics

import (
	"fmt"

	"slc/internal/source"
)

// TypeKind discriminates the representations a Type can take
type TypeKind int

const (
	TypeVoid TypeKind = iota
	TypeScalar
	TypeVector
	TypeMatrix
	TypeArray
	TypeStruct
	TypeSampler
)

func (k TypeKind) String() string {
	switch k {
	case TypeVoid:
		return "void"
	case TypeScalar:
		return "scalar"
	case TypeVector:
		return "vector"
	case TypeMatrix:
		return "matrix"
	case TypeArray:
		return "array"
	case TypeStruct:
		return "struct"
	case TypeSampler:
		return "sampler"
	default:
		return "unknown"
	}
}

// StructField is one named member of a struct or interface block type
type StructField struct {
	Name string
	Type *Type
	Loc  *source.Location
}

// Type represents a shader type. Types are symbols: a type declaration
// registers its Type in the enclosing scope, and builtin types live in
// the shared builtin scope.
type Type struct {
	symbolBase
	kind      TypeKind
	component *Type // element type for vectors, matrices and arrays
	columns   int   // vector width, or matrix column count
	rows      int   // matrix row count
	arraySize int   // valid when kind == TypeArray
	fields    []StructField
	builtin   bool
}

func (t *Type) SymbolKind() SymbolKind { return SymbolType }

// TypeKind returns the representation kind of this type
func (t *Type) TypeKind() TypeKind { return t.kind }

// IsInBuiltinTypes reports whether this type was defined by the builtin
// module layer rather than user code
func (t *Type) IsInBuiltinTypes() bool { return t.builtin }

// ComponentType returns the element type of a vector, matrix or array
// type, or nil for other kinds
func (t *Type) ComponentType() *Type { return t.component }

// Columns returns the vector width or matrix column count
func (t *Type) Columns() int { return t.columns }

// Rows returns the matrix row count
func (t *Type) Rows() int { return t.rows }

// ArraySize returns the dimension of an array type
func (t *Type) ArraySize() int { return t.arraySize }

// Fields returns the members of a struct type
func (t *Type) Fields() []StructField { return t.fields }

// FieldIndex returns the index of the named member, or -1
func (t *Type) FieldIndex(name string) int {
	for i, f := range t.fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// ArrayName returns the canonical name of an array over this type, e.g.
// "float[4]". Every (base, size) pair maps to exactly one such name, so
// the symbol table can reuse one Type instance per pair.
func (t *Type) ArrayName(size int) string {
	return fmt.Sprintf("%s[%d]", t.name, size)
}

func (t *Type) String() string { return t.name }

// MakeArrayType creates an array type over base with the given canonical
// name. Callers go through SymbolTable.AddArrayDimension, which owns the
// name string and deduplicates instances.
func MakeArrayType(name string, base *Type, size int) *Type {
	return &Type{
		symbolBase: symbolBase{name: name, loc: base.Loc()},
		kind:       TypeArray,
		component:  base,
		arraySize:  size,
	}
}

// MakeStructType creates a struct type with the given members
func MakeStructType(loc *source.Location, name string, fields []StructField) *Type {
	return &Type{
		symbolBase: symbolBase{name: name, loc: loc},
		kind:       TypeStruct,
		fields:     fields,
	}
}

// Constructors for the builtin type universe. Only builtins.go calls
// these; user code can only introduce struct and array types.

func makeVoidType() *Type {
	return &Type{symbolBase: symbolBase{name: "void"}, kind: TypeVoid, builtin: true}
}

func makeScalarType(name string) *Type {
	return &Type{symbolBase: symbolBase{name: name}, kind: TypeScalar, builtin: true}
}

func makeVectorType(name string, component *Type, columns int) *Type {
	return &Type{
		symbolBase: symbolBase{name: name},
		kind:       TypeVector,
		component:  component,
		columns:    columns,
		builtin:    true,
	}
}

func makeMatrixType(name string, component *Type, columns, rows int) *Type {
	return &Type{
		symbolBase: symbolBase{name: name},
		kind:       TypeMatrix,
		component:  component,
		columns:    columns,
		rows:       rows,
		builtin:    true,
	}
}

func makeSamplerType(name string) *Type {
	return &Type{symbolBase: symbolBase{name: name}, kind: TypeSampler, builtin: true}
}
