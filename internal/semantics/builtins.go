package semantics

import (
	"sync"

	"slc/internal/diagnostics"
)

var (
	builtinOnce sync.Once
	builtinRoot *SymbolTable
)

// BuiltinScope returns the process-wide root table of builtin types and
// intrinsic functions. It is built once, frozen, and thereafter safe for
// unsynchronized concurrent reads; every compilation's module scope uses
// it as parent.
func BuiltinScope() *SymbolTable {
	builtinOnce.Do(func() {
		builtinRoot = buildBuiltinScope()
	})
	return builtinRoot
}

// BuiltinTypes gives compiler phases direct handles to the builtin type
// universe without going through name lookup.
type BuiltinTypes struct {
	Void, Bool, Int, UInt, Float *Type
	Float2, Float3, Float4       *Type
	Int2, Int3, Int4             *Type
	Bool2, Bool3, Bool4          *Type
	Mat2, Mat3, Mat4             *Type
	Sampler2D, SamplerCube       *Type
}

var builtinTypes BuiltinTypes

// Builtins returns the builtin type universe. Valid once BuiltinScope has
// been called at least once.
func Builtins() *BuiltinTypes {
	BuiltinScope()
	return &builtinTypes
}

func buildBuiltinScope() *SymbolTable {
	st := NewBuiltinTable()
	// Builtin construction never produces user-facing diagnostics; a
	// throwaway bag catches defects in the declarations below.
	ctx := NewContext("<builtin>", diagnostics.NewDiagnosticBag(""))

	registerBuiltinTypes(st, ctx)
	registerBuiltinFunctions(st, ctx)

	if ctx.Diagnostics.HasErrors() {
		panic("builtin scope construction reported errors: " + ctx.Diagnostics.EmitAllToString())
	}

	st.Freeze()
	return st
}

func registerBuiltinTypes(st *SymbolTable, ctx *Context) {
	bt := &builtinTypes

	bt.Void = makeVoidType()
	bt.Bool = makeScalarType("bool")
	bt.Int = makeScalarType("int")
	bt.UInt = makeScalarType("uint")
	bt.Float = makeScalarType("float")

	bt.Float2 = makeVectorType("float2", bt.Float, 2)
	bt.Float3 = makeVectorType("float3", bt.Float, 3)
	bt.Float4 = makeVectorType("float4", bt.Float, 4)
	bt.Int2 = makeVectorType("int2", bt.Int, 2)
	bt.Int3 = makeVectorType("int3", bt.Int, 3)
	bt.Int4 = makeVectorType("int4", bt.Int, 4)
	bt.Bool2 = makeVectorType("bool2", bt.Bool, 2)
	bt.Bool3 = makeVectorType("bool3", bt.Bool, 3)
	bt.Bool4 = makeVectorType("bool4", bt.Bool, 4)

	bt.Mat2 = makeMatrixType("mat2", bt.Float, 2, 2)
	bt.Mat3 = makeMatrixType("mat3", bt.Float, 3, 3)
	bt.Mat4 = makeMatrixType("mat4", bt.Float, 4, 4)

	bt.Sampler2D = makeSamplerType("sampler2D")
	bt.SamplerCube = makeSamplerType("samplerCube")

	for _, t := range []*Type{
		bt.Void, bt.Bool, bt.Int, bt.UInt, bt.Float,
		bt.Float2, bt.Float3, bt.Float4,
		bt.Int2, bt.Int3, bt.Int4,
		bt.Bool2, bt.Bool3, bt.Bool4,
		bt.Mat2, bt.Mat3, bt.Mat4,
		bt.Sampler2D, bt.SamplerCube,
	} {
		st.AddWithoutOwnership(ctx, t)
	}
}

// intrinsic declares one overload of a builtin function. Parameters are
// anonymous; intrinsic signatures never name them.
func intrinsic(st *SymbolTable, ctx *Context, name string, returnType *Type, paramTypes ...*Type) {
	params := make([]*Variable, len(paramTypes))
	for i, pt := range paramTypes {
		v := NewVariable(nil, "", pt, StorageParameter)
		v.Builtin = true
		params[i] = v
	}
	fn := NewFunctionDeclaration(nil, name, params, returnType)
	fn.Builtin = true
	st.AddWithoutOwnership(ctx, fn)
}

func registerBuiltinFunctions(st *SymbolTable, ctx *Context) {
	bt := &builtinTypes

	// Scalar math. Same-named declarations merge into overload chains.
	intrinsic(st, ctx, "abs", bt.Float, bt.Float)
	intrinsic(st, ctx, "abs", bt.Int, bt.Int)
	intrinsic(st, ctx, "min", bt.Float, bt.Float, bt.Float)
	intrinsic(st, ctx, "min", bt.Int, bt.Int, bt.Int)
	intrinsic(st, ctx, "max", bt.Float, bt.Float, bt.Float)
	intrinsic(st, ctx, "max", bt.Int, bt.Int, bt.Int)
	intrinsic(st, ctx, "clamp", bt.Float, bt.Float, bt.Float, bt.Float)
	intrinsic(st, ctx, "clamp", bt.Int, bt.Int, bt.Int, bt.Int)
	intrinsic(st, ctx, "sqrt", bt.Float, bt.Float)
	intrinsic(st, ctx, "sin", bt.Float, bt.Float)
	intrinsic(st, ctx, "cos", bt.Float, bt.Float)
	intrinsic(st, ctx, "floor", bt.Float, bt.Float)
	intrinsic(st, ctx, "fract", bt.Float, bt.Float)
	intrinsic(st, ctx, "pow", bt.Float, bt.Float, bt.Float)

	// Interpolation
	intrinsic(st, ctx, "mix", bt.Float, bt.Float, bt.Float, bt.Float)
	intrinsic(st, ctx, "mix", bt.Float2, bt.Float2, bt.Float2, bt.Float)
	intrinsic(st, ctx, "mix", bt.Float3, bt.Float3, bt.Float3, bt.Float)
	intrinsic(st, ctx, "mix", bt.Float4, bt.Float4, bt.Float4, bt.Float)

	// Geometry
	intrinsic(st, ctx, "dot", bt.Float, bt.Float2, bt.Float2)
	intrinsic(st, ctx, "dot", bt.Float, bt.Float3, bt.Float3)
	intrinsic(st, ctx, "dot", bt.Float, bt.Float4, bt.Float4)
	intrinsic(st, ctx, "cross", bt.Float3, bt.Float3, bt.Float3)
	intrinsic(st, ctx, "length", bt.Float, bt.Float2)
	intrinsic(st, ctx, "length", bt.Float, bt.Float3)
	intrinsic(st, ctx, "length", bt.Float, bt.Float4)
	intrinsic(st, ctx, "normalize", bt.Float2, bt.Float2)
	intrinsic(st, ctx, "normalize", bt.Float3, bt.Float3)
	intrinsic(st, ctx, "normalize", bt.Float4, bt.Float4)

	// Texturing
	intrinsic(st, ctx, "texture", bt.Float4, bt.Sampler2D, bt.Float2)
	intrinsic(st, ctx, "texture", bt.Float4, bt.SamplerCube, bt.Float3)
}
