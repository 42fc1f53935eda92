package collector

import (
	"testing"

	"slc/internal/diagnostics"
	"slc/internal/frontend/ast"
	"slc/internal/frontend/lexer"
	"slc/internal/frontend/parser"
	"slc/internal/semantics"
)

func collect(t *testing.T, src string) (*semantics.SymbolTable, map[*ast.FuncDecl]*semantics.FunctionDeclaration, *diagnostics.DiagnosticBag) {
	t.Helper()

	bag := diagnostics.NewDiagnosticBag("")
	tokens := lexer.New("shader.sl", src, bag).Tokenize()
	module := parser.Parse(tokens, "shader.sl", bag)
	if bag.HasErrors() {
		t.Fatalf("fixture failed to parse: %s", bag.EmitAllToString())
	}

	scope := semantics.NewModuleScope(semantics.BuiltinScope())
	ctx := semantics.NewContext("shader.sl", bag)
	funcs := New(scope, ctx).Collect(module)
	return scope, funcs, bag
}

func TestCollectGlobalVariables(t *testing.T) {
	scope, _, bag := collect(t, `
uniform float scale;
in float2 uv;
out float4 fragColor;
float counter;`)

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", bag.EmitAllToString())
	}

	tests := []struct {
		name    string
		typ     string
		storage semantics.Storage
	}{
		{"scale", "float", semantics.StorageUniform},
		{"uv", "float2", semantics.StorageIn},
		{"fragColor", "float4", semantics.StorageOut},
		{"counter", "float", semantics.StorageGlobal},
	}

	for _, tt := range tests {
		v, ok := scope.Find(tt.name).(*semantics.Variable)
		if !ok {
			t.Errorf("Find(%q) = %T, want *Variable", tt.name, scope.Find(tt.name))
			continue
		}
		if v.Type == nil || v.Type.Name() != tt.typ {
			t.Errorf("%s type = %v, want %s", tt.name, v.Type, tt.typ)
		}
		if v.Storage != tt.storage {
			t.Errorf("%s storage = %v, want %v", tt.name, v.Storage, tt.storage)
		}
	}
}

func TestCollectStructType(t *testing.T) {
	scope, _, bag := collect(t, `
struct Light {
	float3 dir;
	float intensity;
};
Light sun;`)

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", bag.EmitAllToString())
	}

	typ, ok := scope.Find("Light").(*semantics.Type)
	if !ok {
		t.Fatalf("Find(Light) = %T, want *Type", scope.Find("Light"))
	}
	if typ.TypeKind() != semantics.TypeStruct || len(typ.Fields()) != 2 {
		t.Errorf("Light = %v with %d field(s), want a two-field struct", typ.TypeKind(), len(typ.Fields()))
	}
	if typ.FieldIndex("intensity") != 1 {
		t.Errorf("FieldIndex(intensity) = %d, want 1", typ.FieldIndex("intensity"))
	}

	sun, ok := scope.Find("sun").(*semantics.Variable)
	if !ok || sun.Type != typ {
		t.Errorf("sun = %v, want a variable of the struct type", scope.Find("sun"))
	}
}

func TestCollectFunctionOverloads(t *testing.T) {
	scope, funcs, bag := collect(t, `
float4 tint(float4 c);
float4 tint(float4 c, float amount);`)

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", bag.EmitAllToString())
	}
	if len(funcs) != 2 {
		t.Fatalf("func map size = %d, want 2", len(funcs))
	}

	head, ok := scope.Find("tint").(*semantics.FunctionDeclaration)
	if !ok {
		t.Fatalf("Find(tint) = %T, want *FunctionDeclaration", scope.Find("tint"))
	}
	if head.OverloadCount() != 2 {
		t.Errorf("OverloadCount = %d, want 2", head.OverloadCount())
	}
	// The later declaration heads the chain.
	if len(head.Params) != 2 {
		t.Errorf("chain head has %d param(s), want the two-parameter overload", len(head.Params))
	}
}

func TestCollectUserOverloadOfIntrinsic(t *testing.T) {
	scope, _, bag := collect(t, "float3 mix(float3 a, float3 b, float3 t);")

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", bag.EmitAllToString())
	}
	head := scope.Find("mix").(*semantics.FunctionDeclaration)
	if head.Builtin {
		t.Errorf("chain head is builtin, want the user declaration")
	}
	// The builtin overloads stay reachable behind the user declaration.
	if head.OverloadCount() != 5 {
		t.Errorf("OverloadCount = %d, want 4 builtin + 1 user", head.OverloadCount())
	}
}

func TestCollectAnonymousInterfaceBlock(t *testing.T) {
	scope, _, bag := collect(t, `
uniform Constants {
	mat4 mvp;
	float4 tintColor;
};`)

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", bag.EmitAllToString())
	}

	// Members resolve as bare names through Field symbols.
	field, ok := scope.Find("tintColor").(*semantics.Field)
	if !ok {
		t.Fatalf("Find(tintColor) = %T, want *Field", scope.Find("tintColor"))
	}
	if field.FieldIndex != 1 {
		t.Errorf("FieldIndex = %d, want 1", field.FieldIndex)
	}
	if field.Owner == nil || field.Owner.Name() != "" {
		t.Errorf("owner = %v, want an anonymous variable", field.Owner)
	}
	if field.Owner.Type == nil || field.Owner.Type.Name() != "Constants" {
		t.Errorf("owner type = %v, want the block type", field.Owner.Type)
	}
}

func TestCollectNamedInterfaceBlock(t *testing.T) {
	scope, _, bag := collect(t, "uniform Constants { mat4 mvp; } consts;")

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", bag.EmitAllToString())
	}
	inst, ok := scope.Find("consts").(*semantics.Variable)
	if !ok {
		t.Fatalf("Find(consts) = %T, want *Variable", scope.Find("consts"))
	}
	if inst.Storage != semantics.StorageUniform {
		t.Errorf("storage = %v, want uniform", inst.Storage)
	}
	// Members of a named block are not bare names.
	if scope.Find("mvp") != nil {
		t.Errorf("Find(mvp) = %v, want nil for a named block", scope.Find("mvp"))
	}
}

func TestCollectArrayGlobal(t *testing.T) {
	scope, _, bag := collect(t, "float weights[4];")

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %s", bag.EmitAllToString())
	}
	v := scope.Find("weights").(*semantics.Variable)
	if v.Type == nil || v.Type.TypeKind() != semantics.TypeArray {
		t.Fatalf("type = %v, want an array type", v.Type)
	}
	if v.Type.Name() != "float[4]" || v.Type.ArraySize() != 4 {
		t.Errorf("array type = %s[%d], want float[4]", v.Type.Name(), v.Type.ArraySize())
	}
}

func TestCollectArrayGlobalsShareType(t *testing.T) {
	scope, _, _ := collect(t, `
float a[4];
float b[4];`)

	va := scope.Find("a").(*semantics.Variable)
	vb := scope.Find("b").(*semantics.Variable)
	if va.Type != vb.Type {
		t.Errorf("a and b have distinct array types %p and %p, want one shared instance", va.Type, vb.Type)
	}
}

func TestCollectZeroArraySizeRejected(t *testing.T) {
	_, _, bag := collect(t, "float weights[0];")
	if bag.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1", bag.ErrorCount())
	}
}

func TestCollectUnknownType(t *testing.T) {
	_, _, bag := collect(t, "Missing x;")
	if bag.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1", bag.ErrorCount())
	}
}

func TestCollectVariableUsedAsType(t *testing.T) {
	_, _, bag := collect(t, `
float scale;
scale x;`)
	if bag.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1", bag.ErrorCount())
	}
}

func TestCollectDuplicateGlobalReported(t *testing.T) {
	scope, _, bag := collect(t, `
float scale;
float scale;`)
	if bag.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1", bag.ErrorCount())
	}
	if scope.Find("scale") == nil {
		t.Errorf("scale missing after duplicate report")
	}
}

func TestCollectRedeclaringBuiltinRejected(t *testing.T) {
	scope, _, bag := collect(t, "int float;")

	if bag.ErrorCount() != 1 {
		t.Fatalf("ErrorCount = %d, want 1", bag.ErrorCount())
	}
	// The builtin keeps the slot.
	if _, ok := scope.Find("float").(*semantics.Type); !ok {
		t.Errorf("Find(float) = %T, want the builtin type", scope.Find("float"))
	}
}
