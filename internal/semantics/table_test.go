package semantics

import (
	"testing"

	"slc/internal/diagnostics"
	"slc/internal/source"
)

func testContext() (*Context, *diagnostics.DiagnosticBag) {
	bag := diagnostics.NewDiagnosticBag("")
	return NewContext("shader.sl", bag), bag
}

func loc(line, col int) *source.Location {
	return source.New(line, col, 1)
}

func testFloatType() *Type {
	return makeScalarType("float")
}

func TestFindAbsentReturnsNil(t *testing.T) {
	st := NewSymbolTable(nil)
	if got := st.Find("missing"); got != nil {
		t.Errorf("Find on empty table = %v, want nil", got)
	}
}

func TestFindWalksParentChain(t *testing.T) {
	ctx, _ := testContext()

	root := NewSymbolTable(nil)
	mid := NewSymbolTable(root)
	leaf := NewSymbolTable(mid)

	v := NewVariable(loc(1, 1), "color", testFloatType(), StorageGlobal)
	root.AddWithoutOwnership(ctx, v)

	if got := leaf.Find("color"); got != v {
		t.Errorf("Find through two parent levels = %v, want %v", got, v)
	}
}

func TestInnerScopeShadowsOuter(t *testing.T) {
	ctx, _ := testContext()

	outer := NewSymbolTable(nil)
	inner := NewSymbolTable(outer)

	outerVar := NewVariable(loc(1, 1), "x", testFloatType(), StorageGlobal)
	innerVar := NewVariable(loc(5, 1), "x", testFloatType(), StorageLocal)
	outer.AddWithoutOwnership(ctx, outerVar)
	inner.AddWithoutOwnership(ctx, innerVar)

	if got := inner.Find("x"); got != innerVar {
		t.Errorf("inner Find = %v, want the inner declaration", got)
	}
	if got := outer.Find("x"); got != outerVar {
		t.Errorf("outer Find = %v, want the outer declaration", got)
	}
}

func TestFunctionOverloadsMergeWithoutError(t *testing.T) {
	ctx, bag := testContext()
	st := NewSymbolTable(nil)

	f1 := NewFunctionDeclaration(loc(1, 1), "tint", nil, testFloatType())
	f2 := NewFunctionDeclaration(loc(2, 1), "tint", nil, testFloatType())
	st.AddWithoutOwnership(ctx, f1)
	st.AddWithoutOwnership(ctx, f2)

	if bag.HasErrors() {
		t.Fatalf("overload merge reported errors: %s", bag.EmitAllToString())
	}

	head, ok := st.Find("tint").(*FunctionDeclaration)
	if !ok {
		t.Fatalf("Find(tint) = %T, want *FunctionDeclaration", st.Find("tint"))
	}
	if head != f2 {
		t.Errorf("chain head = %v, want the most recent declaration", head)
	}
	if head.NextOverload != f1 {
		t.Errorf("NextOverload = %v, want the earlier declaration", head.NextOverload)
	}
	if n := head.OverloadCount(); n != 2 {
		t.Errorf("OverloadCount = %d, want 2", n)
	}
}

func TestFunctionOverloadsMergeAcrossScopes(t *testing.T) {
	ctx, bag := testContext()

	outer := NewSymbolTable(nil)
	inner := NewSymbolTable(outer)

	f1 := NewFunctionDeclaration(loc(1, 1), "tint", nil, testFloatType())
	f2 := NewFunctionDeclaration(loc(5, 1), "tint", nil, testFloatType())
	outer.AddWithoutOwnership(ctx, f1)
	inner.AddWithoutOwnership(ctx, f2)

	if bag.HasErrors() {
		t.Fatalf("cross-scope overload merge reported errors: %s", bag.EmitAllToString())
	}

	head := inner.Find("tint").(*FunctionDeclaration)
	if head != f2 || head.NextOverload != f1 {
		t.Errorf("inner chain = %v -> %v, want f2 -> f1", head, head.NextOverload)
	}
	// The outer scope still resolves to its own declaration.
	if outer.Find("tint") != f1 {
		t.Errorf("outer Find = %v, want f1", outer.Find("tint"))
	}
}

func TestDuplicateVariableReportsAndReplaces(t *testing.T) {
	ctx, bag := testContext()
	st := NewSymbolTable(nil)

	v1 := NewVariable(loc(1, 1), "scale", testFloatType(), StorageGlobal)
	v2 := NewVariable(loc(2, 1), "scale", testFloatType(), StorageGlobal)
	st.AddWithoutOwnership(ctx, v1)
	st.AddWithoutOwnership(ctx, v2)

	if n := bag.ErrorCount(); n != 1 {
		t.Fatalf("ErrorCount = %d, want exactly 1", n)
	}
	if got := st.Find("scale"); got != v2 {
		t.Errorf("Find after duplicate = %v, want the replacement", got)
	}
}

func TestModuleBoundaryRejectsRedeclaration(t *testing.T) {
	ctx, bag := testContext()

	parent := NewSymbolTable(nil)
	moduleVar := NewVariable(loc(1, 1), "sk_FragColor", testFloatType(), StorageGlobal)
	parent.AddWithoutOwnership(ctx, moduleVar)

	scope := NewModuleScope(parent)
	userVar := NewVariable(loc(10, 1), "sk_FragColor", testFloatType(), StorageGlobal)
	scope.AddWithoutOwnership(ctx, userVar)

	if n := bag.ErrorCount(); n != 1 {
		t.Fatalf("ErrorCount = %d, want 1", n)
	}
	// The original symbol stays visible; the rejected one is not registered.
	if got := scope.Find("sk_FragColor"); got != moduleVar {
		t.Errorf("Find after boundary rejection = %v, want the parent's symbol", got)
	}
	if scope.Count() != 0 {
		t.Errorf("local Count = %d, want 0", scope.Count())
	}
}

func TestOrdinaryScopeAllowsShadowingParent(t *testing.T) {
	ctx, bag := testContext()

	parent := NewSymbolTable(nil)
	parent.AddWithoutOwnership(ctx, NewVariable(loc(1, 1), "x", testFloatType(), StorageGlobal))

	child := NewSymbolTable(parent)
	shadow := NewVariable(loc(5, 1), "x", testFloatType(), StorageLocal)
	child.AddWithoutOwnership(ctx, shadow)

	if bag.HasErrors() {
		t.Fatalf("shadowing in a non-boundary scope reported errors: %s", bag.EmitAllToString())
	}
	if got := child.Find("x"); got != shadow {
		t.Errorf("Find = %v, want the shadowing declaration", got)
	}
}

func TestEmptyNameIsNeverRegistered(t *testing.T) {
	ctx, bag := testContext()
	st := NewSymbolTable(nil)

	anon := NewVariable(loc(1, 1), "", testFloatType(), StorageUniform)
	st.AddWithoutOwnership(ctx, anon)

	if st.Count() != 0 {
		t.Errorf("Count = %d, want 0", st.Count())
	}
	if bag.HasErrors() {
		t.Errorf("anonymous symbol reported errors: %s", bag.EmitAllToString())
	}
}

func TestInjectOverwritesSilently(t *testing.T) {
	ctx, bag := testContext()
	st := NewSymbolTable(nil)

	v1 := NewVariable(loc(1, 1), "x", testFloatType(), StorageGlobal)
	v2 := NewVariable(loc(2, 1), "x", testFloatType(), StorageGlobal)
	st.AddWithoutOwnership(ctx, v1)
	st.InjectWithoutOwnership(v2)

	if bag.HasErrors() {
		t.Fatalf("Inject reported errors: %s", bag.EmitAllToString())
	}
	if got := st.Find("x"); got != v2 {
		t.Errorf("Find after Inject = %v, want the injected symbol", got)
	}
}

func TestAddArrayDimensionZeroReturnsBase(t *testing.T) {
	ctx, _ := testContext()
	st := NewSymbolTable(nil)

	base := testFloatType()
	if got := st.AddArrayDimension(ctx, base, 0); got != base {
		t.Errorf("AddArrayDimension(base, 0) = %v, want base unchanged", got)
	}
	if st.Count() != 0 {
		t.Errorf("Count = %d, want 0 after the no-op", st.Count())
	}
}

func TestBuiltinArrayTypeCachedAtModuleBoundary(t *testing.T) {
	ctx, _ := testContext()

	builtin := NewBuiltinTable()
	float := makeScalarType("float")
	builtin.AddWithoutOwnership(ctx, float)

	module := NewModuleScope(builtin)
	scopeA := NewSymbolTable(module)
	scopeB := NewSymbolTable(module)

	arrA := scopeA.AddArrayDimension(ctx, float, 4)
	arrB := scopeB.AddArrayDimension(ctx, float, 4)

	if arrA != arrB {
		t.Errorf("sibling scopes got distinct array types %p and %p, want one shared instance", arrA, arrB)
	}
	if arrA.Name() != "float[4]" {
		t.Errorf("array type name = %q, want %q", arrA.Name(), "float[4]")
	}
	if arrA.TypeKind() != TypeArray || arrA.ComponentType() != float || arrA.ArraySize() != 4 {
		t.Errorf("array type shape = (%v, %v, %d), want (array, float, 4)", arrA.TypeKind(), arrA.ComponentType(), arrA.ArraySize())
	}

	// The instance lives at the boundary, not in either sibling.
	if module.Count() != 1 {
		t.Errorf("module scope Count = %d, want 1", module.Count())
	}
	if scopeA.Count() != 0 || scopeB.Count() != 0 {
		t.Errorf("sibling Counts = %d/%d, want 0/0", scopeA.Count(), scopeB.Count())
	}
}

func TestUserArrayTypeStaysInDeclaringScope(t *testing.T) {
	ctx, _ := testContext()

	module := NewModuleScope(nil)
	inner := NewSymbolTable(module)

	userStruct := MakeStructType(loc(1, 1), "Light", nil)
	module.AddWithoutOwnership(ctx, userStruct)

	arr := inner.AddArrayDimension(ctx, userStruct, 3)
	if arr.Name() != "Light[3]" {
		t.Errorf("array name = %q, want %q", arr.Name(), "Light[3]")
	}
	// Non-builtin element types don't delegate upward.
	if inner.Count() != 1 {
		t.Errorf("inner Count = %d, want 1", inner.Count())
	}
	if got := module.Find("Light[3]"); got != nil {
		t.Errorf("module Find = %v, want nil", got)
	}
}

func TestAddArrayDimensionReusesSameSizeOnly(t *testing.T) {
	ctx, _ := testContext()
	st := NewModuleScope(nil)

	base := MakeStructType(loc(1, 1), "Light", nil)
	st.AddWithoutOwnership(ctx, base)

	arr3a := st.AddArrayDimension(ctx, base, 3)
	arr3b := st.AddArrayDimension(ctx, base, 3)
	arr4 := st.AddArrayDimension(ctx, base, 4)

	if arr3a != arr3b {
		t.Errorf("same (base, size) produced distinct types")
	}
	if arr3a == arr4 {
		t.Errorf("different sizes shared one type")
	}
}

func TestWouldShadowSymbolsFrom(t *testing.T) {
	ctx, _ := testContext()

	a := NewSymbolTable(nil)
	b := NewSymbolTable(nil)
	a.AddWithoutOwnership(ctx, NewVariable(loc(1, 1), "x", testFloatType(), StorageGlobal))
	a.AddWithoutOwnership(ctx, NewVariable(loc(2, 1), "y", testFloatType(), StorageGlobal))
	b.AddWithoutOwnership(ctx, NewVariable(loc(1, 1), "z", testFloatType(), StorageGlobal))

	if a.WouldShadowSymbolsFrom(b) || b.WouldShadowSymbolsFrom(a) {
		t.Errorf("disjoint tables reported shadowing")
	}

	b.AddWithoutOwnership(ctx, NewVariable(loc(2, 1), "y", testFloatType(), StorageGlobal))
	if !a.WouldShadowSymbolsFrom(b) || !b.WouldShadowSymbolsFrom(a) {
		t.Errorf("overlapping tables did not report shadowing in both directions")
	}
}

func TestWouldShadowIgnoresAncestors(t *testing.T) {
	ctx, _ := testContext()

	parent := NewSymbolTable(nil)
	parent.AddWithoutOwnership(ctx, NewVariable(loc(1, 1), "x", testFloatType(), StorageGlobal))
	child := NewSymbolTable(parent)

	other := NewSymbolTable(nil)
	other.AddWithoutOwnership(ctx, NewVariable(loc(1, 1), "x", testFloatType(), StorageGlobal))

	// "x" is visible from child but not local to it.
	if child.WouldShadowSymbolsFrom(other) {
		t.Errorf("shadow check consulted ancestor scopes")
	}
}

func TestIsTypeAndIsBuiltinType(t *testing.T) {
	ctx, _ := testContext()

	builtin := NewBuiltinTable()
	float := makeScalarType("float")
	builtin.AddWithoutOwnership(ctx, float)

	module := NewModuleScope(builtin)
	userStruct := MakeStructType(loc(1, 1), "Light", nil)
	module.AddWithoutOwnership(ctx, userStruct)
	module.AddWithoutOwnership(ctx, NewVariable(loc(2, 1), "scale", float, StorageGlobal))

	inner := NewSymbolTable(module)

	if !inner.IsType("float") || !inner.IsType("Light") {
		t.Errorf("IsType failed for declared types")
	}
	if inner.IsType("scale") {
		t.Errorf("IsType(scale) = true for a variable")
	}
	if !inner.IsBuiltinType("float") {
		t.Errorf("IsBuiltinType(float) = false")
	}
	if inner.IsBuiltinType("Light") {
		t.Errorf("IsBuiltinType(Light) = true for a user type")
	}
}

func TestFindBuiltinSymbolSkipsUserScopes(t *testing.T) {
	ctx, _ := testContext()

	builtin := NewBuiltinTable()
	float := makeScalarType("float")
	builtin.AddWithoutOwnership(ctx, float)

	module := NewModuleScope(builtin)
	// A user declaration shadowing the builtin name.
	shadow := NewVariable(loc(1, 1), "float", nil, StorageGlobal)
	module.InjectWithoutOwnership(shadow)

	if got := module.Find("float"); got != shadow {
		t.Fatalf("Find = %v, want the shadowing declaration", got)
	}
	if got := module.FindBuiltinSymbol("float"); got != float {
		t.Errorf("FindBuiltinSymbol = %v, want the builtin type", got)
	}

	orphan := NewSymbolTable(nil)
	if got := orphan.FindBuiltinSymbol("float"); got != nil {
		t.Errorf("FindBuiltinSymbol without a builtin ancestor = %v, want nil", got)
	}
}

func TestFrozenTablePanicsOnMutation(t *testing.T) {
	ctx, _ := testContext()

	st := NewBuiltinTable()
	st.Freeze()

	defer func() {
		if recover() == nil {
			t.Errorf("AddWithoutOwnership on a frozen table did not panic")
		}
	}()
	st.AddWithoutOwnership(ctx, NewVariable(loc(1, 1), "x", testFloatType(), StorageGlobal))
}

func TestRenameSymbolRenamesWholeOverloadChain(t *testing.T) {
	ctx, bag := testContext()
	st := NewSymbolTable(nil)

	f1 := NewFunctionDeclaration(loc(1, 1), "tint", nil, testFloatType())
	f2 := NewFunctionDeclaration(loc(2, 1), "tint", nil, testFloatType())
	st.AddWithoutOwnership(ctx, f1)
	st.AddWithoutOwnership(ctx, f2)

	st.RenameSymbol(ctx, f2, "shade")

	if bag.HasErrors() {
		t.Fatalf("rename reported errors: %s", bag.EmitAllToString())
	}
	if f1.Name() != "shade" || f2.Name() != "shade" {
		t.Errorf("chain names = %q/%q, want both renamed", f1.Name(), f2.Name())
	}
	head, ok := st.Find("shade").(*FunctionDeclaration)
	if !ok || head != f2 {
		t.Errorf("Find(shade) = %v, want the chain head", st.Find("shade"))
	}
	if st.Find("tint") != nil {
		t.Errorf("Find(tint) = %v after rename, want nil", st.Find("tint"))
	}
}

func TestInstantiateSymbolRefUnknownName(t *testing.T) {
	ctx, bag := testContext()
	st := NewSymbolTable(nil)

	ref := st.InstantiateSymbolRef(ctx, "nothing", loc(3, 7))
	if ref != nil {
		t.Errorf("ref for unknown name = %v, want nil", ref)
	}
	if n := bag.ErrorCount(); n != 1 {
		t.Errorf("ErrorCount = %d, want 1", n)
	}
}

func TestInstantiateSymbolRefVariable(t *testing.T) {
	ctx, bag := testContext()
	st := NewSymbolTable(nil)

	v := NewVariable(loc(1, 1), "color", testFloatType(), StorageGlobal)
	st.AddWithoutOwnership(ctx, v)

	ref := st.InstantiateSymbolRef(ctx, "color", loc(5, 3))
	varRef, ok := ref.(*VariableReference)
	if !ok {
		t.Fatalf("ref = %T, want *VariableReference", ref)
	}
	if varRef.Variable != v {
		t.Errorf("reference binds %v, want %v", varRef.Variable, v)
	}
	if varRef.RefKind() != RefKindRead {
		t.Errorf("RefKind = %v, want read", varRef.RefKind())
	}
	if bag.HasErrors() {
		t.Errorf("resolution reported errors: %s", bag.EmitAllToString())
	}

	varRef.SetRefKind(RefKindWrite)
	if varRef.RefKind() != RefKindWrite {
		t.Errorf("RefKind after re-tag = %v, want write", varRef.RefKind())
	}
}

func TestInstantiateSymbolRefFunctionAndType(t *testing.T) {
	ctx, _ := testContext()
	st := NewSymbolTable(nil)

	fn := NewFunctionDeclaration(loc(1, 1), "tint", nil, testFloatType())
	st.AddWithoutOwnership(ctx, fn)
	typ := MakeStructType(loc(2, 1), "Light", nil)
	st.AddWithoutOwnership(ctx, typ)

	fnRef, ok := st.InstantiateSymbolRef(ctx, "tint", loc(5, 1)).(*FunctionReference)
	if !ok || fnRef.Overloads != fn {
		t.Errorf("function ref = %v, want reference to the chain head", fnRef)
	}

	typeRef, ok := st.InstantiateSymbolRef(ctx, "Light", loc(6, 1)).(*TypeReference)
	if !ok || typeRef.Type != typ {
		t.Errorf("type ref = %v, want reference to the type", typeRef)
	}
}

func TestInstantiateSymbolRefField(t *testing.T) {
	ctx, bag := testContext()
	st := NewSymbolTable(nil)

	blockType := MakeStructType(loc(1, 1), "Constants", []StructField{
		{Name: "mvp", Type: testFloatType(), Loc: loc(2, 3)},
		{Name: "tint", Type: testFloatType(), Loc: loc(3, 3)},
	})
	owner := NewVariable(loc(1, 1), "", blockType, StorageUniform)
	st.AddWithoutOwnership(ctx, NewField(loc(3, 3), "tint", owner, 1))

	ref := st.InstantiateSymbolRef(ctx, "tint", loc(8, 5))
	access, ok := ref.(*FieldAccess)
	if !ok {
		t.Fatalf("ref = %T, want *FieldAccess", ref)
	}
	if access.FieldIndex != 1 {
		t.Errorf("FieldIndex = %d, want 1", access.FieldIndex)
	}
	if access.OwnerKind != OwnerKindAnonymousBlock {
		t.Errorf("OwnerKind = %v, want anonymous block", access.OwnerKind)
	}
	base, ok := access.Base.(*VariableReference)
	if !ok || base.Variable != owner {
		t.Fatalf("field base = %v, want a read reference to the owner", access.Base)
	}
	if base.RefKind() != RefKindRead {
		t.Errorf("owner RefKind = %v, want read", base.RefKind())
	}
	if bag.HasErrors() {
		t.Errorf("field resolution reported errors: %s", bag.EmitAllToString())
	}
}

func TestAddReturnsOwnedSymbol(t *testing.T) {
	ctx, _ := testContext()
	st := NewSymbolTable(nil)

	typ := MakeStructType(loc(1, 1), "Light", nil)
	got := st.Add(ctx, typ)
	if got != Symbol(typ) {
		t.Errorf("Add returned %v, want the symbol itself", got)
	}
	if st.Find("Light") == nil {
		t.Errorf("owned symbol was not registered")
	}
}
