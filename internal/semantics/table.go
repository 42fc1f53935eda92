package semantics

import (
	"fmt"
	"sort"

	"slc/internal/diagnostics"
	"slc/internal/source"
)

// symbolKey is the normalized mapping key derived from a symbol name.
// Two symbols with equal names produce equal keys.
type symbolKey string

func makeSymbolKey(name string) symbolKey { return symbolKey(name) }

// SymbolTable is one node in the tree of lexical scopes. Each node owns
// its local name mapping and a link to the enclosing scope; name lookup
// walks outward through parents until the root.
//
// A table never owns the symbols it maps, with one exception: the array
// types it synthesizes itself (and the name strings backing them) belong
// to the table and live exactly as long as it does.
//
// The builtin root table is populated once at initialization, frozen, and
// then shared read-only as the ancestor of every concurrently running
// compilation. Per-compilation tables are confined to their compilation's
// goroutine and need no locking.
type SymbolTable struct {
	parent           *SymbolTable
	builtin          bool
	atModuleBoundary bool
	frozen           bool

	symbols      map[symbolKey]Symbol
	ownedStrings []string
	ownedSymbols []Symbol
}

// NewSymbolTable creates a scope table with the given parent (nil only
// for a root table)
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		parent:  parent,
		symbols: make(map[symbolKey]Symbol),
	}
}

// NewBuiltinTable creates a root table for builtin declarations. The
// caller populates it and then calls Freeze before sharing it.
func NewBuiltinTable() *SymbolTable {
	st := NewSymbolTable(nil)
	st.builtin = true
	return st
}

// NewModuleScope creates the scope where user declarations meet the
// builtin/module layer. Redeclaring a name already visible from parent
// here is rejected as a duplicate.
func NewModuleScope(parent *SymbolTable) *SymbolTable {
	st := NewSymbolTable(parent)
	st.atModuleBoundary = true
	return st
}

// Parent returns the enclosing scope, or nil for a root table
func (st *SymbolTable) Parent() *SymbolTable { return st.parent }

// IsBuiltin reports whether this table holds builtin declarations
func (st *SymbolTable) IsBuiltin() bool { return st.builtin }

// AtModuleBoundary reports whether this table sits at the transition
// between module-provided and user declarations
func (st *SymbolTable) AtModuleBoundary() bool { return st.atModuleBoundary }

// Count returns the number of entries in the local mapping
func (st *SymbolTable) Count() int { return len(st.symbols) }

// LocalSymbols returns the local mapping's symbols sorted by name.
// Ancestors are not consulted.
func (st *SymbolTable) LocalSymbols() []Symbol {
	out := make([]Symbol, 0, len(st.symbols))
	for _, sym := range st.symbols {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Freeze marks the table read-only. Mutating a frozen table is a defect
// in the caller, not user error, so mutators panic on it.
func (st *SymbolTable) Freeze() { st.frozen = true }

func (st *SymbolTable) assertMutable() {
	if st.frozen {
		panic("symbol table is frozen; builtin tables are read-only after initialization")
	}
}

// lookup finds the key in this table or any ancestor. Takes a
// pre-computed key so mutation paths don't rebuild it per level.
func (st *SymbolTable) lookup(key symbolKey) Symbol {
	if sym, ok := st.symbols[key]; ok {
		return sym
	}
	if st.parent != nil {
		return st.parent.lookup(key)
	}
	return nil
}

// Find resolves name in this scope chain, innermost first. Exact name
// equality only; returns nil if no scope defines the name.
func (st *SymbolTable) Find(name string) Symbol {
	return st.lookup(makeSymbolKey(name))
}

// IsType reports whether name resolves to a type in this scope chain
func (st *SymbolTable) IsType(name string) bool {
	sym := st.Find(name)
	if sym == nil {
		return false
	}
	_, ok := sym.(*Type)
	return ok
}

// IsBuiltinType reports whether name is a type defined by the builtin
// layer, regardless of how deep the current scope is. Later stages use
// this to distinguish "resolvable at all" from "resolvable as a
// pre-existing language construct".
func (st *SymbolTable) IsBuiltinType(name string) bool {
	if !st.builtin {
		return st.parent != nil && st.parent.IsBuiltinType(name)
	}
	return st.IsType(name)
}

// FindBuiltinSymbol resolves name against the nearest builtin ancestor
// only, or nil if the scope chain has no builtin layer
func (st *SymbolTable) FindBuiltinSymbol(name string) Symbol {
	if !st.builtin {
		if st.parent == nil {
			return nil
		}
		return st.parent.FindBuiltinSymbol(name)
	}
	return st.Find(name)
}

// WouldShadowSymbolsFrom reports whether this table's local mapping
// shares at least one name with other's local mapping (ancestors are not
// consulted). Used to refuse silently shadowing a whole scope's worth of
// declarations when merging one scope into another.
func (st *SymbolTable) WouldShadowSymbolsFrom(other *SymbolTable) bool {
	// Iterate over the smaller of the two maps to minimize the total
	// number of probes; builtin tables can be large.
	small, large := st, other
	if small.Count() > large.Count() {
		small, large = large, small
	}

	for key := range small.symbols {
		if _, ok := large.symbols[key]; ok {
			return true
		}
	}
	return false
}

// AddWithoutOwnership registers sym under the key derived from its name.
// Ownership stays with the caller. Function declarations merge into the
// overload chain for their name without error; other duplicates are
// reported, and at a module boundary a name already visible from the
// enclosing layer is rejected outright.
func (st *SymbolTable) AddWithoutOwnership(ctx *Context, sym Symbol) {
	st.assertMutable()

	if sym.Name() == "" {
		// Anonymous symbols (e.g. the variable behind an anonymous
		// interface block) are addressable only by direct reference.
		return
	}
	key := makeSymbolKey(sym.Name())

	// If this is a function declaration, keep the overload chain in sync.
	if fn, ok := sym.(*FunctionDeclaration); ok {
		if existing, ok := st.lookup(key).(*FunctionDeclaration); ok {
			// The new declaration becomes the chain head; the previous
			// head becomes its next overload. Chain order is declaration
			// order, which later overload resolution relies on.
			fn.NextOverload = existing
			st.symbols[key] = fn
			return
		}
	}

	pos := sym.Loc()
	if st.atModuleBoundary && st.parent != nil && st.parent.lookup(key) != nil {
		// Declaring a symbol at global scope that already exists in the
		// enclosing module layer: reject, keep the module's symbol.
	} else {
		prev := st.symbols[key]
		st.symbols[key] = sym
		if prev == nil {
			return
		}
		// The slot was occupied; the new symbol replaces it so later
		// lookups resolve deterministically, but it is still an error.
	}

	if ctx != nil && ctx.Diagnostics != nil {
		ctx.Diagnostics.Add(diagnostics.DuplicateSymbol(ctx.FilePath, pos, sym.Name()))
	}
}

// InjectWithoutOwnership overwrites the slot for sym's name
// unconditionally: no overload chaining, no boundary check, no error.
// Used to forcibly introduce synthetic bindings.
func (st *SymbolTable) InjectWithoutOwnership(sym Symbol) {
	st.assertMutable()
	st.symbols[makeSymbolKey(sym.Name())] = sym
}

// Add registers a symbol the table owns outright and returns it.
// Synthesized array types are the only current user of this path.
func (st *SymbolTable) Add(ctx *Context, sym Symbol) Symbol {
	st.assertMutable()
	st.ownedSymbols = append(st.ownedSymbols, sym)
	st.AddWithoutOwnership(ctx, sym)
	return sym
}

// RenameSymbol renames sym and re-registers it under the new key. A
// function's entire overload chain shares identity as one set, so the
// rename applies to every declaration in the chain.
func (st *SymbolTable) RenameSymbol(ctx *Context, sym Symbol, newName string) {
	st.assertMutable()

	oldName := sym.Name()
	if fn, ok := sym.(*FunctionDeclaration); ok {
		for ; fn != nil; fn = fn.NextOverload {
			fn.setName(newName)
		}
	} else {
		sym.setName(newName)
	}

	oldKey := makeSymbolKey(oldName)
	if st.symbols[oldKey] == sym {
		delete(st.symbols, oldKey)
	}
	st.AddWithoutOwnership(ctx, sym)
}

// TakeOwnershipOfString retains str for the table's lifetime and returns
// it. Required whenever the table synthesizes a name itself: the types
// built over the name must never outlive it.
func (st *SymbolTable) TakeOwnershipOfString(str string) string {
	st.assertMutable()
	st.ownedStrings = append(st.ownedStrings, str)
	return str
}

// AddArrayDimension returns the array type wrapping base with the given
// dimension, creating it on first use. A size of zero means "no array
// wrapper" and returns base unchanged.
//
// The same (base, size) pair always yields the same Type instance within
// one scope tree: arrays of builtin types are cached as high as legally
// possible (at the module boundary), so sibling scopes and independent
// functions share one instance and identity comparison works.
func (st *SymbolTable) AddArrayDimension(ctx *Context, base *Type, size int) *Type {
	if size == 0 {
		return base
	}
	if base.IsInBuiltinTypes() && st.parent != nil && !st.atModuleBoundary {
		return st.parent.AddArrayDimension(ctx, base, size)
	}
	// Reuse an existing array type with this name if the scope chain
	// already has one.
	arrayName := base.ArrayName(size)
	if existing, ok := st.Find(arrayName).(*Type); ok {
		return existing
	}
	name := st.TakeOwnershipOfString(arrayName)
	arrayType := st.Add(ctx, MakeArrayType(name, base, size))
	return arrayType.(*Type)
}

// InstantiateSymbolRef resolves name and converts the result into the
// reference node matching its kind. An unresolvable name is reported and
// yields nil so the caller can keep gathering diagnostics.
func (st *SymbolTable) InstantiateSymbolRef(ctx *Context, name string, loc *source.Location) Expression {
	result := st.Find(name)
	if result == nil {
		if ctx != nil && ctx.Diagnostics != nil {
			ctx.Diagnostics.Add(diagnostics.UnknownIdentifier(ctx.FilePath, loc, name))
		}
		return nil
	}

	switch sym := result.(type) {
	case *FunctionDeclaration:
		return NewFunctionReference(loc, sym)

	case *Variable:
		// Default to read access; the caller re-tags the reference if it
		// turns out to be an assignment target.
		return NewVariableReference(loc, sym, RefKindRead)

	case *Field:
		base := NewVariableReference(loc, sym.Owner, RefKindRead)
		return NewFieldAccess(loc, base, sym.FieldIndex, OwnerKindAnonymousBlock)

	case *Type:
		return NewTypeReference(loc, sym)

	default:
		// A symbol variant this switch doesn't know about means an
		// earlier stage handed us a defective table.
		panic(fmt.Sprintf("unsupported symbol kind %d", result.SymbolKind()))
	}
}
