package context

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddFilePreservesOrder(t *testing.T) {
	ctx := New(nil)

	ctx.AddFile("/a.sl", "float x;")
	ctx.AddFile("/b.sl", "float y;")
	ctx.AddFile("/c.sl", "float z;")

	files := ctx.GetAllFiles()
	if len(files) != 3 {
		t.Fatalf("file count = %d, want 3", len(files))
	}
	want := []string{"/a.sl", "/b.sl", "/c.sl"}
	for i, file := range files {
		if file.Path != want[i] {
			t.Errorf("file %d = %s, want %s", i, file.Path, want[i])
		}
	}
}

func TestLoadFileReadsAndDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shader.sl")
	if err := os.WriteFile(path, []byte("float x;"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := New(nil)
	first, err := ctx.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if first.Content != "float x;" {
		t.Errorf("content = %q, want the file contents", first.Content)
	}

	second, err := ctx.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile again: %v", err)
	}
	if first != second {
		t.Errorf("reloading the same path created a second SourceFile")
	}
	if len(ctx.GetAllFiles()) != 1 {
		t.Errorf("file count = %d, want 1", len(ctx.GetAllFiles()))
	}
}

func TestLoadFileMissing(t *testing.T) {
	ctx := New(nil)
	if _, err := ctx.LoadFile(filepath.Join(t.TempDir(), "nope.sl")); err == nil {
		t.Errorf("LoadFile on a missing path did not fail")
	}
}

func TestInitializeSemanticsCreatesModuleScope(t *testing.T) {
	ctx := New(nil)
	file := ctx.AddFile("/a.sl", "float x;")

	ctx.InitializeSemantics(file)
	if file.Scope == nil {
		t.Fatalf("scope not created")
	}
	if file.Scope.Parent() != ctx.BuiltinScope {
		t.Errorf("scope parent is not the builtin scope")
	}
	if !file.Scope.AtModuleBoundary() {
		t.Errorf("module scope not marked as boundary")
	}

	// Idempotent: a second call keeps the existing scope.
	scope := file.Scope
	ctx.InitializeSemantics(file)
	if file.Scope != scope {
		t.Errorf("InitializeSemantics replaced an existing scope")
	}
}

func TestContextsShareBuiltinScope(t *testing.T) {
	a := New(nil)
	b := New(nil)
	if a.BuiltinScope != b.BuiltinScope {
		t.Errorf("contexts got distinct builtin scopes %p and %p", a.BuiltinScope, b.BuiltinScope)
	}
}
