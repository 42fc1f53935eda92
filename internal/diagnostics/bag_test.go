package diagnostics

import (
	"strings"
	"sync"
	"testing"

	"slc/internal/source"
)

func TestBagCounts(t *testing.T) {
	bag := NewDiagnosticBag("shader.sl")

	if bag.HasErrors() {
		t.Errorf("fresh bag reports errors")
	}

	bag.Add(NewError("first"))
	bag.Add(NewError("second"))
	bag.Add(NewWarning("be careful"))

	if !bag.HasErrors() {
		t.Errorf("HasErrors = false after adding errors")
	}
	if bag.ErrorCount() != 2 {
		t.Errorf("ErrorCount = %d, want 2", bag.ErrorCount())
	}
	if bag.WarningCount() != 1 {
		t.Errorf("WarningCount = %d, want 1", bag.WarningCount())
	}
	if len(bag.Diagnostics()) != 3 {
		t.Errorf("Diagnostics length = %d, want 3", len(bag.Diagnostics()))
	}
}

func TestBagClear(t *testing.T) {
	bag := NewDiagnosticBag("shader.sl")
	bag.Add(NewError("boom"))
	bag.Clear()

	if bag.HasErrors() || bag.ErrorCount() != 0 || len(bag.Diagnostics()) != 0 {
		t.Errorf("Clear left state behind")
	}
}

func TestBagDiagnosticsReturnsCopy(t *testing.T) {
	bag := NewDiagnosticBag("shader.sl")
	bag.Add(NewError("boom"))

	got := bag.Diagnostics()
	got[0] = nil
	if bag.Diagnostics()[0] == nil {
		t.Errorf("mutating the returned slice affected the bag")
	}
}

func TestBagConcurrentAdd(t *testing.T) {
	bag := NewDiagnosticBag("")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				bag.Add(NewError("parallel"))
			}
		}()
	}
	wg.Wait()

	if bag.ErrorCount() != 400 {
		t.Errorf("ErrorCount = %d, want 400", bag.ErrorCount())
	}
}

func TestEmitAllToStringSummary(t *testing.T) {
	bag := NewDiagnosticBag("shader.sl")
	bag.Add(NewError("unknown identifier 'foo'").WithCode(ErrUnknownIdentifier))
	bag.Add(NewWarning("unused variable"))

	out := bag.EmitAllToString()
	if !strings.Contains(out, "unknown identifier 'foo'") {
		t.Errorf("output missing the error message:\n%s", out)
	}
	if !strings.Contains(out, ErrUnknownIdentifier) {
		t.Errorf("output missing the error code:\n%s", out)
	}
	if !strings.Contains(out, "Compilation failed with 1 error(s)") {
		t.Errorf("output missing the failure summary:\n%s", out)
	}
	if !strings.Contains(out, "1 warning(s)") {
		t.Errorf("output missing the warning count:\n%s", out)
	}
}

func TestEmitWarningsOnlySummary(t *testing.T) {
	bag := NewDiagnosticBag("shader.sl")
	bag.Add(NewWarning("just a warning"))

	out := bag.EmitAllToString()
	if !strings.Contains(out, "Compilation succeeded with 1 warning(s)") {
		t.Errorf("output missing the success summary:\n%s", out)
	}
}

func TestDiagnosticBuilderChain(t *testing.T) {
	loc := source.New(3, 7, 5)
	diag := NewError("symbol 'x' was already defined").
		WithCode(ErrDuplicateSymbol).
		WithPrimaryLabel("shader.sl", loc, "redeclared here").
		WithSecondaryLabel("shader.sl", source.New(1, 1, 5), "first declared here").
		WithNote("the previous declaration wins at a module boundary").
		WithHelp("use a different name")

	if diag.Severity != Error || diag.Code != ErrDuplicateSymbol {
		t.Errorf("severity/code = %v/%s, want error/%s", diag.Severity, diag.Code, ErrDuplicateSymbol)
	}
	if diag.FilePath != "shader.sl" {
		t.Errorf("FilePath = %q, want shader.sl", diag.FilePath)
	}
	if len(diag.Labels) != 2 {
		t.Fatalf("label count = %d, want 2", len(diag.Labels))
	}
	if diag.Labels[0].Style != Primary || diag.Labels[1].Style != Secondary {
		t.Errorf("label styles = %v/%v, want primary/secondary", diag.Labels[0].Style, diag.Labels[1].Style)
	}
	if len(diag.Notes) != 1 || diag.Help == "" {
		t.Errorf("notes/help not recorded")
	}
}

func TestEmitterRendersSourceExcerpt(t *testing.T) {
	var sb strings.Builder
	emitter := NewEmitterWithWriter(&sb)
	emitter.SetSourceLines("shader.sl", []string{
		"uniform float scale;",
		"float scale;",
	})

	diag := NewError("symbol 'scale' was already defined").
		WithCode(ErrDuplicateSymbol).
		WithPrimaryLabel("shader.sl", source.New(2, 7, 5), "redeclared here")
	emitter.Emit("shader.sl", diag)

	out := sb.String()
	if !strings.Contains(out, "shader.sl:2:7") {
		t.Errorf("output missing the location header:\n%s", out)
	}
	if !strings.Contains(out, "float scale;") {
		t.Errorf("output missing the source line:\n%s", out)
	}
	if !strings.Contains(out, "^^^^^ redeclared here") {
		t.Errorf("output missing the caret underline:\n%s", out)
	}
}
