package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// SourceCache caches source file contents for error reporting
type SourceCache struct {
	files map[string][]string
}

func NewSourceCache() *SourceCache {
	return &SourceCache{
		files: make(map[string][]string),
	}
}

// SetLines pre-populates the cache for a file, bypassing disk access.
// Used when the source only exists in memory (tests, watch mode rebuilds).
func (sc *SourceCache) SetLines(filepath string, lines []string) {
	sc.files[filepath] = lines
}

// GetLine retrieves a specific line from a source file
func (sc *SourceCache) GetLine(filepath string, line int) (string, error) {
	if lines, ok := sc.files[filepath]; ok {
		if line > 0 && line <= len(lines) {
			return lines[line-1], nil
		}
		return "", fmt.Errorf("line %d out of range", line)
	}

	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return "", err
	}

	sc.files[filepath] = lines

	if line > 0 && line <= len(lines) {
		return lines[line-1], nil
	}

	return "", fmt.Errorf("line %d out of range", line)
}

// Emitter renders diagnostics to a writer, with labeled source excerpts
type Emitter struct {
	cache *SourceCache
	out   io.Writer

	severityColor map[Severity]*color.Color
	gutterColor   *color.Color
	pathColor     *color.Color
}

func NewEmitter() *Emitter {
	return NewEmitterWithWriter(os.Stderr)
}

// NewEmitterWithWriter creates an emitter targeting a specific writer
func NewEmitterWithWriter(w io.Writer) *Emitter {
	return &Emitter{
		cache: NewSourceCache(),
		out:   w,
		severityColor: map[Severity]*color.Color{
			Error:   color.New(color.FgRed, color.Bold),
			Warning: color.New(color.FgYellow, color.Bold),
			Info:    color.New(color.FgCyan, color.Bold),
			Hint:    color.New(color.FgMagenta, color.Bold),
		},
		gutterColor: color.New(color.FgHiBlack),
		pathColor:   color.New(color.FgBlue),
	}
}

// SetSourceLines pre-populates the source cache for a file
func (e *Emitter) SetSourceLines(filepath string, lines []string) {
	e.cache.SetLines(filepath, lines)
}

// Emit renders a single diagnostic
func (e *Emitter) Emit(filepath string, diag *Diagnostic) {
	if diag.FilePath != "" {
		filepath = diag.FilePath
	}

	e.printHeader(diag)

	for _, label := range diag.Labels {
		e.printLabel(filepath, label, diag.Severity)
	}

	for _, note := range diag.Notes {
		fmt.Fprintf(e.out, "  note: %s\n", note.Message)
	}

	if diag.Help != "" {
		fmt.Fprintf(e.out, "  help: %s\n", diag.Help)
	}

	fmt.Fprintln(e.out)
}

func (e *Emitter) printHeader(diag *Diagnostic) {
	c := e.severityColor[diag.Severity]
	if c == nil {
		c = color.New()
	}

	c.Fprint(e.out, diag.Severity.String())
	if diag.Code != "" {
		fmt.Fprintf(e.out, "[%s]", diag.Code)
	}
	fmt.Fprint(e.out, ": ")
	c.Fprintln(e.out, diag.Message)
}

func (e *Emitter) printLabel(filepath string, label Label, severity Severity) {
	loc := label.Location
	if loc == nil {
		return
	}

	e.pathColor.Fprintf(e.out, "  --> %s:%d:%d\n", filepath, loc.Line, loc.Column)

	line, err := e.cache.GetLine(filepath, loc.Line)
	if err != nil {
		// Source not available; the location header is still useful on its own.
		return
	}

	gutterWidth := len(fmt.Sprintf("%d", loc.Line))
	e.gutterColor.Fprintf(e.out, "%s |\n", strings.Repeat(" ", gutterWidth))
	e.gutterColor.Fprintf(e.out, "%d | ", loc.Line)
	fmt.Fprintln(e.out, line)

	marker := "^"
	if label.Style == Secondary {
		marker = "-"
	}
	length := loc.Length
	if length < 1 {
		length = 1
	}

	e.gutterColor.Fprintf(e.out, "%s | ", strings.Repeat(" ", gutterWidth))
	underline := strings.Repeat(" ", loc.Column-1) + strings.Repeat(marker, length)
	if label.Message != "" {
		underline += " " + label.Message
	}
	c := e.severityColor[severity]
	if label.Style == Secondary {
		c = e.pathColor
	}
	c.Fprintln(e.out, underline)
}
