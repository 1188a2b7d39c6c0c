// Package output provides the CLI rendering layer: a small renderer
// that routes command results to text, JSON or table form.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Mode selects how command output is rendered.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeText  Mode = "text"
	ModeJSON  Mode = "json"
	ModeTable Mode = "table"
)

// ValidModes lists the accepted output mode names.
func ValidModes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeJSON), string(ModeTable)}
}

// ParseMode validates an output mode name. Empty selects auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeText, ModeJSON, ModeTable:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown output mode %q (valid: auto, text, json, table)", s)
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer builds a renderer over the given writers.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// EffectiveMode resolves auto to text.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto || r.mode == "" {
		return ModeText
	}
	return r.mode
}

// Println writes a line to the primary output.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Printf writes formatted text to the primary output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Errorf writes formatted text to the error output.
func (r *Renderer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errOut, format, args...)
}

// JSON writes v as indented JSON to the primary output.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders a header and rows as a bordered table.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(header))
	for i, col := range header {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, cells := range rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		t.AppendRow(row)
	}

	t.Render()
}
