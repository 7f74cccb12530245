package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/pretty"
	"igdebugger/pkg/render"
)

// WriteView prints a rendered panel as plain text, the form used by the
// one-shot query command. The input field and trigger are omitted.
func WriteView(w io.Writer, v render.View, color bool) error {
	p := NewPalette(color)
	var b strings.Builder

	fmt.Fprintln(&b, p.Title(v.Title))
	fmt.Fprintln(&b, Tabs(v.Tabs, p))
	if v.Input != "" {
		fmt.Fprintf(&b, "%s %s\n", p.Label("Query:"), p.Value(v.Input))
	}

	if v.Error != "" {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, p.Error(v.Error))
	}

	if r := v.Response; r != nil {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, p.Title(r.Heading))
		if r.Preview != nil {
			WritePreview(&b, r.Preview, p)
		}
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, JSONHeading(r, p))
		fmt.Fprintln(&b, ColorJSON(r.JSON, color))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Tabs renders the endpoint selector on one line, the active tab bracketed
func Tabs(tabs []render.Tab, p Palette) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.Active {
			parts = append(parts, p.Active("["+t.Label+"]"))
		} else {
			parts = append(parts, p.Muted(" "+t.Label+" "))
		}
	}
	return strings.Join(parts, " ")
}

// WritePreview prints the preview heading, count and one line per tile
func WritePreview(w io.Writer, pv *render.Preview, p Palette) {
	fmt.Fprintln(w, p.Label(pv.Heading))
	fmt.Fprintf(w, "Count: %d\n", pv.Count)

	if n := pv.Notice; n != nil {
		if n.Severity == render.SeverityError {
			fmt.Fprintln(w, p.Error(n.Text))
		} else {
			fmt.Fprintln(w, p.Warning(n.Text))
		}
		return
	}

	for _, t := range pv.Tiles {
		if t.HasImage() {
			fmt.Fprintf(w, "  %s %s %s\n", p.Muted(fmt.Sprintf("%2d", t.Index+1)), shapeGlyph(t.Shape), t.ImageURL)
		} else {
			fmt.Fprintf(w, "  %s %s %s\n", p.Muted(fmt.Sprintf("%2d", t.Index+1)), shapeGlyph(t.Shape), p.Warning(t.Placeholder))
		}
	}
}

func shapeGlyph(s render.Shape) string {
	switch s {
	case render.ShapeCircle:
		return "●"
	case render.ShapePortrait:
		return "▮"
	default:
		return "■"
	}
}

// JSONHeading is the dump's heading followed by the response size
func JSONHeading(r *render.ResponsePanel, p Palette) string {
	return p.Label(r.JSONHeading) + " " + p.Muted("("+humanize.Bytes(uint64(r.Size))+")")
}

// ColorJSON syntax-highlights an indented JSON document for the terminal
func ColorJSON(formatted string, color bool) string {
	if !color {
		return formatted
	}
	return strings.TrimRight(string(pretty.Color([]byte(formatted), nil)), "\n")
}
