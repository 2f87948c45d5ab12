package document

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts the composition tree of a document to Graphviz DOT format.
// Each node is labelled with its kind and the parameters that shape it; edges
// run from a node to its children in order.
func ToDOT(doc *Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if doc != nil && doc.Root.Kind != "" {
		next := 0
		writeNode(&buf, doc.Root, &next)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeNode emits n and its subtree and returns the id given to n.
func writeNode(buf *bytes.Buffer, n Node, next *int) string {
	id := fmt.Sprintf("n%d", *next)
	*next++

	attrs := []string{`label="` + fmtLabel(n) + `"`}
	if len(n.Children) == 0 {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	fmt.Fprintf(buf, "  %s [%s];\n", id, strings.Join(attrs, ", "))

	for _, c := range n.Children {
		child := writeNode(buf, c, next)
		fmt.Fprintf(buf, "  %s -> %s;\n", id, child)
	}
	return id
}

// fmtLabel describes n on one line per part, escaped for a DOT string.
func fmtLabel(n Node) string {
	parts := []string{n.Kind}
	switch n.Kind {
	case KindText:
		parts = append(parts, quoteShort(n.Text))
	case KindLines:
		parts = append(parts, fmt.Sprintf("%d lines", len(n.Lines)))
	case KindEmpty:
		parts = append(parts, fmt.Sprintf("%dx%d", n.Width, n.Height))
	case KindPad:
		for _, p := range []struct {
			name string
			v    int
		}{{"top", n.Top}, {"bottom", n.Bottom}, {"left", n.Left}, {"right", n.Right}, {"width", n.Width}, {"height", n.Height}} {
			if p.v != 0 {
				parts = append(parts, fmt.Sprintf("%s: %d", p.name, p.v))
			}
		}
	}
	if n.Align != "" {
		parts = append(parts, "align: "+n.Align)
	}
	if n.VAlign != "" {
		parts = append(parts, "valign: "+n.VAlign)
	}
	if n.Fill != "" {
		parts = append(parts, "fill: "+quoteShort(n.Fill))
	}
	if n.Transparent != "" {
		parts = append(parts, "transparent: "+quoteShort(n.Transparent))
	}
	for i, p := range parts {
		parts[i] = dotEscape(p)
	}
	return strings.Join(parts, `\n`)
}

// quoteShort wraps s in double quotes, cutting it to at most 16 runes.
func quoteShort(s string) string {
	const limit = 16
	r := []rune(s)
	if len(r) > limit {
		return `"` + string(r[:limit]) + `"…`
	}
	return `"` + s + `"`
}

// dotEscape makes s safe inside a double-quoted DOT string. Quotes and
// backslashes are escaped and control characters are replaced by their
// Unicode control pictures, so a line break in a text node shows as ␊.
func dotEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20:
			b.WriteRune(0x2400 + r)
		case r == 0x7f:
			b.WriteRune('\u2421')
		case unicode.IsControl(r):
			b.WriteRune(utf8.RuneError)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg element with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
