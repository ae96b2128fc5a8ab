// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup translates inline text styling between CommonMark
// markers and the styled-span model. Translation is best-effort and
// never fails: malformed or unclosed markers stay literal text, and
// markup beyond strong/emphasis contributes its text content with the
// syntax stripped.
package markup

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/mdnovx/pkg/types"
)

// ParseMarkdown converts one paragraph of CommonMark text into styled
// spans. Emphasis level 1 maps to italic, level 2 to bold, nested
// emphasis to bold+italic.
func ParseMarkdown(paragraph string) []types.Span {
	if strings.TrimSpace(paragraph) == "" {
		return nil
	}
	src := []byte(paragraph)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var spans []types.Span
	first := true
	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		if !first {
			spans = append(spans, types.Span{Text: "\n"})
		}
		collect(block, src, types.StyleNone, &spans)
		first = false
	}
	return Normalize(spans)
}

// RenderMarkdown produces CommonMark text from styled spans,
// reproducing marker placement exactly for well-formed input.
func RenderMarkdown(spans []types.Span) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.Style {
		case types.StyleBoldItalic:
			b.WriteString("***")
			b.WriteString(s.Text)
			b.WriteString("***")
		case types.StyleBold:
			b.WriteString("**")
			b.WriteString(s.Text)
			b.WriteString("**")
		case types.StyleItalic:
			b.WriteString("*")
			b.WriteString(s.Text)
			b.WriteString("*")
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Normalize drops empty spans, merges adjacent spans of equal style,
// and trims whitespace from the paragraph edges.
func Normalize(spans []types.Span) []types.Span {
	var out []types.Span
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == s.Style {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	for len(out) > 0 {
		out[0].Text = strings.TrimLeft(out[0].Text, " \t\n")
		if out[0].Text != "" {
			break
		}
		out = out[1:]
	}
	for len(out) > 0 {
		last := len(out) - 1
		out[last].Text = strings.TrimRight(out[last].Text, " \t\n")
		if out[last].Text != "" {
			break
		}
		out = out[:last]
	}
	return out
}

// collect walks a goldmark subtree, appending styled spans. Block
// syntax beyond emphasis is flattened to its text content.
func collect(n ast.Node, src []byte, style types.Style, spans *[]types.Span) {
	switch node := n.(type) {
	case *ast.Text:
		*spans = append(*spans, types.Span{Text: string(node.Segment.Value(src)), Style: style})
		if node.SoftLineBreak() || node.HardLineBreak() {
			*spans = append(*spans, types.Span{Text: "\n", Style: style})
		}
		return
	case *ast.String:
		*spans = append(*spans, types.Span{Text: string(node.Value), Style: style})
		return
	case *ast.Emphasis:
		style = addEmphasis(style, node.Level)
	case *ast.AutoLink:
		*spans = append(*spans, types.Span{Text: string(node.Label(src)), Style: style})
		return
	case *ast.RawHTML, *ast.HTMLBlock:
		// Raw HTML is pure syntax; nothing survives stripping.
		return
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			*spans = append(*spans, types.Span{Text: string(seg.Value(src)), Style: style})
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collect(c, src, style, spans)
	}
}

// addEmphasis folds a goldmark emphasis level into an already active
// style.
func addEmphasis(s types.Style, level int) types.Style {
	bold := s.Bold() || level >= 2
	italic := s.Italic() || level == 1
	switch {
	case bold && italic:
		return types.StyleBoldItalic
	case bold:
		return types.StyleBold
	case italic:
		return types.StyleItalic
	default:
		return types.StyleNone
	}
}
