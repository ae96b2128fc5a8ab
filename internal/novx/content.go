// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package novx

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pdiddy/mdnovx/internal/markup"
	"github.com/pdiddy/mdnovx/pkg/types"
)

// parseContent decodes the inline tree of a Content element into
// styled paragraphs. Nested em/strong tags combine into bold+italic;
// comment and note subtrees are dropped; any other element (span,
// creator, and so on) is transparent, contributing its text unstyled.
func parseContent(inner string) ([]types.Paragraph, error) {
	dec := xml.NewDecoder(strings.NewReader("<Content>" + inner + "</Content>"))

	var (
		paras     []types.Paragraph
		cur       []types.Span
		inPara    bool
		boldDepth int
		italDepth int
		skipDepth int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &types.MalformedDocumentError{Format: formatName, Reason: "bad section content: " + err.Error()}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if skipDepth > 0 {
				skipDepth++
				continue
			}
			switch t.Name.Local {
			case "p":
				cur = nil
				inPara = true
			case "em":
				italDepth++
			case "strong":
				boldDepth++
			case "comment", "note":
				skipDepth = 1
			}
		case xml.EndElement:
			if skipDepth > 0 {
				skipDepth--
				continue
			}
			switch t.Name.Local {
			case "p":
				if p := markup.Normalize(cur); len(p) > 0 {
					paras = append(paras, p)
				}
				inPara = false
			case "em":
				if italDepth > 0 {
					italDepth--
				}
			case "strong":
				if boldDepth > 0 {
					boldDepth--
				}
			}
		case xml.CharData:
			if skipDepth > 0 || !inPara {
				continue
			}
			cur = append(cur, types.Span{
				Text:  string(t),
				Style: spanStyle(boldDepth > 0, italDepth > 0),
			})
		}
	}
	return paras, nil
}

// renderContent encodes styled paragraphs as the inline tree of a
// Content element, one p per paragraph.
func renderContent(paras []types.Paragraph) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, p := range paras {
		b.WriteString("<p>")
		for _, s := range p {
			open, end := styleTags(s.Style)
			b.WriteString(open)
			b.WriteString(escapeText(s.Text))
			b.WriteString(end)
		}
		b.WriteString("</p>\n")
	}
	return b.String()
}

func spanStyle(bold, italic bool) types.Style {
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

func styleTags(s types.Style) (open, end string) {
	switch s {
	case types.StyleBoldItalic:
		return "<strong><em>", "</em></strong>"
	case types.StyleBold:
		return "<strong>", "</strong>"
	case types.StyleItalic:
		return "<em>", "</em>"
	default:
		return "", ""
	}
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeText escapes markup-significant characters only. The stock
// xml escaper also rewrites newlines and quotes, which must stay
// literal inside prose.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}
