// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Style identifies the inline styling carried by a span of text.
// Anything a source format cannot express in these four variants
// collapses to StyleNone.
type Style int

const (
	StyleNone Style = iota
	StyleItalic
	StyleBold
	StyleBoldItalic
)

// Bold reports whether the style includes bold.
func (s Style) Bold() bool {
	return s == StyleBold || s == StyleBoldItalic
}

// Italic reports whether the style includes italic.
func (s Style) Italic() bool {
	return s == StyleItalic || s == StyleBoldItalic
}

// Span is a contiguous run of text carrying a single style.
type Span struct {
	Text  string
	Style Style
}

// Paragraph is an ordered sequence of styled spans. Empty spans are
// never stored.
type Paragraph []Span

// Text returns the paragraph's content with styling removed.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, s := range p {
		b.WriteString(s.Text)
	}
	return b.String()
}

// wordSeparators are counted as word boundaries in addition to
// whitespace: double hyphens and typographic dashes join words that
// still count separately.
var wordSeparators = []string{"--", "—", "–"}

// Words returns the number of words in the paragraph.
func (p Paragraph) Words() int {
	text := p.Text()
	for _, sep := range wordSeparators {
		text = strings.ReplaceAll(text, sep, " ")
	}
	return len(strings.Fields(text))
}
