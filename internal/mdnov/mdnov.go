// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mdnov reads and writes .mdnov project documents: a
// line-oriented Markdown dialect where each element starts with an
// @@-prefixed identifier line, carries a YAML metadata block between
// --- fences, and holds its text in %%-keyed blocks.
package mdnov

import (
	"net/url"
	"strings"
)

const formatName = "mdnov"

// Text block keys.
const (
	keyDesc         = "Desc"
	keyNotes        = "Notes"
	keyBio          = "Bio"
	keyGoals        = "Goals"
	keyGoal         = "Goal"
	keyConflict     = "Conflict"
	keyOutcome      = "Outcome"
	keyContent      = "Content"
	keyLink         = "Link"
	keyPlotline     = "Plotline"
	keyPlotlineNote = "Plotline note"
	keyProgress     = "Progress"
)

// sanitizeMarkdown makes free text safe for block storage: lines that
// would read as fences or markers are defused, and every newline
// becomes a paragraph break.
func sanitizeMarkdown(text string) string {
	for strings.Contains(text, "\n---") {
		text = strings.ReplaceAll(text, "\n---", "\n???")
	}
	text = strings.ReplaceAll(text, "@@", "??")
	text = strings.ReplaceAll(text, "%%", "??")
	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}
	text = strings.ReplaceAll(text, "\n", "\n\n")
	return strings.TrimSpace(text)
}

// desanitize collapses the paragraph breaks of a stored block back to
// single newlines, the separator plain-text fields use in the model.
func desanitize(text string) string {
	for strings.Contains(text, "\n\n") {
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}
	return strings.TrimSpace(text)
}

// escapePath percent-encodes a link target, keeping slashes literal.
func escapePath(path string) string {
	u := url.URL{Path: path}
	return u.EscapedPath()
}

// unescapePath reverses escapePath, passing undecodable input through.
func unescapePath(path string) string {
	decoded, err := url.PathUnescape(path)
	if err != nil {
		return path
	}
	return decoded
}
