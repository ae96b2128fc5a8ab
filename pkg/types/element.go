// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the in-memory project model shared by the
// .novx and .mdnov readers and writers, plus the error types the
// conversion surfaces. The model is a pure forest rooted at Novel;
// ordering of chapters and sections is positional and preserved
// exactly across a round trip.
package types

// Link associates a relative path with an optional absolute path.
// Both formats can represent links, so they survive conversion.
type Link struct {
	Path     string
	FullPath string
}

// Element holds the fields common to every project entity.
type Element struct {
	// ID is the format-shared element identifier (e.g. "ch1", "sc3").
	ID string

	// Title is the element title. Required on the Novel for writing.
	Title string

	// Desc is a plain-text description; paragraphs are separated by
	// newlines.
	Desc string

	// Links lists file links attached to the element, in source order.
	Links []Link
}
