// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package novx reads and writes .novx project documents (the
// novelibre XML format). The reader builds a types.Novel from the
// element tree in document order; the writer serializes a Novel back
// to XML. Comments, footnotes/endnotes, and language spans present in
// a source document are dropped, never carried into the model.
package novx

// Format version accepted and produced by this codec. Documents with
// a higher major or minor version are rejected.
const (
	majorVersion = 1
	minorVersion = 4
)

const formatName = "novx"

// xmlHeader precedes the marshalled root element, matching the header
// block novelibre emits.
const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE novx SYSTEM "novx_1_4.dtd">
<?xml-stylesheet href="novx.css" type="text/css"?>
`
