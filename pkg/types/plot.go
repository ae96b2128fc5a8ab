// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PlotLine is a story arc spanning sections.
type PlotLine struct {
	Element

	Notes     string
	ShortName string

	// Sections lists the IDs of sections this arc touches.
	Sections []string

	// PlotPoints in document order.
	PlotPoints []*PlotPoint
}

// PlotPoint is a turning point on a plot line, optionally associated
// with one section.
type PlotPoint struct {
	Element

	Notes string

	// SectionAssoc is the associated section ID, or empty.
	SectionAssoc string
}
