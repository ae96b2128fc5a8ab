// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WorldElement is a location or item record: metadata only, no prose.
type WorldElement struct {
	Element

	Notes string
	Tags  []string
	AKA   string
}

// Character is a character record.
type Character struct {
	WorldElement

	FullName  string
	Bio       string
	Goals     string
	IsMajor   bool
	BirthDate string
	DeathDate string
}

// ProjectNote is a free-form note attached to the project.
type ProjectNote struct {
	Element
}
