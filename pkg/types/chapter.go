// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Chapter type values.
const (
	ChapterNormal = 0
	ChapterUnused = 1
)

// Chapter levels. A level-1 chapter is a part heading; its type
// propagates to the chapters that follow it.
const (
	LevelPart    = 1
	LevelChapter = 2
)

// Chapter is an ordered container of sections within a Novel.
type Chapter struct {
	Element

	Notes string

	// Type is ChapterNormal or ChapterUnused.
	Type int

	// Level is LevelPart or LevelChapter.
	Level int

	// IsTrash marks the trash-bin chapter.
	IsTrash bool

	// NoNumber excludes the chapter from automatic numbering.
	NoNumber bool

	// Sections in document order.
	Sections []*Section
}

// Section type values.
const (
	SectionNormal = 0
	SectionUnused = 1
	SectionStage1 = 2
	SectionStage2 = 3
)

// PlotlineNote is a note attached to a section about one plot line.
type PlotlineNote struct {
	PlotLineID string
	Text       string
}

// Section is a scene or stage entry within a chapter. Content is the
// only field carrying styled text; everything else is plain text or
// metadata.
type Section struct {
	Element

	Notes string
	Tags  []string

	// Type is one of the Section* constants.
	Type int

	// Status is the completion status, 1 (outline) through 5 (done).
	Status int

	// Scene is the scene kind: 0 unset, 1 "all", 2 action, 3 reaction.
	Scene int

	// AppendToPrev joins this section to the previous one without a
	// divider.
	AppendToPrev bool

	// Date is an ISO date, or empty when Day is used instead.
	Date string

	// Day is an integer day number relative to the reference date.
	Day string

	// Time is an ISO time of day, normalized to HH:MM:SS.
	Time string

	LastsDays    string
	LastsHours   string
	LastsMinutes string

	Goal     string
	Conflict string
	Outcome  string

	// Characters, Locations, and Items reference record IDs. The first
	// character is the viewpoint character.
	Characters []string
	Locations  []string
	Items      []string

	// PlotlineNotes in source order. Only notes whose plot line
	// references this section back are written.
	PlotlineNotes []PlotlineNote

	// Content holds the section prose as styled paragraphs.
	Content []Paragraph
}

// WordCount returns the number of words in the section content.
func (s *Section) WordCount() int {
	n := 0
	for _, p := range s.Content {
		n += p.Words()
	}
	return n
}
