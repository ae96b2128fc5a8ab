// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strconv"

// Element ID prefixes shared by both file formats.
const (
	ChapterPrefix     = "ch"
	SectionPrefix     = "sc"
	CharacterPrefix   = "cr"
	LocationPrefix    = "lc"
	ItemPrefix        = "it"
	PlotLinePrefix    = "ac"
	PlotPointPrefix   = "ap"
	ProjectNotePrefix = "pn"
)

// WordCount is one row of the writing-progress log. Counts are kept
// as strings exactly as stored in the source file.
type WordCount struct {
	Date       string
	Count      string
	WithUnused string
}

// Novel is the root of the project model. A reader builds a fresh
// Novel per conversion run; a writer consumes it; it is never
// persisted independently.
type Novel struct {
	Element

	AuthorName string

	RenumberChapters    bool
	RenumberParts       bool
	RenumberWithinParts bool
	RomanChapterNumbers bool
	RomanPartNumbers    bool
	SaveWordCount       bool

	// WorkPhase is 1 through 5, or 0 when unset.
	WorkPhase int

	ChapterHeadingPrefix string
	ChapterHeadingSuffix string
	PartHeadingPrefix    string
	PartHeadingSuffix    string

	CustomPlotProgress     string
	CustomCharacterization string
	CustomWorldBuilding    string
	CustomGoal             string
	CustomConflict         string
	CustomOutcome          string
	CustomChrBio           string
	CustomChrGoals         string

	WordCountStart int
	WordTarget     int

	// ReferenceDate is the ISO date that unspecific Day values count
	// from.
	ReferenceDate string

	Chapters     []*Chapter
	Characters   []*Character
	Locations    []*WorldElement
	Items        []*WorldElement
	PlotLines    []*PlotLine
	ProjectNotes []*ProjectNote

	WordCountLog []WordCount
}

// Section returns the section with the given ID, or nil.
func (n *Novel) Section(id string) *Section {
	for _, ch := range n.Chapters {
		for _, sc := range ch.Sections {
			if sc.ID == id {
				return sc
			}
		}
	}
	return nil
}

// HasCharacter reports whether a character record with the ID exists.
func (n *Novel) HasCharacter(id string) bool {
	for _, cr := range n.Characters {
		if cr.ID == id {
			return true
		}
	}
	return false
}

// HasLocation reports whether a location record with the ID exists.
func (n *Novel) HasLocation(id string) bool {
	for _, lc := range n.Locations {
		if lc.ID == id {
			return true
		}
	}
	return false
}

// HasItem reports whether an item record with the ID exists.
func (n *Novel) HasItem(id string) bool {
	for _, it := range n.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// ResolveReferences drops dangling cross-references: section
// character/location/item refs without a record, plot-line section
// refs without a section, plot-point associations without a section,
// and plotline notes whose plot line does not reference the section
// back. Readers call this once the whole document is loaded.
func (n *Novel) ResolveReferences() {
	for _, ch := range n.Chapters {
		for _, sc := range ch.Sections {
			sc.Characters = keep(sc.Characters, n.HasCharacter)
			sc.Locations = keep(sc.Locations, n.HasLocation)
			sc.Items = keep(sc.Items, n.HasItem)
		}
	}
	for _, pl := range n.PlotLines {
		pl.Sections = keep(pl.Sections, func(id string) bool {
			return n.Section(id) != nil
		})
		for _, pp := range pl.PlotPoints {
			if pp.SectionAssoc != "" && n.Section(pp.SectionAssoc) == nil {
				pp.SectionAssoc = ""
			}
		}
	}
	for _, ch := range n.Chapters {
		for _, sc := range ch.Sections {
			var notes []PlotlineNote
			for _, pn := range sc.PlotlineNotes {
				if pn.Text == "" {
					continue
				}
				if pl := n.plotLine(pn.PlotLineID); pl != nil && contains(pl.Sections, sc.ID) {
					notes = append(notes, pn)
				}
			}
			sc.PlotlineNotes = notes
		}
	}
}

// AdjustSectionTypes propagates part types to the chapters that
// follow them and raises each section's type to at least its
// chapter's type. Trash chapters are exempt from part propagation.
func (n *Novel) AdjustSectionTypes() {
	partType := ChapterNormal
	for _, ch := range n.Chapters {
		if ch.Level == LevelPart {
			partType = ch.Type
		} else if partType != ChapterNormal && !ch.IsTrash {
			ch.Type = partType
		}
		for _, sc := range ch.Sections {
			if sc.Type < ch.Type {
				sc.Type = ch.Type
			}
		}
	}
}

// CountWords returns the word count of normal sections and the total
// including unused ones, skipping trash chapters and stages.
func (n *Novel) CountWords() (used, total int) {
	for _, ch := range n.Chapters {
		if ch.IsTrash {
			continue
		}
		for _, sc := range ch.Sections {
			if sc.Type >= SectionStage1 {
				continue
			}
			wc := sc.WordCount()
			total += wc
			if sc.Type == SectionNormal {
				used += wc
			}
		}
	}
	return used, total
}

// SnapshotWordCount records the current counts under the given date
// when word-count logging is enabled. An existing entry for the same
// date is replaced, so repeated conversions on one day keep one row.
func (n *Novel) SnapshotWordCount(date string) {
	if !n.SaveWordCount {
		return
	}
	used, total := n.CountWords()
	entry := WordCount{
		Date:       date,
		Count:      strconv.Itoa(used),
		WithUnused: strconv.Itoa(total),
	}
	for i, wc := range n.WordCountLog {
		if wc.Date == date {
			n.WordCountLog[i] = entry
			return
		}
	}
	n.WordCountLog = append(n.WordCountLog, entry)
}

// CompactedWordCountLog returns the log for writing. With logging
// enabled, rows repeating the previous row's counts are dropped.
func (n *Novel) CompactedWordCountLog() []WordCount {
	if !n.SaveWordCount {
		return n.WordCountLog
	}
	var out []WordCount
	for _, wc := range n.WordCountLog {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if prev.Count == wc.Count && prev.WithUnused == wc.WithUnused {
				continue
			}
		}
		out = append(out, wc)
	}
	return out
}

func (n *Novel) plotLine(id string) *PlotLine {
	for _, pl := range n.PlotLines {
		if pl.ID == id {
			return pl
		}
	}
	return nil
}

func keep(ids []string, ok func(string) bool) []string {
	var out []string
	for _, id := range ids {
		if id != "" && ok(id) {
			out = append(out, id)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
