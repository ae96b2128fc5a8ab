// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdnov

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdnovx/internal/markup"
	"github.com/pdiddy/mdnovx/pkg/types"
)

// block is one %%-keyed text block of an element.
type block struct {
	key  string
	text string
}

// Write serializes a Novel as a complete .mdnov document: the book
// element, chapters with their sections inline, characters, locations,
// items, plot lines with their points, project notes, and the
// word-count log. The novel must carry a title; otherwise a
// SerializationError is returned and nothing is written.
func Write(w io.Writer, n *types.Novel) error {
	if n.Title == "" {
		return &types.SerializationError{Format: formatName, Reason: "project title is required"}
	}
	n.AdjustSectionTypes()
	n.SnapshotWordCount(time.Now().Format("2006-01-02"))

	var b strings.Builder
	if err := writeBook(&b, n); err != nil {
		return err
	}
	for _, ch := range n.Chapters {
		if err := writeChapter(&b, ch); err != nil {
			return err
		}
		for _, sc := range ch.Sections {
			if err := writeSection(&b, sc); err != nil {
				return err
			}
		}
	}
	for _, cr := range n.Characters {
		if err := writeCharacter(&b, cr); err != nil {
			return err
		}
	}
	for _, lc := range n.Locations {
		if err := writeWorldElement(&b, lc); err != nil {
			return err
		}
	}
	for _, it := range n.Items {
		if err := writeWorldElement(&b, it); err != nil {
			return err
		}
	}
	for _, pl := range n.PlotLines {
		if err := writePlotLine(&b, pl); err != nil {
			return err
		}
	}
	for _, pn := range n.ProjectNotes {
		if err := writeElement(&b, pn.ID, noteMeta{Title: pn.Title}, pn.Links, "", block{keyDesc, pn.Desc}); err != nil {
			return err
		}
	}
	writeFooter(&b, n)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write mdnov document: %w", err)
	}
	return nil
}

func writeBook(b *strings.Builder, n *types.Novel) error {
	meta := bookMeta{
		Title:                  n.Title,
		RenumberChapters:       flag(n.RenumberChapters),
		RenumberParts:          flag(n.RenumberParts),
		RenumberWithinParts:    flag(n.RenumberWithinParts),
		RomanChapterNumbers:    flag(n.RomanChapterNumbers),
		RomanPartNumbers:       flag(n.RomanPartNumbers),
		SaveWordCount:          flag(n.SaveWordCount),
		WorkPhase:              n.WorkPhase,
		Author:                 n.AuthorName,
		ChapterHeadingPrefix:   quoted(n.ChapterHeadingPrefix),
		ChapterHeadingSuffix:   quoted(n.ChapterHeadingSuffix),
		PartHeadingPrefix:      quoted(n.PartHeadingPrefix),
		PartHeadingSuffix:      quoted(n.PartHeadingSuffix),
		CustomPlotProgress:     n.CustomPlotProgress,
		CustomCharacterization: n.CustomCharacterization,
		CustomWorldBuilding:    n.CustomWorldBuilding,
		CustomGoal:             n.CustomGoal,
		CustomConflict:         n.CustomConflict,
		CustomOutcome:          n.CustomOutcome,
		CustomChrBio:           n.CustomChrBio,
		CustomChrGoals:         n.CustomChrGoals,
		WordCountStart:         n.WordCountStart,
		WordTarget:             n.WordTarget,
		ReferenceDate:          n.ReferenceDate,
	}
	return writeElement(b, "book", meta, n.Links, "", block{keyDesc, n.Desc})
}

func writeChapter(b *strings.Builder, ch *types.Chapter) error {
	meta := chapterMeta{
		Title:    ch.Title,
		Type:     ch.Type,
		IsTrash:  flag(ch.IsTrash),
		NoNumber: flag(ch.NoNumber),
	}
	if ch.Level == types.LevelPart {
		meta.Level = 1
	}
	return writeElement(b, ch.ID, meta, ch.Links, "",
		block{keyDesc, ch.Desc},
		block{keyNotes, ch.Notes},
	)
}

func writeSection(b *strings.Builder, sc *types.Section) error {
	meta := sectionMeta{
		Title:        sc.Title,
		Tags:         strings.Join(sc.Tags, ";"),
		Type:         sc.Type,
		Scene:        sc.Scene,
		Append:       flag(sc.AppendToPrev),
		Date:         sc.Date,
		Time:         sc.Time,
		LastsDays:    sc.LastsDays,
		LastsHours:   sc.LastsHours,
		LastsMinutes: sc.LastsMinutes,
		Characters:   strings.Join(sc.Characters, ";"),
		Locations:    strings.Join(sc.Locations, ";"),
		Items:        strings.Join(sc.Items, ";"),
	}
	if sc.Status > 1 {
		meta.Status = sc.Status
	}
	if sc.Date == "" {
		meta.Day = sc.Day
	}

	var plotlines strings.Builder
	for _, pn := range sc.PlotlineNotes {
		if pn.Text == "" {
			continue
		}
		plotlines.WriteString("%%" + keyPlotline + ":\n\n" + pn.PlotLineID + "\n\n")
		plotlines.WriteString("%%" + keyPlotlineNote + ":\n\n" + sanitizeMarkdown(pn.Text) + "\n\n")
	}

	return writeElement(b, sc.ID, meta, sc.Links, plotlines.String(),
		block{keyDesc, sc.Desc},
		block{keyNotes, sc.Notes},
		block{keyGoal, sc.Goal},
		block{keyConflict, sc.Conflict},
		block{keyOutcome, sc.Outcome},
		block{keyContent, renderParagraphs(sc.Content)},
	)
}

func writeCharacter(b *strings.Builder, cr *types.Character) error {
	meta := characterMeta{
		Title:     cr.Title,
		Tags:      strings.Join(cr.Tags, ";"),
		Aka:       cr.AKA,
		Major:     flag(cr.IsMajor),
		FullName:  cr.FullName,
		BirthDate: cr.BirthDate,
		DeathDate: cr.DeathDate,
	}
	return writeElement(b, cr.ID, meta, cr.Links, "",
		block{keyDesc, cr.Desc},
		block{keyNotes, cr.Notes},
		block{keyBio, cr.Bio},
		block{keyGoals, cr.Goals},
	)
}

func writeWorldElement(b *strings.Builder, we *types.WorldElement) error {
	meta := worldMeta{
		Title: we.Title,
		Tags:  strings.Join(we.Tags, ";"),
		Aka:   we.AKA,
	}
	return writeElement(b, we.ID, meta, we.Links, "",
		block{keyDesc, we.Desc},
		block{keyNotes, we.Notes},
	)
}

func writePlotLine(b *strings.Builder, pl *types.PlotLine) error {
	meta := plotLineMeta{
		Title:     pl.Title,
		ShortName: pl.ShortName,
		Sections:  strings.Join(pl.Sections, ";"),
	}
	if err := writeElement(b, pl.ID, meta, pl.Links, "",
		block{keyDesc, pl.Desc},
		block{keyNotes, pl.Notes},
	); err != nil {
		return err
	}
	for _, pp := range pl.PlotPoints {
		meta := plotPointMeta{Title: pp.Title, Section: pp.SectionAssoc}
		if err := writeElement(b, pp.ID, meta, pp.Links, "",
			block{keyDesc, pp.Desc},
			block{keyNotes, pp.Notes},
		); err != nil {
			return err
		}
	}
	return nil
}

// writeElement emits one element: the @@ line, the fenced metadata,
// link blocks, any pre-rendered raw blocks, the keyed text blocks, and
// the closing %% line.
func writeElement(b *strings.Builder, id string, meta any, links []types.Link, raw string, blocks ...block) error {
	out, err := yaml.Marshal(meta)
	if err != nil {
		return &types.SerializationError{Format: formatName, Reason: err.Error()}
	}
	b.WriteString("@@" + id + "\n\n---\n")
	b.Write(out)
	b.WriteString("---\n\n")
	for _, l := range links {
		b.WriteString("%%" + keyLink + ":\n\n[LinkPath](" + escapePath(l.Path) + ")\n\n")
		if l.FullPath != "" {
			b.WriteString("[FullPath](file:///" + escapePath(l.FullPath) + ")\n\n")
		}
	}
	b.WriteString(raw)
	for _, blk := range blocks {
		if blk.text == "" {
			continue
		}
		b.WriteString("%%" + blk.key + ":\n\n" + sanitizeMarkdown(blk.text) + "\n\n")
	}
	b.WriteString("%%\n\n")
	return nil
}

func writeFooter(b *strings.Builder, n *types.Novel) {
	log := n.CompactedWordCountLog()
	if len(log) == 0 {
		return
	}
	b.WriteString("\n@@" + keyProgress + "\n")
	for _, wc := range log {
		b.WriteString("- " + wc.Date + ";" + wc.Count + ";" + wc.WithUnused + "\n")
	}
	b.WriteString("\n%%\n")
}

// renderParagraphs flattens styled content to Markdown, one line per
// paragraph; sanitizing turns the line breaks into paragraph breaks.
func renderParagraphs(paras []types.Paragraph) string {
	if len(paras) == 0 {
		return ""
	}
	lines := make([]string, 0, len(paras))
	for _, p := range paras {
		lines = append(lines, markup.RenderMarkdown(p))
	}
	return strings.Join(lines, "\n")
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
