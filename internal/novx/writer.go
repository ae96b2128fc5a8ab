// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package novx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/mdnovx/pkg/types"
)

// Write serializes a Novel as a complete .novx document. The novel
// must carry a title; otherwise a SerializationError is returned and
// nothing is written. With word-count logging enabled, the current
// counts are recorded under today's date before serializing.
func Write(w io.Writer, n *types.Novel) error {
	if n.Title == "" {
		return &types.SerializationError{Format: formatName, Reason: "project title is required"}
	}
	n.AdjustSectionTypes()
	n.SnapshotWordCount(time.Now().Format("2006-01-02"))

	doc := buildDocument(n)
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &types.SerializationError{Format: formatName, Reason: err.Error()}
	}
	if _, err := io.WriteString(w, xmlHeader); err != nil {
		return fmt.Errorf("write novx document: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("write novx document: %w", err)
	}
	return nil
}

func buildDocument(n *types.Novel) *xmlDocument {
	doc := &xmlDocument{
		Version: fmt.Sprintf("%d.%d", majorVersion, minorVersion),
		Project: buildProject(n),
	}
	for _, ch := range n.Chapters {
		doc.Chapters.Chapters = append(doc.Chapters.Chapters, buildChapter(ch))
	}
	for _, cr := range n.Characters {
		doc.Characters.Characters = append(doc.Characters.Characters, buildCharacter(cr))
	}
	for _, lc := range n.Locations {
		doc.Locations.Locations = append(doc.Locations.Locations, buildWorldElement(lc))
	}
	for _, it := range n.Items {
		doc.Items.Items = append(doc.Items.Items, buildWorldElement(it))
	}
	for _, pl := range n.PlotLines {
		doc.PlotLines.PlotLines = append(doc.PlotLines.PlotLines, buildPlotLine(pl, n))
	}
	for _, pn := range n.ProjectNotes {
		doc.ProjectNotes.Notes = append(doc.ProjectNotes.Notes, xmlProjectNote{
			ID:    pn.ID,
			Title: pn.Title,
			Desc:  textOf(pn.Desc),
			Links: buildLinks(pn.Links),
		})
	}
	if log := n.CompactedWordCountLog(); len(log) > 0 {
		doc.Progress = &xmlProgress{}
		for _, wc := range log {
			doc.Progress.Entries = append(doc.Progress.Entries, xmlWC{
				Date:       wc.Date,
				Count:      wc.Count,
				WithUnused: wc.WithUnused,
			})
		}
	}
	return doc
}

func buildProject(n *types.Novel) *xmlProject {
	return &xmlProject{
		RenumberChapters:    flag(n.RenumberChapters),
		RenumberParts:       flag(n.RenumberParts),
		RenumberWithinParts: flag(n.RenumberWithinParts),
		RomanChapterNumbers: flag(n.RomanChapterNumbers),
		RomanPartNumbers:    flag(n.RomanPartNumbers),
		SaveWordCount:       flag(n.SaveWordCount),
		WorkPhase:           positive(n.WorkPhase),

		Title:                  n.Title,
		Desc:                   textOf(n.Desc),
		Links:                  buildLinks(n.Links),
		Author:                 n.AuthorName,
		ChapterHeadingPrefix:   n.ChapterHeadingPrefix,
		ChapterHeadingSuffix:   n.ChapterHeadingSuffix,
		PartHeadingPrefix:      n.PartHeadingPrefix,
		PartHeadingSuffix:      n.PartHeadingSuffix,
		CustomPlotProgress:     n.CustomPlotProgress,
		CustomCharacterization: n.CustomCharacterization,
		CustomWorldBuilding:    n.CustomWorldBuilding,
		CustomGoal:             n.CustomGoal,
		CustomConflict:         n.CustomConflict,
		CustomOutcome:          n.CustomOutcome,
		CustomChrBio:           n.CustomChrBio,
		CustomChrGoals:         n.CustomChrGoals,
		WordCountStart:         positive(n.WordCountStart),
		WordTarget:             positive(n.WordTarget),
		ReferenceDate:          n.ReferenceDate,
	}
}

func buildChapter(ch *types.Chapter) xmlChapter {
	xc := xmlChapter{
		ID:       ch.ID,
		Type:     positive(ch.Type),
		IsTrash:  flag(ch.IsTrash),
		NoNumber: flag(ch.NoNumber),
		Title:    ch.Title,
		Desc:     textOf(ch.Desc),
		Links:    buildLinks(ch.Links),
		Notes:    textOf(ch.Notes),
	}
	if ch.Level == types.LevelPart {
		xc.Level = "1"
	}
	for _, sc := range ch.Sections {
		xc.Sections = append(xc.Sections, buildSection(sc))
	}
	return xc
}

func buildSection(sc *types.Section) xmlSection {
	xs := xmlSection{
		ID:       sc.ID,
		Type:     positive(sc.Type),
		Scene:    positive(sc.Scene),
		Append:   flag(sc.AppendToPrev),
		Title:    sc.Title,
		Desc:     textOf(sc.Desc),
		Links:    buildLinks(sc.Links),
		Notes:    textOf(sc.Notes),
		Tags:     strings.Join(sc.Tags, ";"),
		Goal:     textOf(sc.Goal),
		Conflict: textOf(sc.Conflict),
		Outcome:  textOf(sc.Outcome),

		Date:         sc.Date,
		Day:          sc.Day,
		Time:         sc.Time,
		LastsDays:    sc.LastsDays,
		LastsHours:   sc.LastsHours,
		LastsMinutes: sc.LastsMinutes,

		Characters: buildIDList(sc.Characters),
		Locations:  buildIDList(sc.Locations),
		Items:      buildIDList(sc.Items),
	}
	if sc.Status > 1 {
		xs.Status = strconv.Itoa(sc.Status)
	}
	for _, pn := range sc.PlotlineNotes {
		xs.PlotlineNotes = append(xs.PlotlineNotes, xmlPlotlineNotes{
			ID:         pn.PlotLineID,
			Paragraphs: strings.Split(pn.Text, "\n"),
		})
	}
	if len(sc.Content) > 0 {
		xs.Content = &xmlContent{Inner: renderContent(sc.Content)}
	}
	return xs
}

func buildCharacter(cr *types.Character) xmlCharacter {
	return xmlCharacter{
		ID:        cr.ID,
		Major:     flag(cr.IsMajor),
		Title:     cr.Title,
		Desc:      textOf(cr.Desc),
		Links:     buildLinks(cr.Links),
		Notes:     textOf(cr.Notes),
		Tags:      strings.Join(cr.Tags, ";"),
		Aka:       cr.AKA,
		FullName:  cr.FullName,
		Bio:       textOf(cr.Bio),
		Goals:     textOf(cr.Goals),
		BirthDate: cr.BirthDate,
		DeathDate: cr.DeathDate,
	}
}

func buildWorldElement(we *types.WorldElement) xmlWorldElement {
	return xmlWorldElement{
		ID:    we.ID,
		Title: we.Title,
		Desc:  textOf(we.Desc),
		Links: buildLinks(we.Links),
		Notes: textOf(we.Notes),
		Tags:  strings.Join(we.Tags, ";"),
		Aka:   we.AKA,
	}
}

func buildPlotLine(pl *types.PlotLine, n *types.Novel) xmlPlotLine {
	xp := xmlPlotLine{
		ID:        pl.ID,
		Title:     pl.Title,
		Desc:      textOf(pl.Desc),
		Links:     buildLinks(pl.Links),
		Notes:     textOf(pl.Notes),
		ShortName: pl.ShortName,
		Sections:  buildIDList(pl.Sections),
	}
	for _, pp := range pl.PlotPoints {
		xpp := xmlPlotPoint{
			ID:    pp.ID,
			Title: pp.Title,
			Desc:  textOf(pp.Desc),
			Links: buildLinks(pp.Links),
			Notes: textOf(pp.Notes),
		}
		if pp.SectionAssoc != "" && n.Section(pp.SectionAssoc) != nil {
			xpp.Section = &xmlSectionRef{ID: pp.SectionAssoc}
		}
		xp.Points = append(xp.Points, xpp)
	}
	return xp
}

func buildLinks(links []types.Link) []xmlLink {
	var out []xmlLink
	for _, l := range links {
		out = append(out, xmlLink{Path: l.Path, FullPath: l.FullPath})
	}
	return out
}

func buildIDList(ids []string) *xmlIDList {
	if len(ids) == 0 {
		return nil
	}
	return &xmlIDList{IDs: strings.Join(ids, " ")}
}

// textOf wraps newline-separated plain text as a multi-paragraph
// element, or nil when empty.
func textOf(s string) *xmlText {
	if s == "" {
		return nil
	}
	return &xmlText{Paragraphs: strings.Split(s, "\n")}
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return ""
}

func positive(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}
