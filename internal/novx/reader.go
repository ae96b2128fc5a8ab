// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package novx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/mdnovx/pkg/types"
)

// Read parses a .novx document into a Novel. The document version
// must be compatible with version 1.4 and the PROJECT branch must
// carry a title; otherwise a MalformedDocumentError is returned.
// Cross-references are resolved and section types adjusted before the
// Novel is handed back.
func Read(r io.Reader) (*types.Novel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read novx source: %w", err)
	}
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &types.MalformedDocumentError{Format: formatName, Reason: err.Error()}
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	if doc.Project == nil || doc.Project.Title == "" {
		return nil, &types.MalformedDocumentError{Format: formatName, Reason: "no project title found"}
	}

	novel := &types.Novel{}
	readProject(doc.Project, novel)

	for _, xc := range doc.Chapters.Chapters {
		ch, err := readChapter(&xc)
		if err != nil {
			return nil, err
		}
		novel.Chapters = append(novel.Chapters, ch)
	}
	for _, xc := range doc.Characters.Characters {
		novel.Characters = append(novel.Characters, readCharacter(&xc))
	}
	for _, xw := range doc.Locations.Locations {
		novel.Locations = append(novel.Locations, readWorldElement(&xw))
	}
	for _, xw := range doc.Items.Items {
		novel.Items = append(novel.Items, readWorldElement(&xw))
	}
	for _, xp := range doc.PlotLines.PlotLines {
		novel.PlotLines = append(novel.PlotLines, readPlotLine(&xp))
	}
	for _, xn := range doc.ProjectNotes.Notes {
		note := &types.ProjectNote{}
		note.Element = readElement(xn.ID, xn.Title, xn.Desc, xn.Links)
		novel.ProjectNotes = append(novel.ProjectNotes, note)
	}
	if doc.Progress != nil {
		for _, wc := range doc.Progress.Entries {
			if wc.Date == "" || wc.Count == "" || wc.WithUnused == "" {
				continue
			}
			novel.WordCountLog = append(novel.WordCountLog, types.WordCount{
				Date:       wc.Date,
				Count:      wc.Count,
				WithUnused: wc.WithUnused,
			})
		}
	}

	novel.AdjustSectionTypes()
	novel.ResolveReferences()
	return novel, nil
}

// checkVersion gates on the version attribute of the root element.
func checkVersion(version string) error {
	majorStr, minorStr, found := strings.Cut(version, ".")
	if !found {
		return &types.MalformedDocumentError{Format: formatName, Reason: "no valid version found in file"}
	}
	major, err1 := strconv.Atoi(majorStr)
	minor, err2 := strconv.Atoi(minorStr)
	if err1 != nil || err2 != nil {
		return &types.MalformedDocumentError{Format: formatName, Reason: "no valid version found in file"}
	}
	switch {
	case major > majorVersion:
		return &types.MalformedDocumentError{Format: formatName, Reason: "document was created with a newer application version"}
	case major < majorVersion:
		return &types.MalformedDocumentError{Format: formatName, Reason: "document was created with an outdated application version"}
	case minor > minorVersion:
		return &types.MalformedDocumentError{Format: formatName, Reason: "document was created with a newer application version"}
	}
	return nil
}

func readProject(xp *xmlProject, n *types.Novel) {
	n.Title = xp.Title
	n.Desc = joinText(xp.Desc)
	n.Links = readLinks(xp.Links)
	n.AuthorName = xp.Author

	n.RenumberChapters = xp.RenumberChapters == "1"
	n.RenumberParts = xp.RenumberParts == "1"
	n.RenumberWithinParts = xp.RenumberWithinParts == "1"
	n.RomanChapterNumbers = xp.RomanChapterNumbers == "1"
	n.RomanPartNumbers = xp.RomanPartNumbers == "1"
	n.SaveWordCount = xp.SaveWordCount == "1"
	n.WorkPhase = clampInt(xp.WorkPhase, 1, 5, 0)

	n.ChapterHeadingPrefix = xp.ChapterHeadingPrefix
	n.ChapterHeadingSuffix = xp.ChapterHeadingSuffix
	n.PartHeadingPrefix = xp.PartHeadingPrefix
	n.PartHeadingSuffix = xp.PartHeadingSuffix

	n.CustomPlotProgress = xp.CustomPlotProgress
	n.CustomCharacterization = xp.CustomCharacterization
	n.CustomWorldBuilding = xp.CustomWorldBuilding
	n.CustomGoal = xp.CustomGoal
	n.CustomConflict = xp.CustomConflict
	n.CustomOutcome = xp.CustomOutcome
	n.CustomChrBio = xp.CustomChrBio
	n.CustomChrGoals = xp.CustomChrGoals

	n.WordCountStart, _ = strconv.Atoi(xp.WordCountStart)
	n.WordTarget, _ = strconv.Atoi(xp.WordTarget)
	n.ReferenceDate = types.ValidDate(xp.ReferenceDate)
}

func readChapter(xc *xmlChapter) (*types.Chapter, error) {
	ch := &types.Chapter{
		Element: readElement(xc.ID, xc.Title, xc.Desc, xc.Links),
		Notes:   joinText(xc.Notes),
	}
	if xc.Type != "" {
		ch.Type = clampInt(xc.Type, 0, 1, 1)
	}
	if xc.Level == "1" {
		ch.Level = types.LevelPart
	} else {
		ch.Level = types.LevelChapter
	}
	ch.IsTrash = xc.IsTrash == "1"
	ch.NoNumber = xc.NoNumber == "1"
	for _, xs := range xc.Sections {
		sc, err := readSection(&xs)
		if err != nil {
			return nil, err
		}
		ch.Sections = append(ch.Sections, sc)
	}
	return ch, nil
}

func readSection(xs *xmlSection) (*types.Section, error) {
	sc := &types.Section{
		Element: readElement(xs.ID, xs.Title, xs.Desc, xs.Links),
		Notes:   joinText(xs.Notes),
		Tags:    types.SplitList(xs.Tags, ";"),
	}
	if xs.Type != "" {
		sc.Type = clampInt(xs.Type, 0, 3, 1)
	}
	sc.Status = clampInt(xs.Status, 2, 5, 1)
	sc.Scene = clampInt(xs.Scene, 1, 3, 0)
	if sc.Scene == 0 {
		// Upgrade the pre-1.4 pacing attribute: action 1 and
		// reaction 2 become scene kinds 2 and 3.
		if pacing := clampInt(xs.Pacing, 1, 2, 0); pacing > 0 {
			sc.Scene = pacing + 1
		}
	}
	sc.AppendToPrev = xs.Append == "1"

	sc.Goal = joinText(xs.Goal)
	sc.Conflict = joinText(xs.Conflict)
	sc.Outcome = joinText(xs.Outcome)

	notes := xs.PlotlineNotes
	if xs.PlotNotes != nil {
		notes = append(notes, xs.PlotNotes.Notes...)
	}
	for _, pn := range notes {
		sc.PlotlineNotes = append(sc.PlotlineNotes, types.PlotlineNote{
			PlotLineID: pn.ID,
			Text:       strings.Join(pn.Paragraphs, "\n"),
		})
	}

	sc.Date = types.ValidDate(xs.Date)
	if sc.Date == "" {
		sc.Day = types.ValidNumber(xs.Day)
	}
	sc.Time = types.ValidTime(xs.Time)
	sc.LastsDays = types.ValidNumber(xs.LastsDays)
	sc.LastsHours = types.ValidNumber(xs.LastsHours)
	sc.LastsMinutes = types.ValidNumber(xs.LastsMinutes)

	sc.Characters = idList(xs.Characters)
	sc.Locations = idList(xs.Locations)
	sc.Items = idList(xs.Items)

	if xs.Content != nil {
		paras, err := parseContent(xs.Content.Inner)
		if err != nil {
			return nil, err
		}
		sc.Content = paras
	}
	return sc, nil
}

func readCharacter(xc *xmlCharacter) *types.Character {
	cr := &types.Character{}
	cr.Element = readElement(xc.ID, xc.Title, xc.Desc, xc.Links)
	cr.Notes = joinText(xc.Notes)
	cr.Tags = types.SplitList(xc.Tags, ";")
	cr.AKA = xc.Aka
	cr.FullName = xc.FullName
	cr.Bio = joinText(xc.Bio)
	cr.Goals = joinText(xc.Goals)
	cr.IsMajor = xc.Major == "1"
	cr.BirthDate = types.ValidDate(xc.BirthDate)
	cr.DeathDate = types.ValidDate(xc.DeathDate)
	return cr
}

func readWorldElement(xw *xmlWorldElement) *types.WorldElement {
	we := &types.WorldElement{}
	we.Element = readElement(xw.ID, xw.Title, xw.Desc, xw.Links)
	we.Notes = joinText(xw.Notes)
	we.Tags = types.SplitList(xw.Tags, ";")
	we.AKA = xw.Aka
	return we
}

func readPlotLine(xp *xmlPlotLine) *types.PlotLine {
	pl := &types.PlotLine{}
	pl.Element = readElement(xp.ID, xp.Title, xp.Desc, xp.Links)
	pl.Notes = joinText(xp.Notes)
	pl.ShortName = xp.ShortName
	pl.Sections = idList(xp.Sections)
	for _, xpp := range xp.Points {
		pp := &types.PlotPoint{}
		pp.Element = readElement(xpp.ID, xpp.Title, xpp.Desc, xpp.Links)
		pp.Notes = joinText(xpp.Notes)
		if xpp.Section != nil {
			pp.SectionAssoc = xpp.Section.ID
		}
		pl.PlotPoints = append(pl.PlotPoints, pp)
	}
	return pl
}

func readElement(id, title string, desc *xmlText, links []xmlLink) types.Element {
	return types.Element{
		ID:    id,
		Title: title,
		Desc:  joinText(desc),
		Links: readLinks(links),
	}
}

func readLinks(links []xmlLink) []types.Link {
	var out []types.Link
	for _, l := range links {
		path := l.Path
		if path == "" {
			path = l.PathAttr
		}
		full := l.FullPath
		if full == "" {
			full = l.FullPathAttr
		}
		if path == "" && full == "" {
			continue
		}
		out = append(out, types.Link{Path: path, FullPath: full})
	}
	return out
}

// joinText flattens a multi-paragraph text element to newline-joined
// plain text.
func joinText(t *xmlText) string {
	if t == nil {
		return ""
	}
	return strings.Join(t.Paragraphs, "\n")
}

func idList(l *xmlIDList) []string {
	if l == nil {
		return nil
	}
	return strings.Fields(l.IDs)
}

// clampInt parses an integer attribute, substituting fallback when
// the value is unparsable or outside [lo, hi].
func clampInt(s string, lo, hi, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < lo || v > hi {
		return fallback
	}
	return v
}

