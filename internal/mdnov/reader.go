// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdnov

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdnovx/internal/markup"
	"github.com/pdiddy/mdnovx/pkg/types"
)

// Read parses a .mdnov document into a Novel. The book element must
// carry a title; otherwise a MalformedDocumentError is returned.
// Cross-references are resolved and section types adjusted before the
// Novel is handed back.
func Read(r io.Reader) (*types.Novel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read mdnov source: %w", err)
	}
	p := &parser{novel: &types.Novel{}}
	for _, line := range strings.Split(string(data), "\n") {
		if err := p.line(line); err != nil {
			return nil, err
		}
	}
	if err := p.flushBlock(); err != nil {
		return nil, err
	}
	if p.novel.Title == "" {
		return nil, &types.MalformedDocumentError{Format: formatName, Reason: "no project title found"}
	}
	p.novel.AdjustSectionTypes()
	p.novel.ResolveReferences()
	return p.novel, nil
}

// parser is the line state machine. Each @@ line installs the
// closures that apply the following metadata and text blocks to the
// element just created.
type parser struct {
	novel    *types.Novel
	chapter  *types.Chapter
	plotLine *types.PlotLine
	section  *types.Section

	applyMeta func(data []byte) error
	setText   func(key, text string)
	addLinks  func(links []types.Link)

	inMeta      bool
	metaLines   []string
	blockKey    string
	blockLines  []string
	pendingPlot string
}

func (p *parser) line(line string) error {
	if strings.HasPrefix(line, "@@") {
		if err := p.flushBlock(); err != nil {
			return err
		}
		p.inMeta = false
		return p.startElement(strings.TrimSpace(line[2:]))
	}

	if strings.HasPrefix(line, "---") {
		if !p.inMeta {
			p.inMeta = true
			p.metaLines = nil
			return nil
		}
		p.inMeta = false
		if p.applyMeta == nil {
			return nil
		}
		return p.applyMeta([]byte(strings.Join(p.metaLines, "\n")))
	}

	if strings.HasPrefix(line, "%%") {
		if err := p.flushBlock(); err != nil {
			return err
		}
		if tag := strings.Trim(line, "%: "); tag != "" {
			p.blockKey = tag
		}
		return nil
	}

	if p.inMeta {
		p.metaLines = append(p.metaLines, line)
	} else if p.blockKey != "" {
		p.blockLines = append(p.blockLines, line)
	}
	return nil
}

// startElement creates the element the @@ line announces and installs
// its block handlers.
func (p *parser) startElement(id string) error {
	p.section = nil
	switch {
	case id == "book":
		p.bindBook()
	case id == keyProgress:
		p.applyMeta = nil
		p.setText = nil
		p.addLinks = nil
		p.blockKey = keyProgress
	case strings.HasPrefix(id, types.ChapterPrefix):
		p.bindChapter(id)
	case strings.HasPrefix(id, types.CharacterPrefix):
		p.bindCharacter(id)
	case strings.HasPrefix(id, types.ItemPrefix):
		we := p.bindWorldElement(id)
		p.novel.Items = append(p.novel.Items, we)
	case strings.HasPrefix(id, types.LocationPrefix):
		we := p.bindWorldElement(id)
		p.novel.Locations = append(p.novel.Locations, we)
	case strings.HasPrefix(id, types.PlotLinePrefix):
		p.bindPlotLine(id)
	case strings.HasPrefix(id, types.PlotPointPrefix):
		if p.plotLine == nil {
			return &types.MalformedDocumentError{Format: formatName, Reason: fmt.Sprintf("plot point %q outside of any plot line", id)}
		}
		p.bindPlotPoint(id)
	case strings.HasPrefix(id, types.ProjectNotePrefix):
		p.bindProjectNote(id)
	case strings.HasPrefix(id, types.SectionPrefix):
		if p.chapter == nil {
			return &types.MalformedDocumentError{Format: formatName, Reason: fmt.Sprintf("section %q outside of any chapter", id)}
		}
		p.bindSection(id)
	default:
		return &types.MalformedDocumentError{Format: formatName, Reason: fmt.Sprintf("unknown element %q", id)}
	}
	return nil
}

// flushBlock applies the collected block lines to the current element.
func (p *parser) flushBlock() error {
	key := p.blockKey
	text := strings.TrimSpace(strings.Join(p.blockLines, "\n"))
	p.blockKey = ""
	p.blockLines = nil
	if key == "" || text == "" {
		return nil
	}
	switch key {
	case keyProgress:
		return p.readWordCountLog(text)
	case keyLink:
		if p.addLinks != nil {
			p.addLinks(parseLinks(text))
		}
	case keyPlotline:
		p.pendingPlot = text
	case keyPlotlineNote:
		if p.section != nil && p.pendingPlot != "" {
			p.section.PlotlineNotes = append(p.section.PlotlineNotes, types.PlotlineNote{
				PlotLineID: p.pendingPlot,
				Text:       desanitize(text),
			})
		}
		p.pendingPlot = ""
	default:
		if p.setText != nil {
			p.setText(key, text)
		}
	}
	return nil
}

func (p *parser) bindBook() {
	n := p.novel
	p.applyMeta = func(data []byte) error {
		var m bookMeta
		if err := unmarshalMeta(data, &m); err != nil {
			return err
		}
		n.Title = m.Title
		n.RenumberChapters = m.RenumberChapters == 1
		n.RenumberParts = m.RenumberParts == 1
		n.RenumberWithinParts = m.RenumberWithinParts == 1
		n.RomanChapterNumbers = m.RomanChapterNumbers == 1
		n.RomanPartNumbers = m.RomanPartNumbers == 1
		n.SaveWordCount = m.SaveWordCount == 1
		if m.WorkPhase >= 1 && m.WorkPhase <= 5 {
			n.WorkPhase = m.WorkPhase
		}
		n.AuthorName = m.Author
		n.ChapterHeadingPrefix = string(m.ChapterHeadingPrefix)
		n.ChapterHeadingSuffix = string(m.ChapterHeadingSuffix)
		n.PartHeadingPrefix = string(m.PartHeadingPrefix)
		n.PartHeadingSuffix = string(m.PartHeadingSuffix)
		n.CustomPlotProgress = m.CustomPlotProgress
		n.CustomCharacterization = m.CustomCharacterization
		n.CustomWorldBuilding = m.CustomWorldBuilding
		n.CustomGoal = m.CustomGoal
		n.CustomConflict = m.CustomConflict
		n.CustomOutcome = m.CustomOutcome
		n.CustomChrBio = m.CustomChrBio
		n.CustomChrGoals = m.CustomChrGoals
		n.WordCountStart = m.WordCountStart
		n.WordTarget = m.WordTarget
		n.ReferenceDate = types.ValidDate(m.ReferenceDate)
		return nil
	}
	p.setText = func(key, text string) {
		if key == keyDesc {
			n.Desc = desanitize(text)
		}
	}
	p.addLinks = func(links []types.Link) {
		n.Links = append(n.Links, links...)
	}
}

func (p *parser) bindChapter(id string) {
	ch := &types.Chapter{Element: types.Element{ID: id}, Level: types.LevelChapter}
	p.novel.Chapters = append(p.novel.Chapters, ch)
	p.chapter = ch
	p.applyMeta = func(data []byte) error {
		var m chapterMeta
		if err := unmarshalMeta(data, &m); err != nil {
			return err
		}
		ch.Title = m.Title
		if m.Type == 0 || m.Type == 1 {
			ch.Type = m.Type
		} else {
			ch.Type = types.ChapterUnused
		}
		if m.Level == 1 {
			ch.Level = types.LevelPart
		}
		ch.IsTrash = m.IsTrash == 1
		ch.NoNumber = m.NoNumber == 1
		return nil
	}
	p.setText = func(key, text string) {
		switch key {
		case keyDesc:
			ch.Desc = desanitize(text)
		case keyNotes:
			ch.Notes = desanitize(text)
		}
	}
	p.addLinks = func(links []types.Link) {
		ch.Links = append(ch.Links, links...)
	}
}

func (p *parser) bindSection(id string) {
	sc := &types.Section{Element: types.Element{ID: id}, Status: 1}
	p.chapter.Sections = append(p.chapter.Sections, sc)
	p.section = sc
	p.applyMeta = func(data []byte) error {
		var m sectionMeta
		if err := unmarshalMeta(data, &m); err != nil {
			return err
		}
		sc.Title = m.Title
		sc.Tags = types.SplitList(m.Tags, ";")
		if m.Type >= 0 && m.Type <= 3 {
			sc.Type = m.Type
		} else {
			sc.Type = types.SectionUnused
		}
		if m.Status >= 2 && m.Status <= 5 {
			sc.Status = m.Status
		}
		if m.Scene >= 1 && m.Scene <= 3 {
			sc.Scene = m.Scene
		} else if m.Pacing == 1 || m.Pacing == 2 {
			// Upgrade the legacy pacing key: action 1 and reaction 2
			// become scene kinds 2 and 3.
			sc.Scene = m.Pacing + 1
		}
		sc.AppendToPrev = m.Append == 1
		sc.Date = types.ValidDate(m.Date)
		if sc.Date == "" {
			sc.Day = types.ValidNumber(m.Day)
		}
		sc.Time = types.ValidTime(m.Time)
		sc.LastsDays = types.ValidNumber(m.LastsDays)
		sc.LastsHours = types.ValidNumber(m.LastsHours)
		sc.LastsMinutes = types.ValidNumber(m.LastsMinutes)
		sc.Characters = types.SplitList(m.Characters, ";")
		sc.Locations = types.SplitList(m.Locations, ";")
		sc.Items = types.SplitList(m.Items, ";")
		return nil
	}
	p.setText = func(key, text string) {
		switch key {
		case keyDesc:
			sc.Desc = desanitize(text)
		case keyNotes:
			sc.Notes = desanitize(text)
		case keyGoal:
			sc.Goal = desanitize(text)
		case keyConflict:
			sc.Conflict = desanitize(text)
		case keyOutcome:
			sc.Outcome = desanitize(text)
		case keyContent:
			sc.Content = parseParagraphs(text)
		}
	}
	p.addLinks = func(links []types.Link) {
		sc.Links = append(sc.Links, links...)
	}
}

func (p *parser) bindCharacter(id string) {
	cr := &types.Character{}
	cr.ID = id
	p.novel.Characters = append(p.novel.Characters, cr)
	p.applyMeta = func(data []byte) error {
		var m characterMeta
		if err := unmarshalMeta(data, &m); err != nil {
			return err
		}
		cr.Title = m.Title
		cr.Tags = types.SplitList(m.Tags, ";")
		cr.AKA = m.Aka
		cr.IsMajor = m.Major == 1
		cr.FullName = m.FullName
		cr.BirthDate = types.ValidDate(m.BirthDate)
		cr.DeathDate = types.ValidDate(m.DeathDate)
		return nil
	}
	p.setText = func(key, text string) {
		switch key {
		case keyDesc:
			cr.Desc = desanitize(text)
		case keyNotes:
			cr.Notes = desanitize(text)
		case keyBio:
			cr.Bio = desanitize(text)
		case keyGoals:
			cr.Goals = desanitize(text)
		}
	}
	p.addLinks = func(links []types.Link) {
		cr.Links = append(cr.Links, links...)
	}
}

func (p *parser) bindWorldElement(id string) *types.WorldElement {
	we := &types.WorldElement{}
	we.ID = id
	p.applyMeta = func(data []byte) error {
		var m worldMeta
		if err := unmarshalMeta(data, &m); err != nil {
			return err
		}
		we.Title = m.Title
		we.Tags = types.SplitList(m.Tags, ";")
		we.AKA = m.Aka
		return nil
	}
	p.setText = func(key, text string) {
		switch key {
		case keyDesc:
			we.Desc = desanitize(text)
		case keyNotes:
			we.Notes = desanitize(text)
		}
	}
	p.addLinks = func(links []types.Link) {
		we.Links = append(we.Links, links...)
	}
	return we
}

func (p *parser) bindPlotLine(id string) {
	pl := &types.PlotLine{}
	pl.ID = id
	p.novel.PlotLines = append(p.novel.PlotLines, pl)
	p.plotLine = pl
	p.applyMeta = func(data []byte) error {
		var m plotLineMeta
		if err := unmarshalMeta(data, &m); err != nil {
			return err
		}
		pl.Title = m.Title
		pl.ShortName = m.ShortName
		pl.Sections = types.SplitList(m.Sections, ";")
		return nil
	}
	p.setText = func(key, text string) {
		switch key {
		case keyDesc:
			pl.Desc = desanitize(text)
		case keyNotes:
			pl.Notes = desanitize(text)
		}
	}
	p.addLinks = func(links []types.Link) {
		pl.Links = append(pl.Links, links...)
	}
}

func (p *parser) bindPlotPoint(id string) {
	pp := &types.PlotPoint{}
	pp.ID = id
	p.plotLine.PlotPoints = append(p.plotLine.PlotPoints, pp)
	p.applyMeta = func(data []byte) error {
		var m plotPointMeta
		if err := unmarshalMeta(data, &m); err != nil {
			return err
		}
		pp.Title = m.Title
		pp.SectionAssoc = m.Section
		return nil
	}
	p.setText = func(key, text string) {
		switch key {
		case keyDesc:
			pp.Desc = desanitize(text)
		case keyNotes:
			pp.Notes = desanitize(text)
		}
	}
	p.addLinks = func(links []types.Link) {
		pp.Links = append(pp.Links, links...)
	}
}

func (p *parser) bindProjectNote(id string) {
	pn := &types.ProjectNote{}
	pn.ID = id
	p.novel.ProjectNotes = append(p.novel.ProjectNotes, pn)
	p.applyMeta = func(data []byte) error {
		var m noteMeta
		if err := unmarshalMeta(data, &m); err != nil {
			return err
		}
		pn.Title = m.Title
		return nil
	}
	p.setText = func(key, text string) {
		if key == keyDesc {
			pn.Desc = desanitize(text)
		}
	}
	p.addLinks = func(links []types.Link) {
		pn.Links = append(pn.Links, links...)
	}
}

// readWordCountLog parses "- date;count;total" rows.
func (p *parser) readWordCountLog(text string) error {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(strings.TrimLeft(line, "- "), ";")
		if len(parts) < 3 {
			return &types.MalformedDocumentError{Format: formatName, Reason: fmt.Sprintf("bad word count row %q", line)}
		}
		p.novel.WordCountLog = append(p.novel.WordCountLog, types.WordCount{
			Date:       parts[0],
			Count:      parts[1],
			WithUnused: parts[2],
		})
	}
	return nil
}

func unmarshalMeta(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return &types.MalformedDocumentError{Format: formatName, Reason: err.Error()}
	}
	return nil
}

// parseLinks decodes the line pairs of a Link block. A LinkPath
// without a following FullPath still yields a link.
func parseLinks(text string) []types.Link {
	var out []types.Link
	var rel string
	flush := func() {
		if rel != "" {
			out = append(out, types.Link{Path: rel})
			rel = ""
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "[LinkPath]("):
			flush()
			rel = unescapePath(strings.TrimSuffix(strings.TrimPrefix(line, "[LinkPath]("), ")"))
		case strings.HasPrefix(line, "[FullPath]("):
			full := strings.TrimSuffix(strings.TrimPrefix(line, "[FullPath]("), ")")
			full = unescapePath(strings.TrimPrefix(full, "file:///"))
			if rel != "" {
				out = append(out, types.Link{Path: rel, FullPath: full})
				rel = ""
			}
		}
	}
	flush()
	return out
}

// parseParagraphs splits a content block on paragraph breaks and
// parses each paragraph's inline markup.
func parseParagraphs(text string) []types.Paragraph {
	var out []types.Paragraph
	for _, chunk := range strings.Split(text, "\n\n") {
		if p := markup.ParseMarkdown(chunk); len(p) > 0 {
			out = append(out, p)
		}
	}
	return out
}
