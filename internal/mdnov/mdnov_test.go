// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdnov

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdnovx/pkg/types"
)

const sampleDocument = `@@book

---
Title: Trial Balloon
renumberChapters: 1
workPhase: 2
Author: A. Writer
ChapterHeadingPrefix: "Chapter "
WordCountStart: 120
ReferenceDate: 2024-03-01
---

%%Desc:

First paragraph.

Second paragraph.

%%

@@ch1

---
Title: One
---

%%

@@sc1

---
Title: Opening
Tags: dawn;cold
status: 3
scene: 2
append: 1
Date: 2024-03-02
Time: 7:30
Characters: cr1;cr2
Locations: lc1
---

%%Link:

[LinkPath](notes/scene%20one.md)

[FullPath](file:///home/me/notes/scene%20one.md)

%%Goal:

Get out.

%%Plotline:

ac1

%%Plotline note:

Arc kicks off here.

%%Content:

Plain *slanted* and **heavy** words.

***All of it*** at once.

%%

@@cr1

---
Title: Ana
major: 1
FullName: Ana Moreau
BirthDate: 1990-07-14
---

%%Bio:

Raised by the sea.

%%

@@cr2

---
Title: Ben
---

%%

@@lc1

---
Title: Harbor
Aka: The docks
---

%%

@@ac1

---
Title: Main arc
ShortName: A
Sections: sc1
---

%%

@@ap1

---
Title: Inciting incident
Section: sc1
---

%%

@@pn1

---
Title: Remember the tide tables
---

%%


@@Progress
- 2024-03-01;100;150

%%
`

func TestReadSampleDocument(t *testing.T) {
	novel, err := Read(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, "Trial Balloon", novel.Title)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", novel.Desc)
	assert.Equal(t, "A. Writer", novel.AuthorName)
	assert.True(t, novel.RenumberChapters)
	assert.Equal(t, 2, novel.WorkPhase)
	assert.Equal(t, "Chapter ", novel.ChapterHeadingPrefix, "quoted prefix keeps its trailing space")
	assert.Equal(t, 120, novel.WordCountStart)
	assert.Equal(t, "2024-03-01", novel.ReferenceDate)

	require.Len(t, novel.Chapters, 1)
	ch := novel.Chapters[0]
	assert.Equal(t, "One", ch.Title)
	assert.Equal(t, types.LevelChapter, ch.Level)

	require.Len(t, ch.Sections, 1)
	sc := ch.Sections[0]
	assert.Equal(t, "Opening", sc.Title)
	assert.Equal(t, []string{"dawn", "cold"}, sc.Tags)
	assert.Equal(t, 3, sc.Status)
	assert.Equal(t, 2, sc.Scene)
	assert.True(t, sc.AppendToPrev)
	assert.Equal(t, "2024-03-02", sc.Date)
	assert.Equal(t, "7:30:00", sc.Time)
	assert.Equal(t, []string{"cr1", "cr2"}, sc.Characters)
	assert.Equal(t, "Get out.", sc.Goal)
	assert.Equal(t, []types.Link{{
		Path:     "notes/scene one.md",
		FullPath: "home/me/notes/scene one.md",
	}}, sc.Links)
	require.Len(t, sc.PlotlineNotes, 1)
	assert.Equal(t, "ac1", sc.PlotlineNotes[0].PlotLineID)
	assert.Equal(t, "Arc kicks off here.", sc.PlotlineNotes[0].Text)

	require.Len(t, sc.Content, 2)
	assert.Equal(t, types.Paragraph{
		{Text: "Plain "},
		{Text: "slanted", Style: types.StyleItalic},
		{Text: " and "},
		{Text: "heavy", Style: types.StyleBold},
		{Text: " words."},
	}, sc.Content[0])
	assert.Equal(t, types.Paragraph{
		{Text: "All of it", Style: types.StyleBoldItalic},
		{Text: " at once."},
	}, sc.Content[1])

	require.Len(t, novel.Characters, 2)
	assert.True(t, novel.Characters[0].IsMajor)
	assert.Equal(t, "Ana Moreau", novel.Characters[0].FullName)
	assert.Equal(t, "Raised by the sea.", novel.Characters[0].Bio)

	require.Len(t, novel.Locations, 1)
	assert.Equal(t, "The docks", novel.Locations[0].AKA)

	require.Len(t, novel.PlotLines, 1)
	pl := novel.PlotLines[0]
	assert.Equal(t, "A", pl.ShortName)
	assert.Equal(t, []string{"sc1"}, pl.Sections)
	require.Len(t, pl.PlotPoints, 1)
	assert.Equal(t, "sc1", pl.PlotPoints[0].SectionAssoc)

	require.Len(t, novel.ProjectNotes, 1)
	require.Len(t, novel.WordCountLog, 1)
	assert.Equal(t, types.WordCount{Date: "2024-03-01", Count: "100", WithUnused: "150"}, novel.WordCountLog[0])
}

func TestReadRejectsBrokenInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty", doc: ""},
		{name: "xml input", doc: `<novx version="1.4"><PROJECT><Title>T</Title></PROJECT></novx>`},
		{name: "no book title", doc: "@@book\n\n---\nAuthor: A\n---\n\n%%\n"},
		{name: "broken yaml", doc: "@@book\n\n---\nTitle: [unclosed\n---\n\n%%\n"},
		{name: "section outside chapter", doc: "@@book\n\n---\nTitle: T\n---\n\n%%\n\n@@sc1\n\n---\nTitle: S\n---\n\n%%\n"},
		{name: "plot point outside plot line", doc: "@@book\n\n---\nTitle: T\n---\n\n%%\n\n@@ap1\n\n---\nTitle: P\n---\n\n%%\n"},
		{name: "bad progress row", doc: "@@book\n\n---\nTitle: T\n---\n\n%%\n\n@@Progress\n- 2024-03-01;100\n\n%%\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			var malformed *types.MalformedDocumentError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, "mdnov", malformed.Format)
		})
	}
}

func TestReadClampsMetadata(t *testing.T) {
	doc := `@@book

---
Title: T
workPhase: 9
---

%%

@@ch1

---
type: 5
---

%%

@@sc1

---
type: 7
status: 9
scene: 8
Date: not-a-date
Day: 3
Time: 25:99
---

%%
`
	novel, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Zero(t, novel.WorkPhase)
	ch := novel.Chapters[0]
	assert.Equal(t, types.ChapterUnused, ch.Type)
	sc := ch.Sections[0]
	assert.Equal(t, types.SectionUnused, sc.Type)
	assert.Equal(t, 1, sc.Status)
	assert.Zero(t, sc.Scene)
	assert.Empty(t, sc.Date)
	assert.Equal(t, "3", sc.Day, "day applies when the date is dropped")
	assert.Empty(t, sc.Time)
}

func TestReadUpgradesLegacyPacing(t *testing.T) {
	doc := "@@book\n\n---\nTitle: T\n---\n\n%%\n\n@@ch1\n\n---\nTitle: C\n---\n\n%%\n\n@@sc1\n\n---\npacing: 1\n---\n\n%%\n"
	novel, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, novel.Chapters[0].Sections[0].Scene)
}

func TestWriteRequiresTitle(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, &types.Novel{})
	var serr *types.SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "mdnov", serr.Format)
	assert.Zero(t, buf.Len())
}

func TestWriteSanitizesProse(t *testing.T) {
	novel := &types.Novel{}
	novel.Title = "T"
	novel.Desc = "before\n---\nafter with @@ and %% markers"
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, novel))
	out := buf.String()
	assert.Contains(t, out, "before\n\n???\n\nafter with ?? and ?? markers")
}

func TestWriteOmitsEmptyFooter(t *testing.T) {
	novel := &types.Novel{}
	novel.Title = "T"
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, novel))
	assert.NotContains(t, buf.String(), "@@Progress")
}

func TestRoundTrip(t *testing.T) {
	novel, err := Read(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, novel))

	again, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, novel, again)
}

func TestSanitizeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "fence defused", in: "a\n----\nb", want: "a\n\n???-\n\nb"},
		{name: "markers defused", in: "x @@ y %% z", want: "x ?? y ?? z"},
		{name: "blank lines collapse", in: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "edges trimmed", in: "\n a \n", want: "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeMarkdown(tt.in))
		})
	}
}

func TestParseLinksKeepsRelativeOnlyEntries(t *testing.T) {
	text := "[LinkPath](a.md)\n[LinkPath](b.md)\n[FullPath](file:///abs/b.md)"
	assert.Equal(t, []types.Link{
		{Path: "a.md"},
		{Path: "b.md", FullPath: "abs/b.md"},
	}, parseLinks(text))
}
