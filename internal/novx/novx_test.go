// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package novx

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdnovx/pkg/types"
)

const sampleDocument = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE novx SYSTEM "novx_1_4.dtd">
<?xml-stylesheet href="novx.css" type="text/css"?>
<novx version="1.4">
  <PROJECT renumberChapters="1" saveWordCount="1" workPhase="2">
    <Title>Trial Balloon</Title>
    <Desc>
      <p>First paragraph.</p>
      <p>Second paragraph.</p>
    </Desc>
    <Author>A. Writer</Author>
    <ChapterHeadingPrefix>Chapter </ChapterHeadingPrefix>
    <WordCountStart>120</WordCountStart>
    <ReferenceDate>2024-03-01</ReferenceDate>
  </PROJECT>
  <CHAPTERS>
    <CHAPTER id="ch1" type="0" level="2">
      <Title>One</Title>
      <SECTION id="sc1" type="0" status="3" scene="2" append="1">
        <Title>Opening</Title>
        <Tags>dawn;cold;dawn</Tags>
        <Goal>
          <p>Get out.</p>
        </Goal>
        <PlotlineNotes id="ac1">
          <p>Arc kicks off here.</p>
        </PlotlineNotes>
        <Date>2024-03-02</Date>
        <Time>7:30</Time>
        <Characters ids="cr1 cr2"/>
        <Locations ids="lc1"/>
        <Content>
          <p>Plain <em>slanted</em> and <strong>heavy</strong> words.</p>
          <p><strong><em>All of it</em></strong> at once.<comment><p>drop me</p></comment></p>
          <p><span xml:lang="de">unwrapped</span> text<note id="fn1"><p>a footnote</p></note>.</p>
        </Content>
      </SECTION>
      <SECTION id="sc2" pacing="1">
        <Title>Legacy pacing</Title>
      </SECTION>
    </CHAPTER>
    <CHAPTER id="ch2" type="1" isTrash="1">
      <Title>Bin</Title>
    </CHAPTER>
  </CHAPTERS>
  <CHARACTERS>
    <CHARACTER id="cr1" major="1">
      <Title>Ana</Title>
      <FullName>Ana Moreau</FullName>
      <BirthDate>1990-07-14</BirthDate>
    </CHARACTER>
    <CHARACTER id="cr2">
      <Title>Ben</Title>
    </CHARACTER>
  </CHARACTERS>
  <LOCATIONS>
    <LOCATION id="lc1">
      <Title>Harbor</Title>
      <Aka>The docks</Aka>
    </LOCATION>
  </LOCATIONS>
  <ITEMS/>
  <ARCS>
    <ARC id="ac1">
      <Title>Main arc</Title>
      <ShortName>A</ShortName>
      <Sections ids="sc1"/>
      <POINT id="ap1">
        <Title>Inciting incident</Title>
        <Section id="sc1"/>
      </POINT>
    </ARC>
  </ARCS>
  <PROJECTNOTES>
    <PROJECTNOTE id="pn1">
      <Title>Remember the tide tables</Title>
    </PROJECTNOTE>
  </PROJECTNOTES>
  <PROGRESS>
    <WC>
      <Date>2024-03-01</Date>
      <Count>100</Count>
      <WithUnused>150</WithUnused>
    </WC>
  </PROGRESS>
</novx>
`

func TestReadSampleDocument(t *testing.T) {
	novel, err := Read(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, "Trial Balloon", novel.Title)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", novel.Desc)
	assert.Equal(t, "A. Writer", novel.AuthorName)
	assert.True(t, novel.RenumberChapters)
	assert.True(t, novel.SaveWordCount)
	assert.Equal(t, 2, novel.WorkPhase)
	assert.Equal(t, "Chapter ", novel.ChapterHeadingPrefix)
	assert.Equal(t, 120, novel.WordCountStart)
	assert.Equal(t, "2024-03-01", novel.ReferenceDate)

	require.Len(t, novel.Chapters, 2)
	ch := novel.Chapters[0]
	assert.Equal(t, types.ChapterNormal, ch.Type)
	assert.Equal(t, types.LevelChapter, ch.Level)
	require.Len(t, ch.Sections, 2)

	sc := ch.Sections[0]
	assert.Equal(t, "Opening", sc.Title)
	assert.Equal(t, []string{"dawn", "cold"}, sc.Tags, "tags are deduplicated")
	assert.Equal(t, 3, sc.Status)
	assert.Equal(t, 2, sc.Scene)
	assert.True(t, sc.AppendToPrev)
	assert.Equal(t, "Get out.", sc.Goal)
	assert.Equal(t, "2024-03-02", sc.Date)
	assert.Equal(t, "7:30:00", sc.Time)
	assert.Equal(t, []string{"cr1", "cr2"}, sc.Characters)
	assert.Equal(t, []string{"lc1"}, sc.Locations)
	require.Len(t, sc.PlotlineNotes, 1)
	assert.Equal(t, "ac1", sc.PlotlineNotes[0].PlotLineID)
	assert.Equal(t, "Arc kicks off here.", sc.PlotlineNotes[0].Text)

	require.Len(t, sc.Content, 3)
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
	}, sc.Content[1], "comment subtree is dropped")
	assert.Equal(t, types.Paragraph{
		{Text: "unwrapped text."},
	}, sc.Content[2], "span is unwrapped and the footnote dropped")

	assert.Equal(t, 2, ch.Sections[1].Scene, "pacing 1 upgrades to the action scene kind")

	trash := novel.Chapters[1]
	assert.True(t, trash.IsTrash)
	assert.Equal(t, types.ChapterUnused, trash.Type)

	require.Len(t, novel.Characters, 2)
	assert.True(t, novel.Characters[0].IsMajor)
	assert.Equal(t, "Ana Moreau", novel.Characters[0].FullName)
	assert.Equal(t, "1990-07-14", novel.Characters[0].BirthDate)

	require.Len(t, novel.Locations, 1)
	assert.Equal(t, "The docks", novel.Locations[0].AKA)
	assert.Empty(t, novel.Items)

	require.Len(t, novel.PlotLines, 1)
	pl := novel.PlotLines[0]
	assert.Equal(t, "A", pl.ShortName)
	assert.Equal(t, []string{"sc1"}, pl.Sections)
	require.Len(t, pl.PlotPoints, 1)
	assert.Equal(t, "sc1", pl.PlotPoints[0].SectionAssoc)

	require.Len(t, novel.ProjectNotes, 1)
	require.Len(t, novel.WordCountLog, 1)
	assert.Equal(t, "100", novel.WordCountLog[0].Count)
}

func TestReadVersionGate(t *testing.T) {
	tests := []struct {
		name    string
		version string
		reason  string
	}{
		{name: "newer major", version: "2.0", reason: "newer"},
		{name: "older major", version: "0.7", reason: "outdated"},
		{name: "newer minor", version: "1.5", reason: "newer"},
		{name: "garbage", version: "abc", reason: "no valid version"},
		{name: "missing dot", version: "1", reason: "no valid version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<novx version="` + tt.version + `"><PROJECT><Title>T</Title></PROJECT></novx>`
			_, err := Read(strings.NewReader(doc))
			var malformed *types.MalformedDocumentError
			require.ErrorAs(t, err, &malformed)
			assert.Contains(t, malformed.Reason, tt.reason)
		})
	}
}

func TestReadRejectsBrokenInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not xml", doc: "@@book\n"},
		{name: "truncated", doc: `<novx version="1.4"><PROJECT>`},
		{name: "no title", doc: `<novx version="1.4"><PROJECT></PROJECT></novx>`},
		{name: "no project", doc: `<novx version="1.4"></novx>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc))
			var malformed *types.MalformedDocumentError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestReadClampsOutOfRangeAttributes(t *testing.T) {
	doc := `<novx version="1.4">
  <PROJECT><Title>T</Title></PROJECT>
  <CHAPTERS>
    <CHAPTER id="ch1" type="9" level="3">
      <SECTION id="sc1" type="7" status="9" scene="8"/>
    </CHAPTER>
  </CHAPTERS>
</novx>`
	novel, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	ch := novel.Chapters[0]
	assert.Equal(t, types.ChapterUnused, ch.Type)
	assert.Equal(t, types.LevelChapter, ch.Level)
	sc := ch.Sections[0]
	assert.Equal(t, types.SectionUnused, sc.Type)
	assert.Equal(t, 1, sc.Status)
	assert.Equal(t, 0, sc.Scene)
}

func TestReadDropsDanglingReferences(t *testing.T) {
	doc := `<novx version="1.4">
  <PROJECT><Title>T</Title></PROJECT>
  <CHAPTERS>
    <CHAPTER id="ch1" type="0" level="2">
      <SECTION id="sc1" type="0">
        <PlotlineNotes id="ac9"><p>orphan</p></PlotlineNotes>
        <Characters ids="cr1 cr9"/>
      </SECTION>
    </CHAPTER>
  </CHAPTERS>
  <CHARACTERS><CHARACTER id="cr1"><Title>Ana</Title></CHARACTER></CHARACTERS>
  <ARCS>
    <ARC id="ac1"><Sections ids="sc1 sc9"/>
      <POINT id="ap1"><Section id="sc9"/></POINT>
    </ARC>
  </ARCS>
</novx>`
	novel, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	sc := novel.Chapters[0].Sections[0]
	assert.Equal(t, []string{"cr1"}, sc.Characters)
	assert.Empty(t, sc.PlotlineNotes, "note for an arc that does not list the section")
	pl := novel.PlotLines[0]
	assert.Equal(t, []string{"sc1"}, pl.Sections)
	assert.Empty(t, pl.PlotPoints[0].SectionAssoc)
}

func TestWriteRequiresTitle(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, &types.Novel{})
	var serr *types.SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "novx", serr.Format)
	assert.Zero(t, buf.Len(), "nothing written on failure")
}

func TestWriteEmitsHeaderAndBranches(t *testing.T) {
	novel := &types.Novel{}
	novel.Title = "T"
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, novel))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, xmlHeader))
	for _, branch := range []string{"<CHAPTERS>", "<CHARACTERS>", "<LOCATIONS>", "<ITEMS>", "<ARCS>", "<PROJECTNOTES>"} {
		assert.Contains(t, out, branch, "empty branches still present")
	}
	assert.NotContains(t, out, "<PROGRESS>", "no progress branch without log entries")
}

func TestWriteOmitsDefaultAttributes(t *testing.T) {
	novel := &types.Novel{}
	novel.Title = "T"
	novel.Chapters = []*types.Chapter{
		{
			Element: types.Element{ID: "ch1"},
			Level:   types.LevelChapter,
			Sections: []*types.Section{{
				Element: types.Element{ID: "sc1"},
				Status:  1,
			}},
		},
		{
			Element: types.Element{ID: "ch2"},
			Type:    types.ChapterUnused,
			Level:   types.LevelPart,
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, novel))
	out := buf.String()

	assert.Contains(t, out, `<CHAPTER id="ch1">`, "default type and level carry no attributes")
	assert.Contains(t, out, `<SECTION id="sc1">`, "default type and status carry no attributes")
	assert.Contains(t, out, `<CHAPTER id="ch2" type="1" level="1">`)
	assert.NotContains(t, out, `type="0"`)
	assert.NotContains(t, out, `level="2"`)
	assert.NotContains(t, out, `status="1"`)
}

func TestWriteEscapesProse(t *testing.T) {
	novel := &types.Novel{}
	novel.Title = "T"
	novel.Chapters = []*types.Chapter{{
		Element: types.Element{ID: "ch1"},
		Level:   types.LevelChapter,
		Sections: []*types.Section{{
			Element: types.Element{ID: "sc1"},
			Status:  1,
			Content: []types.Paragraph{
				{{Text: "a < b & c > d"}},
			},
		}},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, novel))
	assert.Contains(t, buf.String(), "<p>a &lt; b &amp; c &gt; d</p>")
}

func TestRoundTrip(t *testing.T) {
	novel, err := Read(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	novel.SaveWordCount = false

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, novel))

	again, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	again.SaveWordCount = false
	assert.Equal(t, novel, again)
}

func TestWriteSnapshotsWordCount(t *testing.T) {
	novel := &types.Novel{SaveWordCount: true}
	novel.Title = "T"
	novel.Chapters = []*types.Chapter{{
		Element: types.Element{ID: "ch1"},
		Level:   types.LevelChapter,
		Sections: []*types.Section{{
			Element: types.Element{ID: "sc1"},
			Status:  1,
			Content: []types.Paragraph{{{Text: "four words right here"}}},
		}},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, novel))
	out := buf.String()
	assert.Contains(t, out, "<PROGRESS>")
	assert.Contains(t, out, "<Count>4</Count>")
}

func TestReadWrapsUnderlyingReaderErrors(t *testing.T) {
	_, err := Read(failingReader{})
	require.Error(t, err)
	var malformed *types.MalformedDocumentError
	assert.False(t, errors.As(err, &malformed), "I/O failure is not a document error")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}
