// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package novx

import "encoding/xml"

// The xml* structs mirror the document tree one-to-one. Field order
// matters: encoding/xml marshals struct fields in declaration order,
// and the order here reproduces the element order novelibre writes.
// All scalar values stay strings at this layer; interpretation and
// clamping happen in the reader.

type xmlDocument struct {
	XMLName      xml.Name        `xml:"novx"`
	Version      string          `xml:"version,attr"`
	Project      *xmlProject     `xml:"PROJECT"`
	Chapters     xmlChapters     `xml:"CHAPTERS"`
	Characters   xmlCharacters   `xml:"CHARACTERS"`
	Locations    xmlLocations    `xml:"LOCATIONS"`
	Items        xmlItems        `xml:"ITEMS"`
	PlotLines    xmlPlotLines    `xml:"ARCS"`
	ProjectNotes xmlProjectNotes `xml:"PROJECTNOTES"`
	Progress     *xmlProgress    `xml:"PROGRESS"`
}

// Branch wrappers keep empty branches present in the output, matching
// documents that always carry all seven top-level elements.

type xmlChapters struct {
	Chapters []xmlChapter `xml:"CHAPTER"`
}

type xmlCharacters struct {
	Characters []xmlCharacter `xml:"CHARACTER"`
}

type xmlLocations struct {
	Locations []xmlWorldElement `xml:"LOCATION"`
}

type xmlItems struct {
	Items []xmlWorldElement `xml:"ITEM"`
}

type xmlPlotLines struct {
	PlotLines []xmlPlotLine `xml:"ARC"`
}

type xmlProjectNotes struct {
	Notes []xmlProjectNote `xml:"PROJECTNOTE"`
}

type xmlProgress struct {
	Entries []xmlWC `xml:"WC"`
}

type xmlWC struct {
	Date       string `xml:"Date"`
	Count      string `xml:"Count"`
	WithUnused string `xml:"WithUnused"`
}

type xmlProject struct {
	RenumberChapters    string `xml:"renumberChapters,attr,omitempty"`
	RenumberParts       string `xml:"renumberParts,attr,omitempty"`
	RenumberWithinParts string `xml:"renumberWithinParts,attr,omitempty"`
	RomanChapterNumbers string `xml:"romanChapterNumbers,attr,omitempty"`
	RomanPartNumbers    string `xml:"romanPartNumbers,attr,omitempty"`
	SaveWordCount       string `xml:"saveWordCount,attr,omitempty"`
	WorkPhase           string `xml:"workPhase,attr,omitempty"`

	Title                  string    `xml:"Title,omitempty"`
	Desc                   *xmlText  `xml:"Desc"`
	Links                  []xmlLink `xml:"Link"`
	Author                 string    `xml:"Author,omitempty"`
	ChapterHeadingPrefix   string    `xml:"ChapterHeadingPrefix,omitempty"`
	ChapterHeadingSuffix   string    `xml:"ChapterHeadingSuffix,omitempty"`
	PartHeadingPrefix      string    `xml:"PartHeadingPrefix,omitempty"`
	PartHeadingSuffix      string    `xml:"PartHeadingSuffix,omitempty"`
	CustomPlotProgress     string    `xml:"CustomPlotProgress,omitempty"`
	CustomCharacterization string    `xml:"CustomCharacterization,omitempty"`
	CustomWorldBuilding    string    `xml:"CustomWorldBuilding,omitempty"`
	CustomGoal             string    `xml:"CustomGoal,omitempty"`
	CustomConflict         string    `xml:"CustomConflict,omitempty"`
	CustomOutcome          string    `xml:"CustomOutcome,omitempty"`
	CustomChrBio           string    `xml:"CustomChrBio,omitempty"`
	CustomChrGoals         string    `xml:"CustomChrGoals,omitempty"`
	WordCountStart         string    `xml:"WordCountStart,omitempty"`
	WordTarget             string    `xml:"WordTarget,omitempty"`
	ReferenceDate          string    `xml:"ReferenceDate,omitempty"`
}

// xmlText is a multi-paragraph plain-text element: one p child per
// paragraph, no inline styling.
type xmlText struct {
	Paragraphs []string `xml:"p"`
}

// xmlLink carries both spellings found in the wild: Path/FullPath
// child elements and path/fullPath attributes. The writer emits child
// elements only.
type xmlLink struct {
	PathAttr     string `xml:"path,attr,omitempty"`
	FullPathAttr string `xml:"fullPath,attr,omitempty"`
	Path         string `xml:"Path,omitempty"`
	FullPath     string `xml:"FullPath,omitempty"`
}

type xmlChapter struct {
	ID       string `xml:"id,attr"`
	Type     string `xml:"type,attr,omitempty"`
	Level    string `xml:"level,attr,omitempty"`
	IsTrash  string `xml:"isTrash,attr,omitempty"`
	NoNumber string `xml:"noNumber,attr,omitempty"`

	Title    string       `xml:"Title,omitempty"`
	Desc     *xmlText     `xml:"Desc"`
	Links    []xmlLink    `xml:"Link"`
	Notes    *xmlText     `xml:"Notes"`
	Sections []xmlSection `xml:"SECTION"`
}

type xmlSection struct {
	ID     string `xml:"id,attr"`
	Type   string `xml:"type,attr,omitempty"`
	Status string `xml:"status,attr,omitempty"`
	Scene  string `xml:"scene,attr,omitempty"`
	// Pacing is the pre-1.4 spelling of the scene kind; read only.
	Pacing string `xml:"pacing,attr,omitempty"`
	Append string `xml:"append,attr,omitempty"`

	Title         string             `xml:"Title,omitempty"`
	Desc          *xmlText           `xml:"Desc"`
	Links         []xmlLink          `xml:"Link"`
	Notes         *xmlText           `xml:"Notes"`
	Tags          string             `xml:"Tags,omitempty"`
	Goal          *xmlText           `xml:"Goal"`
	Conflict      *xmlText           `xml:"Conflict"`
	Outcome       *xmlText           `xml:"Outcome"`
	PlotlineNotes []xmlPlotlineNotes `xml:"PlotlineNotes"`
	// PlotNotes is the pre-1.4 wrapper around plotline notes; read only.
	PlotNotes    *xmlPlotNotes `xml:"PlotNotes"`
	Date         string        `xml:"Date,omitempty"`
	Day          string        `xml:"Day,omitempty"`
	Time         string        `xml:"Time,omitempty"`
	LastsDays    string        `xml:"LastsDays,omitempty"`
	LastsHours   string        `xml:"LastsHours,omitempty"`
	LastsMinutes string        `xml:"LastsMinutes,omitempty"`
	Characters   *xmlIDList    `xml:"Characters"`
	Locations    *xmlIDList    `xml:"Locations"`
	Items        *xmlIDList    `xml:"Items"`
	Content      *xmlContent   `xml:"Content"`
}

// xmlIDList is a space-separated ID list kept in an attribute.
type xmlIDList struct {
	IDs string `xml:"ids,attr"`
}

// xmlContent captures section prose verbatim; the content codec
// decodes and encodes the inline tree.
type xmlContent struct {
	Inner string `xml:",innerxml"`
}

type xmlPlotlineNotes struct {
	ID         string   `xml:"id,attr"`
	Paragraphs []string `xml:"p"`
}

type xmlPlotNotes struct {
	Notes []xmlPlotlineNotes `xml:"PlotlineNotes"`
}

type xmlCharacter struct {
	ID    string `xml:"id,attr"`
	Major string `xml:"major,attr,omitempty"`

	Title     string    `xml:"Title,omitempty"`
	Desc      *xmlText  `xml:"Desc"`
	Links     []xmlLink `xml:"Link"`
	Notes     *xmlText  `xml:"Notes"`
	Tags      string    `xml:"Tags,omitempty"`
	Aka       string    `xml:"Aka,omitempty"`
	FullName  string    `xml:"FullName,omitempty"`
	Bio       *xmlText  `xml:"Bio"`
	Goals     *xmlText  `xml:"Goals"`
	BirthDate string    `xml:"BirthDate,omitempty"`
	DeathDate string    `xml:"DeathDate,omitempty"`
}

type xmlWorldElement struct {
	ID string `xml:"id,attr"`

	Title string    `xml:"Title,omitempty"`
	Desc  *xmlText  `xml:"Desc"`
	Links []xmlLink `xml:"Link"`
	Notes *xmlText  `xml:"Notes"`
	Tags  string    `xml:"Tags,omitempty"`
	Aka   string    `xml:"Aka,omitempty"`
}

type xmlPlotLine struct {
	ID string `xml:"id,attr"`

	Title     string         `xml:"Title,omitempty"`
	Desc      *xmlText       `xml:"Desc"`
	Links     []xmlLink      `xml:"Link"`
	Notes     *xmlText       `xml:"Notes"`
	ShortName string         `xml:"ShortName,omitempty"`
	Sections  *xmlIDList     `xml:"Sections"`
	Points    []xmlPlotPoint `xml:"POINT"`
}

type xmlPlotPoint struct {
	ID string `xml:"id,attr"`

	Title string    `xml:"Title,omitempty"`
	Desc  *xmlText  `xml:"Desc"`
	Links []xmlLink `xml:"Link"`
	Notes *xmlText  `xml:"Notes"`
	// Section is the associated section, kept by reference.
	Section *xmlSectionRef `xml:"Section"`
}

type xmlSectionRef struct {
	ID string `xml:"id,attr"`
}

type xmlProjectNote struct {
	ID string `xml:"id,attr"`

	Title string    `xml:"Title,omitempty"`
	Desc  *xmlText  `xml:"Desc"`
	Links []xmlLink `xml:"Link"`
}
