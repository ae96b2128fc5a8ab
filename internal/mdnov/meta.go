// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdnov

import "go.yaml.in/yaml/v3"

// Metadata blocks are real YAML mappings. One struct per element kind;
// field order here is the emission order. Flags are the integer 1,
// never true, so the blocks stay interchangeable with other tools
// reading them as plain key-value lines.

// quoted is a string that always marshals double-quoted. Heading
// prefixes and suffixes carry significant leading or trailing spaces
// that a plain scalar would lose.
type quoted string

func (q quoted) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.DoubleQuotedStyle,
		Value: string(q),
	}, nil
}

func (q *quoted) UnmarshalYAML(value *yaml.Node) error {
	*q = quoted(value.Value)
	return nil
}

type bookMeta struct {
	Title                  string `yaml:"Title,omitempty"`
	RenumberChapters       int    `yaml:"renumberChapters,omitempty"`
	RenumberParts          int    `yaml:"renumberParts,omitempty"`
	RenumberWithinParts    int    `yaml:"renumberWithinParts,omitempty"`
	RomanChapterNumbers    int    `yaml:"romanChapterNumbers,omitempty"`
	RomanPartNumbers       int    `yaml:"romanPartNumbers,omitempty"`
	SaveWordCount          int    `yaml:"saveWordCount,omitempty"`
	WorkPhase              int    `yaml:"workPhase,omitempty"`
	Author                 string `yaml:"Author,omitempty"`
	ChapterHeadingPrefix   quoted `yaml:"ChapterHeadingPrefix,omitempty"`
	ChapterHeadingSuffix   quoted `yaml:"ChapterHeadingSuffix,omitempty"`
	PartHeadingPrefix      quoted `yaml:"PartHeadingPrefix,omitempty"`
	PartHeadingSuffix      quoted `yaml:"PartHeadingSuffix,omitempty"`
	CustomPlotProgress     string `yaml:"CustomPlotProgress,omitempty"`
	CustomCharacterization string `yaml:"CustomCharacterization,omitempty"`
	CustomWorldBuilding    string `yaml:"CustomWorldBuilding,omitempty"`
	CustomGoal             string `yaml:"CustomGoal,omitempty"`
	CustomConflict         string `yaml:"CustomConflict,omitempty"`
	CustomOutcome          string `yaml:"CustomOutcome,omitempty"`
	CustomChrBio           string `yaml:"CustomChrBio,omitempty"`
	CustomChrGoals         string `yaml:"CustomChrGoals,omitempty"`
	WordCountStart         int    `yaml:"WordCountStart,omitempty"`
	WordTarget             int    `yaml:"WordTarget,omitempty"`
	ReferenceDate          string `yaml:"ReferenceDate,omitempty"`
}

type chapterMeta struct {
	Title    string `yaml:"Title,omitempty"`
	Type     int    `yaml:"type,omitempty"`
	Level    int    `yaml:"level,omitempty"`
	IsTrash  int    `yaml:"isTrash,omitempty"`
	NoNumber int    `yaml:"noNumber,omitempty"`
}

type sectionMeta struct {
	Title        string `yaml:"Title,omitempty"`
	Tags         string `yaml:"Tags,omitempty"`
	Type         int    `yaml:"type,omitempty"`
	Status       int    `yaml:"status,omitempty"`
	Scene        int    `yaml:"scene,omitempty"`
	Pacing       int    `yaml:"pacing,omitempty"`
	Append       int    `yaml:"append,omitempty"`
	Date         string `yaml:"Date,omitempty"`
	Day          string `yaml:"Day,omitempty"`
	Time         string `yaml:"Time,omitempty"`
	LastsDays    string `yaml:"LastsDays,omitempty"`
	LastsHours   string `yaml:"LastsHours,omitempty"`
	LastsMinutes string `yaml:"LastsMinutes,omitempty"`
	Characters   string `yaml:"Characters,omitempty"`
	Locations    string `yaml:"Locations,omitempty"`
	Items        string `yaml:"Items,omitempty"`
}

type characterMeta struct {
	Title     string `yaml:"Title,omitempty"`
	Tags      string `yaml:"Tags,omitempty"`
	Aka       string `yaml:"Aka,omitempty"`
	Major     int    `yaml:"major,omitempty"`
	FullName  string `yaml:"FullName,omitempty"`
	BirthDate string `yaml:"BirthDate,omitempty"`
	DeathDate string `yaml:"DeathDate,omitempty"`
}

type worldMeta struct {
	Title string `yaml:"Title,omitempty"`
	Tags  string `yaml:"Tags,omitempty"`
	Aka   string `yaml:"Aka,omitempty"`
}

type plotLineMeta struct {
	Title     string `yaml:"Title,omitempty"`
	ShortName string `yaml:"ShortName,omitempty"`
	Sections  string `yaml:"Sections,omitempty"`
}

type plotPointMeta struct {
	Title   string `yaml:"Title,omitempty"`
	Section string `yaml:"Section,omitempty"`
}

type noteMeta struct {
	Title string `yaml:"Title,omitempty"`
}
