// Package formatter turns the free-form requirement text produced by the
// RFP analysis into titled, collapsible sections.
//
// The split is purely textual. Nothing is escaped or sanitised here;
// renderers decide how to treat the text.
//
// A line starts a new section when, after trimming, it matches one of
// these patterns, checked in order:
//
//  1. "<integer>. <Capital letter>..."     e.g. "2. Technical Requirements"
//  2. a line fully wrapped in emphasis     e.g. "**Evaluation Criteria**"
//     markers (**, __ or *) whose text
//     starts with a capital letter
//  3. "<Capital-led words>:"               e.g. "Key Deliverables:"
//
// Within a section body, lines starting with "-", "•", "*" or
// "<integer>. " are list items and consecutive items form one list; other
// text forms paragraphs separated by blank lines. A body without any list
// item becomes a single paragraph. Input without a single heading is
// returned unsectioned so no text is ever dropped.
package formatter

import (
	"regexp"
	"strings"
)

// BlockKind identifies the kind of a body block.
type BlockKind int

const (
	// BlockParagraph is running text.
	BlockParagraph BlockKind = iota
	// BlockList is a run of consecutive list items.
	BlockList
)

// String returns the kind's name.
func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockList:
		return "list"
	default:
		return "unknown"
	}
}

// Block is one paragraph or list within a section body.
type Block struct {
	Kind  BlockKind
	Text  string   // paragraph text, empty for lists
	Items []string // list items, nil for paragraphs
}

// Section is a titled group of blocks. Title is empty for text that came
// before the first heading.
type Section struct {
	Title  string
	Blocks []Block
}

// Document is the formatted result.
type Document struct {
	Sections []Section
	// Unsectioned is set when no heading was found; Raw then holds the
	// trimmed input and Sections is empty.
	Unsectioned bool
	Raw         string
}

// Empty reports whether there is nothing to show.
func (d Document) Empty() bool {
	return len(d.Sections) == 0 && d.Raw == ""
}

var (
	numberedHeading = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	emphasisHeading = regexp.MustCompile(`^(\*\*|__|\*)([A-Z].*?)(\*\*|__|\*)$`)
	colonHeading    = regexp.MustCompile(`^[A-Z][A-Za-z0-9 &/()',-]*:$`)

	headingNumber = regexp.MustCompile(`^\d+\.\s+`)
	listItem      = regexp.MustCompile(`^(?:[-•*]|\d+\.)\s+(.*)$`)
)

// IsHeading reports whether a trimmed line opens a new section.
func IsHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if numberedHeading.MatchString(line) {
		return true
	}
	if m := emphasisHeading.FindStringSubmatch(line); m != nil && m[1] == m[3] {
		return true
	}
	return colonHeading.MatchString(line)
}

// headingTitle strips numbering, emphasis markers and a trailing colon.
func headingTitle(line string) string {
	title := strings.TrimSpace(line)
	title = headingNumber.ReplaceAllString(title, "")
	for _, marker := range []string{"**", "__", "*"} {
		if len(title) > 2*len(marker) && strings.HasPrefix(title, marker) && strings.HasSuffix(title, marker) {
			title = title[len(marker) : len(title)-len(marker)]
			break
		}
	}
	title = strings.TrimSuffix(strings.TrimSpace(title), ":")
	return strings.TrimSpace(title)
}

// Format splits text into sections.
func Format(text string) Document {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	type rawSection struct {
		title string
		body  []string
	}

	var (
		sections []rawSection
		current  *rawSection
		found    bool
	)
	for _, line := range lines {
		if IsHeading(line) {
			found = true
			sections = append(sections, rawSection{title: headingTitle(line)})
			current = &sections[len(sections)-1]
			continue
		}
		if current == nil {
			sections = append(sections, rawSection{})
			current = &sections[len(sections)-1]
		}
		current.body = append(current.body, line)
	}

	if !found {
		return Document{Unsectioned: true, Raw: strings.TrimSpace(text)}
	}

	doc := Document{Sections: make([]Section, 0, len(sections))}
	for _, rs := range sections {
		blocks := formatBody(rs.body)
		if rs.title == "" && len(blocks) == 0 {
			// Blank preamble before the first heading.
			continue
		}
		doc.Sections = append(doc.Sections, Section{Title: rs.title, Blocks: blocks})
	}
	return doc
}

// formatBody groups body lines into paragraphs and lists.
func formatBody(lines []string) []Block {
	hasItems := false
	for _, line := range lines {
		if listItem.MatchString(strings.TrimSpace(line)) {
			hasItems = true
			break
		}
	}
	if !hasItems {
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if text == "" {
			return nil
		}
		return []Block{{Kind: BlockParagraph, Text: text}}
	}

	var (
		blocks []Block
		para   []string
		items  []string
	)
	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, Block{Kind: BlockParagraph, Text: strings.Join(para, " ")})
			para = nil
		}
	}
	flushList := func() {
		if len(items) > 0 {
			blocks = append(blocks, Block{Kind: BlockList, Items: items})
			items = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flushPara()
			flushList()
		case listItem.MatchString(trimmed):
			flushPara()
			items = append(items, strings.TrimSpace(listItem.FindStringSubmatch(trimmed)[1]))
		default:
			flushList()
			para = append(para, trimmed)
		}
	}
	flushPara()
	flushList()
	return blocks
}
