package formatter

import (
	"reflect"
	"testing"
)

func TestFormat_ScopeWithListAndParagraph(t *testing.T) {
	doc := Format("1. Scope\n- item A\n- item B\n\nFollow-up text")

	if doc.Unsectioned {
		t.Fatal("expected sectioned output")
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(doc.Sections))
	}

	want := Section{
		Title: "Scope",
		Blocks: []Block{
			{Kind: BlockList, Items: []string{"item A", "item B"}},
			{Kind: BlockParagraph, Text: "Follow-up text"},
		},
	}
	if !reflect.DeepEqual(doc.Sections[0], want) {
		t.Errorf("Sections[0] = %+v, want %+v", doc.Sections[0], want)
	}
}

func TestFormat_NoHeadingReturnsTrimmedInput(t *testing.T) {
	input := "\n  The vendor shall provide support.\n- maybe a bullet\n\n"
	doc := Format(input)

	if !doc.Unsectioned {
		t.Fatal("expected unsectioned output")
	}
	if len(doc.Sections) != 0 {
		t.Errorf("len(Sections) = %d, want 0", len(doc.Sections))
	}
	want := "The vendor shall provide support.\n- maybe a bullet"
	if doc.Raw != want {
		t.Errorf("Raw = %q, want %q", doc.Raw, want)
	}
}

func TestFormat_EmptyInput(t *testing.T) {
	doc := Format("   ")
	if !doc.Empty() {
		t.Errorf("Format(blank) = %+v, want empty", doc)
	}
}

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"1. Scope", true},
		{"12.   Evaluation Criteria", true},
		{"1. lowercase item", false},
		{"**Evaluation Criteria**", true},
		{"__Timeline__", true},
		{"*Budget*", true},
		{"**lower case**", false},
		{"**Mixed*", false},
		{"Key Deliverables:", true},
		{"Submission Requirements (Phase 1):", true},
		{"Note: this is text", false},
		{"lowercase words:", false},
		{"- bullet", false},
		{"* Bullet with star", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := IsHeading(tt.line); got != tt.want {
				t.Errorf("IsHeading(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestHeadingTitle(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"1. Scope", "Scope"},
		{"  3.  Project Overview  ", "Project Overview"},
		{"**Evaluation Criteria**", "Evaluation Criteria"},
		{"*Budget*", "Budget"},
		{"Key Deliverables:", "Key Deliverables"},
		{"2. **Timeline**", "Timeline"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := headingTitle(tt.line); got != tt.want {
				t.Errorf("headingTitle(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestFormat_MultipleSectionsAndPreamble(t *testing.T) {
	input := `Summary of the RFP.

1. Project Overview
The city needs a new permitting portal.
It must launch in 2025.

**Technical Requirements**
- Cloud hosted
• SSO support
* Audit logging
1. numbered item

Key Deliverables:
Working software and documentation.`

	doc := Format(input)
	if doc.Unsectioned {
		t.Fatal("expected sectioned output")
	}

	want := []Section{
		{
			Title:  "",
			Blocks: []Block{{Kind: BlockParagraph, Text: "Summary of the RFP."}},
		},
		{
			Title: "Project Overview",
			Blocks: []Block{{
				Kind: BlockParagraph,
				Text: "The city needs a new permitting portal.\nIt must launch in 2025.",
			}},
		},
		{
			Title: "Technical Requirements",
			Blocks: []Block{{
				Kind:  BlockList,
				Items: []string{"Cloud hosted", "SSO support", "Audit logging", "numbered item"},
			}},
		},
		{
			Title:  "Key Deliverables",
			Blocks: []Block{{Kind: BlockParagraph, Text: "Working software and documentation."}},
		},
	}

	if !reflect.DeepEqual(doc.Sections, want) {
		t.Errorf("Sections =\n%+v\nwant\n%+v", doc.Sections, want)
	}
}

func TestFormat_ListsSplitByParagraphs(t *testing.T) {
	doc := Format("1. Scope\nIntro line\n- a\n- b\nBridge text\n- c\n\nTail one\nTail two")

	if len(doc.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(doc.Sections))
	}
	want := []Block{
		{Kind: BlockParagraph, Text: "Intro line"},
		{Kind: BlockList, Items: []string{"a", "b"}},
		{Kind: BlockParagraph, Text: "Bridge text"},
		{Kind: BlockList, Items: []string{"c"}},
		{Kind: BlockParagraph, Text: "Tail one Tail two"},
	}
	if !reflect.DeepEqual(doc.Sections[0].Blocks, want) {
		t.Errorf("Blocks =\n%+v\nwant\n%+v", doc.Sections[0].Blocks, want)
	}
}

func TestFormat_ParagraphsWithoutListStayOneBlock(t *testing.T) {
	doc := Format("1. Scope\nPara one\n\nPara two\n")

	if len(doc.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(doc.Sections))
	}
	want := []Block{{Kind: BlockParagraph, Text: "Para one\n\nPara two"}}
	if !reflect.DeepEqual(doc.Sections[0].Blocks, want) {
		t.Errorf("Blocks = %+v, want %+v", doc.Sections[0].Blocks, want)
	}
}

func TestFormat_HeadingWithoutBody(t *testing.T) {
	doc := Format("1. Scope\n2. Budget\nUp to $1M")

	if len(doc.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Scope" || len(doc.Sections[0].Blocks) != 0 {
		t.Errorf("Sections[0] = %+v", doc.Sections[0])
	}
	if doc.Sections[1].Title != "Budget" || doc.Sections[1].Blocks[0].Text != "Up to $1M" {
		t.Errorf("Sections[1] = %+v", doc.Sections[1])
	}
}

func TestFormat_CRLF(t *testing.T) {
	doc := Format("1. Scope\r\n- a\r\n- b\r\n")
	if len(doc.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(doc.Sections))
	}
	got := doc.Sections[0].Blocks
	if len(got) != 1 || got[0].Kind != BlockList || len(got[0].Items) != 2 {
		t.Errorf("Blocks = %+v", got)
	}
}

func TestFormat_Deterministic(t *testing.T) {
	input := "1. Scope\n- a\n\n**Budget**\ntext"
	if !reflect.DeepEqual(Format(input), Format(input)) {
		t.Error("Format() is not deterministic")
	}
}

func TestBlockKind_String(t *testing.T) {
	if BlockParagraph.String() != "paragraph" || BlockList.String() != "list" || BlockKind(9).String() != "unknown" {
		t.Error("BlockKind.String() mismatch")
	}
}
