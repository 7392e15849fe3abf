package mods_test

import (
	"testing"

	"lectern/internal/cocina"
)

func TestNoteDispatch(t *testing.T) {
	tests := []struct {
		name     string
		note     cocina.DescriptiveValue
		element  string
		wantText string
	}{
		{
			name:     "abstract",
			note:     cocina.DescriptiveValue{Value: "A summary.", Type: "abstract"},
			element:  "abstract",
			wantText: "A summary.",
		},
		{
			name:     "summary renders as abstract",
			note:     cocina.DescriptiveValue{Value: "A summary.", Type: "summary"},
			element:  "abstract",
			wantText: "A summary.",
		},
		{
			name:     "target audience",
			note:     cocina.DescriptiveValue{Value: "juvenile", Type: "target audience"},
			element:  "targetAudience",
			wantText: "juvenile",
		},
		{
			name:     "plain note",
			note:     cocina.DescriptiveValue{Value: "Signed by the author."},
			element:  "note",
			wantText: "Signed by the author.",
		},
		{
			name: "table of contents flattens",
			note: cocina.DescriptiveValue{
				Type: "table of contents",
				StructuredValue: []cocina.DescriptiveValue{
					{Value: "Chapter 1"},
					{Value: "Chapter 2"},
				},
			},
			element:  "tableOfContents",
			wantText: "Chapter 1 -- Chapter 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := &cocina.Description{Note: []cocina.DescriptiveValue{tt.note}}
			el := mustFind(t, transform(t, desc), tt.element)
			if el.Text() != tt.wantText {
				t.Fatalf("%s = %q, want %q", tt.element, el.Text(), tt.wantText)
			}
		})
	}
}

func TestTypedNoteKeepsTypeAttribute(t *testing.T) {
	desc := &cocina.Description{
		Note: []cocina.DescriptiveValue{{Value: "Gift of the estate.", Type: "acquisition"}},
	}
	note := mustFind(t, transform(t, desc), "note")
	if got := note.Attr("type"); got != "acquisition" {
		t.Fatalf("note type = %q", got)
	}
}

func TestParallelNotesShareGroup(t *testing.T) {
	desc := &cocina.Description{
		Note: []cocina.DescriptiveValue{
			{
				Type: "abstract",
				ParallelValue: []cocina.DescriptiveValue{
					{Value: "Résumé en français.", ValueLanguage: &cocina.ValueLanguage{Code: "fre"}},
					{Value: "Summary in English.", ValueLanguage: &cocina.ValueLanguage{Code: "eng"}},
				},
			},
		},
	}
	root := transform(t, desc)

	abstracts := root.FindAll("abstract")
	if len(abstracts) != 2 {
		t.Fatalf("got %d abstract elements, want 2", len(abstracts))
	}
	group := abstracts[0].Attr("altRepGroup")
	if group == "" || abstracts[1].Attr("altRepGroup") != group {
		t.Fatalf("altRepGroup mismatch: %q vs %q", group, abstracts[1].Attr("altRepGroup"))
	}
	if abstracts[0].Attr("lang") != "fre" || abstracts[1].Attr("lang") != "eng" {
		t.Fatalf("lang attrs = %q/%q", abstracts[0].Attr("lang"), abstracts[1].Attr("lang"))
	}
}

func TestEmptyValuePreserved(t *testing.T) {
	desc := &cocina.Description{
		Identifier: []cocina.DescriptiveValue{{Value: "", Type: "isbn"}},
	}
	id := mustFind(t, transform(t, desc), "identifier")
	if id.Text() != "" {
		t.Fatalf("identifier = %q, want empty", id.Text())
	}
	if id.Attr("type") != "isbn" {
		t.Fatalf("identifier type = %q", id.Attr("type"))
	}
}
