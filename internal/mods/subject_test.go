package mods_test

import (
	"testing"

	"lectern/internal/cocina"
)

func TestStructuredSubjectOrder(t *testing.T) {
	desc := &cocina.Description{
		Subject: []cocina.DescriptiveValue{
			{
				StructuredValue: []cocina.DescriptiveValue{
					{Value: "19th century", Type: "time"},
					{Value: "England", Type: "place"},
					{Value: "Detective fiction", Type: "topic"},
				},
				Source: &cocina.Source{Code: "lcsh"},
			},
		},
	}
	subject := mustFind(t, transform(t, desc), "subject")

	if got := subject.Attr("authority"); got != "lcsh" {
		t.Fatalf("subject authority = %q", got)
	}
	var got []string
	for _, child := range subject.Children() {
		got = append(got, child.Name())
	}
	want := []string{"topic", "geographic", "temporal"}
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func TestSubjectTermAuthorityLevels(t *testing.T) {
	desc := &cocina.Description{
		Subject: []cocina.DescriptiveValue{
			{
				Value:  "Cats",
				Type:   "topic",
				URI:    "http://id.loc.gov/authorities/subjects/sh85021262",
				Source: &cocina.Source{Code: "lcsh", URI: "http://id.loc.gov/authorities/subjects/"},
			},
		},
	}
	subject := mustFind(t, transform(t, desc), "subject")
	topic := mustFind(t, subject, "topic")

	if got := subject.Attr("authority"); got != "lcsh" {
		t.Fatalf("container authority = %q", got)
	}
	if got := subject.Attr("valueURI"); got != "" {
		t.Fatalf("container valueURI = %q, want none", got)
	}
	if got := topic.Attr("valueURI"); got == "" {
		t.Fatal("expected valueURI on term")
	}
	if got := topic.Attr("authorityURI"); got == "" {
		t.Fatal("expected authorityURI on term")
	}
}

func TestHierarchicalGeographicSubject(t *testing.T) {
	desc := &cocina.Description{
		Subject: []cocina.DescriptiveValue{
			{
				Type: "place",
				StructuredValue: []cocina.DescriptiveValue{
					{Value: "Oxford", Type: "city"},
					{Value: "England", Type: "country"},
				},
			},
		},
	}
	subject := mustFind(t, transform(t, desc), "subject")
	hier := mustFind(t, subject, "hierarchicalGeographic")

	var got []string
	for _, child := range hier.Children() {
		got = append(got, child.Name()+"="+child.Text())
	}
	want := []string{"country=England", "city=Oxford"}
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func TestCartographicSubjectPullsScaleAndProjection(t *testing.T) {
	desc := &cocina.Description{
		Form: []cocina.DescriptiveValue{
			{Value: "Scale 1:10,000", Type: "map scale"},
			{Value: "Conic projection", Type: "map projection"},
		},
		Subject: []cocina.DescriptiveValue{
			{Value: "E 72°--E 148°/N 13°--N 18°", Type: "map coordinates"},
		},
	}
	root := transform(t, desc)

	carto := mustFind(t, mustFind(t, root, "subject"), "cartographics")
	if mustFind(t, carto, "scale").Text() != "Scale 1:10,000" {
		t.Fatalf("scale = %q", carto.Find("scale").Text())
	}
	if mustFind(t, carto, "projection").Text() != "Conic projection" {
		t.Fatalf("projection = %q", carto.Find("projection").Text())
	}
	if mustFind(t, carto, "coordinates").Text() == "" {
		t.Fatal("expected coordinates text")
	}
	// Map forms are consumed here, not rendered as physicalDescription.
	if root.Find("physicalDescription") != nil {
		t.Fatal("map scale and projection should not render as physicalDescription")
	}
}

func TestPlaceSubjectWithCode(t *testing.T) {
	desc := &cocina.Description{
		Subject: []cocina.DescriptiveValue{
			{Code: "n-us-md", Type: "place", Source: &cocina.Source{Code: "marcgac"}},
		},
	}
	subject := mustFind(t, transform(t, desc), "subject")

	code := mustFind(t, subject, "geographicCode")
	if code.Text() != "n-us-md" {
		t.Fatalf("geographicCode = %q", code.Text())
	}
	if code.Attr("authority") != "marcgac" {
		t.Fatalf("authority = %q", code.Attr("authority"))
	}
}

func TestSubjectNameOmitsRole(t *testing.T) {
	desc := &cocina.Description{
		Subject: []cocina.DescriptiveValue{
			{Value: "Dickens, Charles", Type: "person"},
		},
	}
	subject := mustFind(t, transform(t, desc), "subject")

	name := mustFind(t, subject, "name")
	if got := name.Attr("type"); got != "personal" {
		t.Fatalf("name type = %q", got)
	}
	if mustFind(t, name, "namePart").Text() != "Dickens, Charles" {
		t.Fatalf("namePart = %q", name.Find("namePart").Text())
	}
	if name.Find("role") != nil {
		t.Fatal("subject names must not carry roles")
	}
}

func TestParallelSubjectsShareGroup(t *testing.T) {
	desc := &cocina.Description{
		Subject: []cocina.DescriptiveValue{
			{
				Type: "topic",
				ParallelValue: []cocina.DescriptiveValue{
					{Value: "孫文", ValueLanguage: &cocina.ValueLanguage{Code: "chi"}},
					{Value: "Sun Yat-sen", ValueLanguage: &cocina.ValueLanguage{Code: "eng"}},
				},
			},
		},
	}
	root := transform(t, desc)

	subjects := root.FindAll("subject")
	if len(subjects) != 2 {
		t.Fatalf("got %d subject elements, want 2", len(subjects))
	}
	group := subjects[0].Attr("altRepGroup")
	if group == "" || subjects[1].Attr("altRepGroup") != group {
		t.Fatalf("altRepGroup mismatch: %q vs %q", group, subjects[1].Attr("altRepGroup"))
	}
	for _, subject := range subjects {
		if subject.Attr("lang") == "" {
			t.Fatal("expected lang attribute on parallel subject")
		}
		if mustFind(t, subject, "topic").Text() == "" {
			t.Fatal("expected topic text")
		}
	}
}
