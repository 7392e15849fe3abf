package mods_test

import (
	"testing"

	"lectern/internal/cocina"
)

func TestEventDateElements(t *testing.T) {
	tests := []struct {
		eventType string
		want      string
	}{
		{"production", "dateCreated"},
		{"creation", "dateCreated"},
		{"publication", "dateIssued"},
		{"distribution", "dateIssued"},
		{"copyright", "copyrightDate"},
		{"capture", "dateCaptured"},
		{"validity", "dateValid"},
		{"modification", "dateModified"},
	}
	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			desc := &cocina.Description{
				Event: []cocina.Event{
					{Type: tt.eventType, Date: []cocina.DescriptiveValue{{Value: "1999"}}},
				},
			}
			origin := mustFind(t, transform(t, desc), "originInfo")
			if origin.Attr("eventType") != tt.eventType {
				t.Fatalf("eventType = %q", origin.Attr("eventType"))
			}
			date := mustFind(t, origin, tt.want)
			if date.Text() != "1999" {
				t.Fatalf("%s = %q", tt.want, date.Text())
			}
		})
	}
}

func TestUntypedFirstEventDefaultsToProduction(t *testing.T) {
	desc := &cocina.Description{
		Event: []cocina.Event{
			{Date: []cocina.DescriptiveValue{{Value: "1850"}}},
			{Date: []cocina.DescriptiveValue{{Value: "1851"}}},
		},
	}
	root := transform(t, desc)

	origins := root.FindAll("originInfo")
	if len(origins) != 2 {
		t.Fatalf("got %d originInfo elements, want 2", len(origins))
	}
	if got := origins[0].Attr("eventType"); got != "production" {
		t.Fatalf("first eventType = %q, want production", got)
	}
	if mustFind(t, origins[0], "dateCreated").Text() != "1850" {
		t.Fatal("first event date should render as dateCreated")
	}
	if got := origins[1].Attr("eventType"); got != "" {
		t.Fatalf("second eventType = %q, want none", got)
	}
	if mustFind(t, origins[1], "dateOther").Text() != "1851" {
		t.Fatal("second event date should fall through to dateOther")
	}
}

func TestStructuredDateRange(t *testing.T) {
	desc := &cocina.Description{
		Event: []cocina.Event{
			{
				Type: "publication",
				Date: []cocina.DescriptiveValue{
					{
						StructuredValue: []cocina.DescriptiveValue{
							{Value: "1920", Type: "start", Status: "primary"},
							{Value: "1925", Type: "end"},
						},
						Encoding:  &cocina.Source{Code: "w3cdtf"},
						Qualifier: "approximate",
					},
				},
			},
		},
	}
	origin := mustFind(t, transform(t, desc), "originInfo")

	dates := origin.FindAll("dateIssued")
	if len(dates) != 2 {
		t.Fatalf("got %d dateIssued elements, want 2", len(dates))
	}
	start, end := dates[0], dates[1]
	if start.Attr("point") != "start" || end.Attr("point") != "end" {
		t.Fatalf("points = %q/%q", start.Attr("point"), end.Attr("point"))
	}
	for _, date := range dates {
		if got := date.Attr("encoding"); got != "w3cdtf" {
			t.Fatalf("encoding = %q, want inherited w3cdtf", got)
		}
		if got := date.Attr("qualifier"); got != "approximate" {
			t.Fatalf("qualifier = %q, want inherited approximate", got)
		}
	}
	if start.Attr("keyDate") != "yes" {
		t.Fatal("primary start date should carry keyDate")
	}
	if end.Attr("keyDate") != "" {
		t.Fatal("end date should not carry keyDate")
	}
}

func TestEventPlaceAndPublisher(t *testing.T) {
	desc := &cocina.Description{
		Event: []cocina.Event{
			{
				Type: "publication",
				Location: []cocina.DescriptiveValue{
					{Value: "London", Code: "enk", Source: &cocina.Source{Code: "marccountry"}},
				},
				Contributor: []cocina.Contributor{
					{
						Name: []cocina.DescriptiveValue{{Value: "Gollancz"}},
						Type: "organization",
						Role: []cocina.DescriptiveValue{{Value: "publisher"}},
					},
				},
				Date: []cocina.DescriptiveValue{{Value: "1935"}},
			},
		},
	}
	origin := mustFind(t, transform(t, desc), "originInfo")

	var got []string
	for _, child := range origin.Children() {
		got = append(got, child.Name())
	}
	want := []string{"place", "publisher", "dateIssued"}
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}

	place := origin.Find("place")
	terms := place.FindAll("placeTerm")
	if len(terms) != 2 {
		t.Fatalf("got %d placeTerm elements, want 2", len(terms))
	}
	if terms[0].Attr("type") != "text" || terms[0].Text() != "London" {
		t.Fatalf("text term = %s", terms[0].String())
	}
	if terms[1].Attr("type") != "code" || terms[1].Text() != "enk" {
		t.Fatalf("code term = %s", terms[1].String())
	}
	if terms[1].Attr("authority") != "marccountry" {
		t.Fatalf("code authority = %q", terms[1].Attr("authority"))
	}
	if origin.Find("publisher").Text() != "Gollancz" {
		t.Fatalf("publisher = %q", origin.Find("publisher").Text())
	}
}
