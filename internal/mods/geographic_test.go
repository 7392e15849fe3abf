package mods_test

import (
	"testing"

	"lectern/internal/cocina"
	"lectern/internal/mods"
)

func geoDescription(subjects ...cocina.DescriptiveValue) *cocina.Description {
	return &cocina.Description{
		Geographic: []cocina.Geographic{
			{
				Form: []cocina.DescriptiveValue{
					{Value: "image/jpeg", Type: "media type"},
					{Value: "Image", Type: "type"},
				},
				Subject: subjects,
			},
		},
	}
}

func geoRDFDescription(t *testing.T, root *mods.Element) *mods.Element {
	t.Helper()
	ext := mustFind(t, root, "extension")
	if got := ext.Attr("displayLabel"); got != "geo" {
		t.Fatalf("extension displayLabel = %q", got)
	}
	rdf := mustFind(t, ext, "rdf:RDF")
	return mustFind(t, rdf, "rdf:Description")
}

func TestGeographicExtensionShell(t *testing.T) {
	desc := geoDescription()
	rdfDesc := geoRDFDescription(t, transform(t, desc))

	if got := rdfDesc.Attr("rdf:about"); got != testPurl {
		t.Fatalf("rdf:about = %q, want %q", got, testPurl)
	}
	if mustFind(t, rdfDesc, "dc:format").Text() != "image/jpeg" {
		t.Fatal("expected dc:format from media type form")
	}
	if mustFind(t, rdfDesc, "dc:type").Text() != "Image" {
		t.Fatal("expected dc:type from type form")
	}
}

func TestGeographicCenterPoint(t *testing.T) {
	desc := geoDescription(cocina.DescriptiveValue{
		Type: "point coordinates",
		StructuredValue: []cocina.DescriptiveValue{
			{Value: "37.4", Type: "latitude"},
			{Value: "-122.1", Type: "longitude"},
		},
	})
	rdfDesc := geoRDFDescription(t, transform(t, desc))

	pos := mustFind(t, mustFind(t, rdfDesc, "gml:Point"), "gml:pos")
	if got := pos.Text(); got != "37.4 -122.1" {
		t.Fatalf("gml:pos = %q, want latitude longitude order", got)
	}
}

func TestGeographicBoundingBox(t *testing.T) {
	box := cocina.DescriptiveValue{
		Type: "bounding box coordinates",
		StructuredValue: []cocina.DescriptiveValue{
			{Value: "-122.2", Type: "west"},
			{Value: "37.2", Type: "south"},
			{Value: "-121.9", Type: "east"},
			{Value: "37.5", Type: "north"},
		},
	}

	t.Run("with reference system", func(t *testing.T) {
		withStandard := box
		withStandard.Standard = &cocina.Standard{Code: "EPSG:4326"}
		rdfDesc := geoRDFDescription(t, transform(t, geoDescription(withStandard)))

		envelope := mustFind(t, mustFind(t, rdfDesc, "gml:boundedBy"), "gml:Envelope")
		if got := envelope.Attr("gml:srsName"); got != "EPSG:4326" {
			t.Fatalf("gml:srsName = %q", got)
		}
		if got := mustFind(t, envelope, "gml:lowerCorner").Text(); got != "-122.2 37.2" {
			t.Fatalf("lowerCorner = %q, want west south order", got)
		}
		if got := mustFind(t, envelope, "gml:upperCorner").Text(); got != "-121.9 37.5" {
			t.Fatalf("upperCorner = %q, want east north order", got)
		}
	})

	t.Run("without reference system", func(t *testing.T) {
		rdfDesc := geoRDFDescription(t, transform(t, geoDescription(box)))
		envelope := mustFind(t, mustFind(t, rdfDesc, "gml:boundedBy"), "gml:Envelope")
		if got := envelope.Attr("gml:srsName"); got != "" {
			t.Fatalf("gml:srsName = %q, want absent", got)
		}
	})
}

func TestGeographicCoverage(t *testing.T) {
	desc := geoDescription(cocina.DescriptiveValue{
		Type:          "coverage",
		Value:         "Oxford (England)",
		URI:           "http://sws.geonames.org/2640729/",
		ValueLanguage: &cocina.ValueLanguage{Code: "eng"},
	})
	rdfDesc := geoRDFDescription(t, transform(t, desc))

	coverage := mustFind(t, rdfDesc, "dc:coverage")
	if got := coverage.Attr("rdf:resource"); got != "http://sws.geonames.org/2640729/" {
		t.Fatalf("rdf:resource = %q", got)
	}
	if got := coverage.Attr("xml:lang"); got != "eng" {
		t.Fatalf("xml:lang = %q", got)
	}
	if coverage.Text() != "Oxford (England)" {
		t.Fatalf("coverage = %q", coverage.Text())
	}
}
