package mods

import (
	"strings"

	"lectern/internal/cocina"
)

const (
	rdfNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	gmlNamespace = "http://www.opengis.net/gml/3.2/"
	dcNamespace  = "http://purl.org/dc/elements/1.1/"
)

// writeGeographic emits one geo extension per geographic block: an
// rdf:Description about the object's purl carrying format/type terms,
// coordinate geometry, and coverage references.
func writeGeographic(root *Element, geographic []cocina.Geographic, purl string) {
	for _, geo := range geographic {
		if len(geo.Form) == 0 && len(geo.Subject) == 0 {
			continue
		}
		ext := root.Child("extension")
		ext.Set("displayLabel", "geo")

		rdf := ext.Child("rdf:RDF")
		rdf.Set("xmlns:rdf", rdfNamespace)
		rdf.Set("xmlns:gml", gmlNamespace)
		rdf.Set("xmlns:dc", dcNamespace)

		desc := rdf.Child("rdf:Description")
		if purl != "" {
			desc.Set("rdf:about", purl)
		}

		for _, form := range geo.Form {
			switch form.Type {
			case "media type", "data format":
				desc.Child("dc:format").SetText(form.Value)
			case "type":
				desc.Child("dc:type").SetText(form.Value)
			}
		}

		for _, subject := range geo.Subject {
			switch subject.Type {
			case "point coordinates":
				writeCenterPoint(desc, subject)
			case "bounding box coordinates":
				writeBoundingBox(desc, subject)
			case "coverage":
				writeCoverage(desc, subject)
			}
		}
	}
}

// writeCenterPoint renders point coordinates as a gml:Point position in
// "latitude longitude" order.
func writeCenterPoint(desc *Element, subject cocina.DescriptiveValue) {
	var latitude, longitude string
	for _, part := range subject.StructuredValue {
		switch part.Type {
		case "latitude":
			latitude = part.Value
		case "longitude":
			longitude = part.Value
		}
	}
	point := desc.Child("gml:Point")
	point.Child("gml:pos").SetText(strings.TrimSpace(latitude + " " + longitude))
}

// writeBoundingBox renders a bounding box as a gml envelope with the corner
// pairs in "west south" / "east north" order. The reference-system attribute
// appears only when a coordinate standard is declared.
func writeBoundingBox(desc *Element, subject cocina.DescriptiveValue) {
	var west, south, east, north string
	for _, part := range subject.StructuredValue {
		switch part.Type {
		case "west":
			west = part.Value
		case "south":
			south = part.Value
		case "east":
			east = part.Value
		case "north":
			north = part.Value
		}
	}

	bounded := desc.Child("gml:boundedBy")
	envelope := bounded.Child("gml:Envelope")
	if subject.Standard != nil && strings.TrimSpace(subject.Standard.Code) != "" {
		envelope.Set("gml:srsName", subject.Standard.Code)
	}
	envelope.Child("gml:lowerCorner").SetText(strings.TrimSpace(west + " " + south))
	envelope.Child("gml:upperCorner").SetText(strings.TrimSpace(east + " " + north))
}

// writeCoverage renders descriptive coverage, optionally carrying a resource
// reference and a language tag.
func writeCoverage(desc *Element, subject cocina.DescriptiveValue) {
	coverage := desc.Child("dc:coverage")
	if subject.URI != "" {
		coverage.Set("rdf:resource", subject.URI)
	}
	if subject.ValueLanguage != nil && subject.ValueLanguage.Code != "" {
		coverage.Set("xml:lang", subject.ValueLanguage.Code)
	}
	coverage.SetText(subject.Value)
}
