package mods

import (
	"strings"

	"lectern/internal/cocina"
)

// Structured multi-term subjects render their parts in this order.
var subjectPartOrder = []string{"topic", "name", "title", "genre", "geographic", "temporal"}

// Hierarchical geographic levels, broadest first. Only levels present in the
// input are emitted, always in this order.
var hierarchicalGeoLevels = []struct {
	cocinaType string
	element    string
}{
	{"continent", "continent"},
	{"country", "country"},
	{"region", "region"},
	{"state", "state"},
	{"territory", "territory"},
	{"province", "province"},
	{"county", "county"},
	{"city", "city"},
	{"city section", "citySection"},
	{"island", "island"},
	{"area", "area"},
}

var subjectNameTypes = map[string]struct{}{
	"person":       {},
	"organization": {},
	"family":       {},
	"conference":   {},
	"name":         {},
}

// writeSubjects dispatches each subject by type and shape: plain terms,
// structured multi-term sets, hierarchical geographics, name and name-title
// subjects, and cartographic coordinates (which pull scale and projection
// from sibling form entries). Authority placement follows the two-level
// rule: a source on the whole subject renders on the subject wrapper, a
// source on an individual part renders on that part's element, and both may
// coexist.
func writeSubjects(root *Element, subjects []cocina.DescriptiveValue, forms []cocina.DescriptiveValue, g *Groups) {
	for _, subject := range subjects {
		if cocina.ValueShape(subject) == cocina.ShapeParallel {
			altRep := g.NextAltRep()
			for _, variant := range subject.ParallelValue {
				if variant.Type == "" {
					variant.Type = subject.Type
				}
				el := buildSubject(root, variant, forms)
				el.SetInt("altRepGroup", altRep)
				setLanguageAttrs(el, variant.ValueLanguage)
			}
			continue
		}
		buildSubject(root, subject, forms)
	}
}

func buildSubject(root *Element, subject cocina.DescriptiveValue, forms []cocina.DescriptiveValue) *Element {
	el := root.Child("subject")
	setDisplayLabel(el, subject.DisplayLabel)

	switch {
	case subject.Type == "map coordinates":
		setContainerAuthority(el, subject)
		writeCartographics(el, subject, forms)
	case cocina.ValueShape(subject) == cocina.ShapeStructured && isHierarchicalGeographic(subject):
		setContainerAuthority(el, subject)
		writeHierarchicalGeographic(el, subject)
	case cocina.ValueShape(subject) == cocina.ShapeStructured:
		setContainerAuthority(el, subject)
		writeStructuredSubject(el, subject)
	default:
		// Flat subjects keep only the vocabulary code on the wrapper; the
		// URIs render on the term element.
		if subject.Source != nil && strings.TrimSpace(subject.Source.Code) != "" {
			el.Set("authority", subject.Source.Code)
		}
		writeSubjectTerm(el, subject)
	}
	return el
}

// writeCartographics emits one cartographics element combining the subject's
// coordinates with map scale and projection drawn from the form list.
func writeCartographics(el *Element, subject cocina.DescriptiveValue, forms []cocina.DescriptiveValue) {
	carto := el.Child("cartographics")
	for _, form := range forms {
		if form.Type != "map scale" {
			continue
		}
		carto.Child("scale").SetText(form.Value)
	}
	for _, form := range forms {
		if form.Type != "map projection" {
			continue
		}
		carto.Child("projection").SetText(form.Value)
	}
	carto.Child("coordinates").SetText(subject.Value)
}

func isHierarchicalGeographic(subject cocina.DescriptiveValue) bool {
	if subject.Type != "place" && subject.Type != "" {
		return false
	}
	if len(subject.StructuredValue) == 0 {
		return false
	}
	for _, part := range subject.StructuredValue {
		if !isGeoLevel(part.Type) {
			return false
		}
	}
	return true
}

func isGeoLevel(partType string) bool {
	for _, level := range hierarchicalGeoLevels {
		if level.cocinaType == partType {
			return true
		}
	}
	return false
}

func writeHierarchicalGeographic(el *Element, subject cocina.DescriptiveValue) {
	hier := el.Child("hierarchicalGeographic")
	for _, level := range hierarchicalGeoLevels {
		for _, part := range subject.StructuredValue {
			if part.Type != level.cocinaType {
				continue
			}
			hier.Child(level.element).SetText(part.Value)
		}
	}
}

// writeStructuredSubject emits sibling sub-elements in the fixed order
// topic, name, title, genre, geographic, temporal.
func writeStructuredSubject(el *Element, subject cocina.DescriptiveValue) {
	for _, target := range subjectPartOrder {
		for _, part := range subject.StructuredValue {
			if normalizeSubjectPartType(part.Type) != target {
				continue
			}
			writeSubjectPart(el, part, target)
		}
	}
}

func normalizeSubjectPartType(partType string) string {
	if _, ok := subjectNameTypes[partType]; ok {
		return "name"
	}
	switch partType {
	case "place":
		return "geographic"
	case "time":
		return "temporal"
	default:
		return partType
	}
}

func writeSubjectPart(el *Element, part cocina.DescriptiveValue, target string) {
	switch target {
	case "name":
		writeSubjectName(el, part)
	case "title":
		title := el.Child("titleInfo")
		setAuthority(title, part)
		title.Child("title").SetText(part.Value)
	case "temporal":
		writeTemporal(el, part)
	case "geographic":
		term := el.Child("geographic")
		setAuthority(term, part)
		term.SetText(part.Value)
	default:
		term := el.Child(target)
		setAuthority(term, part)
		term.SetText(part.Value)
	}
}

// writeSubjectName is the restricted name renderer used inside subjects:
// the contributor name vocabulary without role elements.
func writeSubjectName(el *Element, part cocina.DescriptiveValue) {
	name := el.Child("name")
	if code, ok := nameTypeCodes[part.Type]; ok {
		name.Set("type", code)
	}
	setAuthority(name, part)
	switch cocina.ValueShape(part) {
	case cocina.ShapeStructured:
		for _, sub := range part.StructuredValue {
			namePart := name.Child("namePart")
			if partType, ok := namePartTypes[sub.Type]; ok {
				namePart.Set("type", partType)
			}
			namePart.SetText(sub.Value)
		}
	default:
		name.Child("namePart").SetText(part.Value)
	}
}

func writeTemporal(el *Element, part cocina.DescriptiveValue) {
	if cocina.ValueShape(part) == cocina.ShapeStructured {
		for _, sub := range part.StructuredValue {
			temporal := el.Child("temporal")
			if sub.Type == "start" || sub.Type == "end" {
				temporal.Set("point", sub.Type)
			}
			setDateEncoding(temporal, part.Encoding)
			temporal.SetText(sub.Value)
		}
		return
	}
	temporal := el.Child("temporal")
	setDateEncoding(temporal, part.Encoding)
	temporal.SetText(part.Value)
}

// writeSubjectTerm renders a plain single-term subject by type.
func writeSubjectTerm(el *Element, subject cocina.DescriptiveValue) {
	if _, ok := subjectNameTypes[subject.Type]; ok {
		writeSubjectName(el, subject)
		return
	}
	switch subject.Type {
	case "place":
		if subject.Code != "" {
			code := el.Child("geographicCode")
			if subject.Source != nil && subject.Source.Code != "" {
				code.Set("authority", subject.Source.Code)
			}
			code.SetText(subject.Code)
			return
		}
		term := el.Child("geographic")
		setAuthority(term, subject)
		term.SetText(subject.Value)
	case "time":
		writeTemporal(el, subject)
	case "genre":
		term := el.Child("genre")
		setAuthority(term, subject)
		term.SetText(subject.Value)
	case "occupation":
		term := el.Child("occupation")
		setAuthority(term, subject)
		term.SetText(subject.Value)
	case "title":
		title := el.Child("titleInfo")
		setAuthority(title, subject)
		title.Child("title").SetText(subject.Value)
	default:
		term := el.Child("topic")
		setAuthority(term, subject)
		term.SetText(subject.Value)
	}
}
