package mods

import (
	"strings"

	"lectern/internal/cocina"
)

// Structured title parts render in this order regardless of input order.
var titlePartOrder = []struct {
	cocinaType string
	element    string
}{
	{"nonsorting characters", "nonSort"},
	{"main title", "title"},
	{"subtitle", "subTitle"},
	{"part number", "partNumber"},
	{"part name", "partName"},
}

var titleTypes = map[string]struct{}{
	"uniform":     {},
	"translated":  {},
	"alternative": {},
	"abbreviated": {},
}

// writeTitles emits titleInfo elements. The primary title leads and carries
// usage="primary"; parallel variants share an altRepGroup id; uniform titles
// take their nameTitleGroup id from the pre-built index so the name writer
// can stamp the matching contributor.
func writeTitles(root *Element, titles []cocina.DescriptiveValue, g *Groups, nameTitles map[string]int) {
	titles = cocina.PrimaryFirst(titles)
	for i, title := range titles {
		if cocina.ValueShape(title) == cocina.ShapeParallel {
			writeParallelTitle(root, title, i == 0, g, nameTitles)
			continue
		}
		el := buildTitleInfo(title, nameTitles)
		if title.Status == "primary" {
			el.Set("usage", "primary")
		}
		root.Append(el)
	}
}

func writeParallelTitle(root *Element, title cocina.DescriptiveValue, first bool, g *Groups, nameTitles map[string]int) {
	variants := title.ParallelValue
	altRep := g.NextAltRep()
	primaryIdx := cocina.PrimaryIndex(variants)
	explicitPrimary := false
	for _, variant := range variants {
		if variant.Status == "primary" {
			explicitPrimary = true
			break
		}
	}
	markPrimary := first || title.Status == "primary" || explicitPrimary

	for j, variant := range variants {
		if variant.Type == "" {
			variant.Type = title.Type
		}
		el := buildTitleInfo(variant, nameTitles)
		el.SetInt("altRepGroup", altRep)
		if markPrimary && j == primaryIdx {
			el.Set("usage", "primary")
		}
		root.Append(el)
	}
}

func buildTitleInfo(title cocina.DescriptiveValue, nameTitles map[string]int) *Element {
	el := NewElement("titleInfo")
	if _, ok := titleTypes[title.Type]; ok {
		el.Set("type", title.Type)
	}
	setDisplayLabel(el, title.DisplayLabel)
	setLanguageAttrs(el, title.ValueLanguage)
	setContainerAuthority(el, title)

	switch cocina.ValueShape(title) {
	case cocina.ShapeValue:
		el.Child("title").SetText(title.Value)
	case cocina.ShapeStructured:
		writeTitleParts(el, title)
	default:
		// Empty or malformed nodes keep their placeholder element.
		el.Child("title")
	}

	if title.Type == "uniform" {
		if id, ok := uniformNameGroup(title, nameTitles); ok {
			el.SetInt("nameTitleGroup", id)
		}
	}
	return el
}

func writeTitleParts(el *Element, title cocina.DescriptiveValue) {
	for _, target := range titlePartOrder {
		for _, part := range title.StructuredValue {
			if part.Type != target.cocinaType {
				continue
			}
			el.Child(target.element).SetText(part.Value)
		}
	}
}

// uniformNameGroup looks up the nameTitleGroup id for a uniform title whose
// structured name part matched a contributor during the pre-pass.
func uniformNameGroup(title cocina.DescriptiveValue, nameTitles map[string]int) (int, bool) {
	for _, part := range title.StructuredValue {
		if part.Type != "name" {
			continue
		}
		if id, ok := nameTitles[nameKey(part.Value)]; ok {
			return id, true
		}
	}
	return 0, false
}

// nameKey normalizes a name value for cross-reference matching: whitespace
// collapsed, case folded.
func nameKey(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}
