package mods

import (
	"lectern/internal/cocina"
)

// physicalDescription children render in this order.
var physicalFormOrder = []struct {
	cocinaType string
	element    string
}{
	{"form", "form"},
	{"reformatting quality", "reformattingQuality"},
	{"media type", "internetMediaType"},
	{"extent", "extent"},
	{"digital origin", "digitalOrigin"},
}

// writeForms dispatches form values into the typeOfResource, genre, and
// physicalDescription families by their cocina type. Map scale and map
// projection entries are excluded; the subject writer consumes them into
// cartographics.
func writeForms(root *Element, forms []cocina.DescriptiveValue, g *Groups) {
	for _, form := range forms {
		if form.Type != "resource type" {
			continue
		}
		el := root.Child("typeOfResource")
		setAuthority(el, form)
		el.SetText(form.Value)
	}

	for _, form := range forms {
		if form.Type != "genre" {
			continue
		}
		if cocina.ValueShape(form) == cocina.ShapeParallel {
			altRep := g.NextAltRep()
			primaryIdx := cocina.PrimaryIndex(form.ParallelValue)
			for j, variant := range form.ParallelValue {
				el := buildGenre(root, variant)
				el.SetInt("altRepGroup", altRep)
				if j == primaryIdx && variant.Status == "primary" {
					el.Set("usage", "primary")
				}
			}
			continue
		}
		el := buildGenre(root, form)
		if form.Status == "primary" {
			el.Set("usage", "primary")
		}
	}

	writePhysicalDescription(root, forms)
}

func buildGenre(root *Element, form cocina.DescriptiveValue) *Element {
	el := root.Child("genre")
	setDisplayLabel(el, form.DisplayLabel)
	setLanguageAttrs(el, form.ValueLanguage)
	setAuthority(el, form)
	el.SetText(form.Value)
	return el
}

func writePhysicalDescription(root *Element, forms []cocina.DescriptiveValue) {
	var physical *Element
	for _, target := range physicalFormOrder {
		for _, form := range forms {
			if form.Type != target.cocinaType {
				continue
			}
			if physical == nil {
				physical = root.Child("physicalDescription")
			}
			el := physical.Child(target.element)
			if target.element == "form" {
				setAuthority(el, form)
			}
			el.SetText(form.Value)
		}
	}
}
