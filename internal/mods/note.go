package mods

import (
	"strings"

	"lectern/internal/cocina"
)

// writeNotes dispatches note values into abstract, tableOfContents,
// targetAudience, and note elements. Table-of-contents structured parts
// flatten into one text node joined with " -- ".
func writeNotes(root *Element, notes []cocina.DescriptiveValue, g *Groups) {
	for _, note := range notes {
		if cocina.ValueShape(note) == cocina.ShapeParallel {
			altRep := g.NextAltRep()
			primaryIdx := cocina.PrimaryIndex(note.ParallelValue)
			for j, variant := range note.ParallelValue {
				if variant.Type == "" {
					variant.Type = note.Type
				}
				el := buildNote(root, variant)
				el.SetInt("altRepGroup", altRep)
				if j == primaryIdx && variant.Status == "primary" {
					el.Set("usage", "primary")
				}
				setLanguageAttrs(el, variant.ValueLanguage)
			}
			continue
		}
		buildNote(root, note)
	}
}

func buildNote(root *Element, note cocina.DescriptiveValue) *Element {
	switch note.Type {
	case "abstract", "summary":
		el := root.Child("abstract")
		setDisplayLabel(el, note.DisplayLabel)
		el.SetText(note.Value)
		return el
	case "table of contents":
		el := root.Child("tableOfContents")
		setDisplayLabel(el, note.DisplayLabel)
		if cocina.ValueShape(note) == cocina.ShapeStructured {
			parts := make([]string, 0, len(note.StructuredValue))
			for _, part := range note.StructuredValue {
				parts = append(parts, part.Value)
			}
			el.SetText(strings.Join(parts, " -- "))
		} else {
			el.SetText(note.Value)
		}
		return el
	case "target audience":
		el := root.Child("targetAudience")
		setAuthority(el, note)
		el.SetText(note.Value)
		return el
	default:
		el := root.Child("note")
		if note.Type != "" {
			el.Set("type", note.Type)
		}
		setDisplayLabel(el, note.DisplayLabel)
		el.SetText(note.Value)
		return el
	}
}
