package mods

import (
	"lectern/internal/cocina"
)

// relatedItemTypes maps cocina relation types to the relatedItem type
// attribute. "related to" intentionally has no attribute.
var relatedItemTypes = map[string]string{
	"has version":   "otherVersion",
	"has part":      "constituent",
	"part of":       "host",
	"referenced by": "isReferencedBy",
	"references":    "references",
	"derived from":  "original",
	"preceded by":   "preceding",
	"succeeded by":  "succeeding",
	"other format":  "otherFormat",
	"in series":     "series",
}

// writeRelated emits relatedItem elements, rendering each related resource
// through a restricted pass of the same writers: titles, contributor names,
// notes, identifiers, and the related object's purl as a location URL.
func writeRelated(root *Element, related []cocina.RelatedResource, g *Groups) {
	for _, resource := range related {
		el := root.Child("relatedItem")
		if itemType, ok := relatedItemTypes[resource.Type]; ok {
			el.Set("type", itemType)
		}
		setDisplayLabel(el, resource.DisplayLabel)

		writeTitles(el, resource.Title, g, nil)
		writeContributors(el, resource.Contributor, g, nil)
		writeNotes(el, resource.Note, g)
		for _, id := range resource.Identifier {
			appendIdentifier(el, id)
		}
		if resource.Purl != "" {
			location := el.Child("location")
			url := location.Child("url")
			url.Set("usage", "primary display")
			url.SetText(resource.Purl)
		}
	}
}
