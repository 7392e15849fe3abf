package mods

import (
	"lectern/internal/cocina"
)

// writeIdentifiers emits identifier elements. Identifiers flagged invalid
// keep the element with invalid="yes"; empty values remain as empty leaves.
func writeIdentifiers(root *Element, identifiers []cocina.DescriptiveValue) {
	for _, id := range identifiers {
		appendIdentifier(root, id)
	}
}

func appendIdentifier(parent *Element, id cocina.DescriptiveValue) {
	el := parent.Child("identifier")
	identifierType := id.Type
	if identifierType == "" && id.URI != "" {
		identifierType = "uri"
	}
	if identifierType != "" {
		el.Set("type", identifierType)
	}
	setDisplayLabel(el, id.DisplayLabel)
	if id.Status == "invalid" {
		el.Set("invalid", "yes")
	}
	if id.Value != "" {
		el.SetText(id.Value)
	} else if id.URI != "" {
		el.SetText(id.URI)
	}
}
