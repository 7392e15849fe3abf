package mods

import (
	"strings"

	"lectern/internal/cocina"
)

// nameTypeCodes maps contributor types to MODS name types. The table is
// intentionally irregular: "event" is not a native MODS name type and
// renders as corporate while keeping its role element, whereas conference
// is native and suppresses roles entirely.
var nameTypeCodes = map[string]string{
	"person":       "personal",
	"organization": "corporate",
	"conference":   "conference",
	"event":        "corporate",
}

var namePartTypes = map[string]string{
	"surname":         "family",
	"forename":        "given",
	"term of address": "termsOfAddress",
	"life dates":      "date",
	"activity dates":  "date",
}

const marcRelatorCode = "marcrelator"
const marcRelatorURI = "id.loc.gov/vocabulary/relators"

// writeContributors emits name elements. The first contributor carrying
// status "primary" gets usage="primary"; parallel name variants share an
// altRepGroup id; names matched to a uniform title during the pre-pass are
// stamped with the shared nameTitleGroup id.
func writeContributors(root *Element, contributors []cocina.Contributor, g *Groups, nameTitles map[string]int) {
	primaryMarked := false
	for _, contributor := range contributors {
		if len(contributor.Name) == 0 {
			continue
		}
		markPrimary := contributor.Status == "primary" && !primaryMarked
		if markPrimary {
			primaryMarked = true
		}

		name := contributor.Name[0]
		if cocina.ValueShape(name) == cocina.ShapeParallel {
			altRep := g.NextAltRep()
			primaryIdx := cocina.PrimaryIndex(name.ParallelValue)
			for j, variant := range name.ParallelValue {
				el := buildName(contributor, variant, nameTitles)
				el.SetInt("altRepGroup", altRep)
				if markPrimary && j == primaryIdx {
					el.Set("usage", "primary")
				}
				root.Append(el)
			}
			continue
		}

		el := buildName(contributor, name, nameTitles)
		if markPrimary {
			el.Set("usage", "primary")
		}
		root.Append(el)
	}
}

func buildName(contributor cocina.Contributor, name cocina.DescriptiveValue, nameTitles map[string]int) *Element {
	el := NewElement("name")
	if code, ok := nameTypeCodes[contributor.Type]; ok {
		el.Set("type", code)
	}
	setDisplayLabel(el, name.DisplayLabel)
	setLanguageAttrs(el, name.ValueLanguage)
	setContainerAuthority(el, name)

	switch cocina.ValueShape(name) {
	case cocina.ShapeValue:
		el.Child("namePart").SetText(name.Value)
	case cocina.ShapeStructured:
		for _, part := range name.StructuredValue {
			namePart := el.Child("namePart")
			if partType, ok := namePartTypes[part.Type]; ok {
				namePart.Set("type", partType)
			}
			namePart.SetText(part.Value)
		}
	default:
		el.Child("namePart")
	}

	if id, ok := contributorNameGroup(name, nameTitles); ok {
		el.SetInt("nameTitleGroup", id)
	}

	appendNotesByType(el, contributor.Note, "affiliation", "affiliation")
	appendNotesByType(el, contributor.Note, "description", "description")

	// Conference is a native name type; its role is implied and suppressed.
	if contributor.Type != "conference" {
		writeRoles(el, contributor.Role)
	}
	return el
}

func contributorNameGroup(name cocina.DescriptiveValue, nameTitles map[string]int) (int, bool) {
	if name.Value != "" {
		if id, ok := nameTitles[nameKey(name.Value)]; ok {
			return id, true
		}
	}
	return 0, false
}

// writeRoles renders role elements, preferring roles sourced from the
// marcrelator vocabulary: when one exists, self-deposit and DataCite
// duplicates of the same role concept are suppressed, and the marcrelator
// role emits both its code and text forms as sibling roleTerm elements.
// Without a marcrelator role, only the first role's raw text is emitted.
func writeRoles(el *Element, roles []cocina.DescriptiveValue) {
	var marc []cocina.DescriptiveValue
	for _, role := range roles {
		if isMarcRelator(role) {
			marc = append(marc, role)
		}
	}

	if len(marc) > 0 {
		for _, role := range marc {
			wrapper := el.Child("role")
			if role.Code != "" {
				term := wrapper.Child("roleTerm")
				term.Set("type", "code")
				term.Set("authority", marcRelatorCode)
				if role.Source != nil && role.Source.URI != "" {
					term.Set("authorityURI", role.Source.URI)
				}
				if role.URI != "" {
					term.Set("valueURI", role.URI)
				}
				term.SetText(role.Code)
			}
			if role.Value != "" {
				term := wrapper.Child("roleTerm")
				term.Set("type", "text")
				term.Set("authority", marcRelatorCode)
				if role.Source != nil && role.Source.URI != "" {
					term.Set("authorityURI", role.Source.URI)
				}
				if role.URI != "" {
					term.Set("valueURI", role.URI)
				}
				term.SetText(role.Value)
			}
		}
		return
	}

	for _, role := range roles {
		if role.Value == "" {
			continue
		}
		wrapper := el.Child("role")
		term := wrapper.Child("roleTerm")
		term.Set("type", "text")
		term.SetText(role.Value)
		return
	}
}

func isMarcRelator(role cocina.DescriptiveValue) bool {
	if role.Source == nil {
		return false
	}
	if role.Source.Code == marcRelatorCode {
		return true
	}
	return strings.Contains(role.Source.URI, marcRelatorURI)
}
