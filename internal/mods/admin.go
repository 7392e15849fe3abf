package mods

import (
	"lectern/internal/cocina"
)

// writeAdminMetadata emits the recordInfo block describing the metadata
// record itself.
func writeAdminMetadata(root *Element, admin *cocina.AdminMetadata) {
	if admin == nil {
		return
	}

	record := root.Child("recordInfo")

	for _, lang := range admin.Language {
		el := record.Child("languageOfCataloging")
		if lang.Status == "primary" {
			el.Set("usage", "primary")
		}
		if lang.Value != "" {
			term := el.Child("languageTerm")
			term.Set("type", "text")
			setLanguageAuthority(term, lang)
			term.SetText(lang.Value)
		}
		if lang.Code != "" {
			term := el.Child("languageTerm")
			term.Set("type", "code")
			setLanguageAuthority(term, lang)
			term.SetText(lang.Code)
		}
		if lang.Script != nil && lang.Script.Code != "" {
			term := el.Child("scriptTerm")
			term.Set("type", "code")
			setAuthority(term, *lang.Script)
			term.SetText(canonicalScript(lang.Script.Code))
		}
	}

	for _, contributor := range admin.Contributor {
		if len(contributor.Name) == 0 {
			continue
		}
		name := contributor.Name[0]
		el := record.Child("recordContentSource")
		setAuthority(el, name)
		if name.Code != "" && name.Value == "" {
			el.SetText(name.Code)
		} else {
			el.SetText(name.Value)
		}
	}

	appendNotesByType(record, admin.Note, "record origin", "recordOrigin")

	for _, event := range admin.Event {
		var elementName string
		switch event.Type {
		case "creation", "":
			elementName = "recordCreationDate"
		case "modification":
			elementName = "recordChangeDate"
		default:
			continue
		}
		for _, date := range event.Date {
			el := record.Child(elementName)
			setDateEncoding(el, date.Encoding)
			el.SetText(date.Value)
		}
	}

	for _, id := range admin.Identifier {
		el := record.Child("recordIdentifier")
		if id.Source != nil {
			if id.Source.Value != "" {
				el.Set("source", id.Source.Value)
			} else if id.Source.Code != "" {
				el.Set("source", id.Source.Code)
			}
		}
		el.SetText(id.Value)
	}

	for _, standard := range admin.Standard {
		el := record.Child("descriptionStandard")
		setAuthority(el, standard)
		if standard.Code != "" && standard.Value == "" {
			el.SetText(standard.Code)
		} else {
			el.SetText(standard.Value)
		}
	}
}
