package mods

import (
	"strings"

	"lectern/internal/cocina"
)

// accessConditionTypes maps access note types to the accessCondition type
// attribute.
var accessConditionTypes = map[string]string{
	"access restriction":   "restriction on access",
	"use and reproduction": "use and reproduction",
	"license":              "license",
}

// writeLocation emits the location block. The object's purl always leads as
// the primary-display URL; physical locations, shelf locators, and
// additional URLs follow.
func writeLocation(root *Element, access *cocina.Access, purl string) {
	var urls, physical []cocina.DescriptiveValue
	if access != nil {
		urls = access.URL
		physical = access.PhysicalLocation
	}
	if purl == "" && len(urls) == 0 && len(physical) == 0 {
		return
	}

	location := root.Child("location")

	for _, loc := range physical {
		if loc.Type == "shelf locator" {
			location.Child("shelfLocator").SetText(loc.Value)
			continue
		}
		el := location.Child("physicalLocation")
		if loc.Type != "" {
			el.Set("type", loc.Type)
		}
		setDisplayLabel(el, loc.DisplayLabel)
		setAuthority(el, loc)
		el.SetText(loc.Value)
	}

	if purl != "" {
		el := location.Child("url")
		el.Set("usage", "primary display")
		el.SetText(purl)
	}

	for _, url := range urls {
		el := location.Child("url")
		setDisplayLabel(el, url.DisplayLabel)
		if len(url.Note) > 0 {
			el.Set("note", url.Note[0].Value)
		}
		el.SetText(url.Value)
	}
}

// writeAccessConditions emits accessCondition elements from access notes.
func writeAccessConditions(root *Element, access *cocina.Access) {
	if access == nil {
		return
	}
	for _, note := range access.Note {
		conditionType, ok := accessConditionTypes[note.Type]
		if !ok {
			continue
		}
		el := root.Child("accessCondition")
		el.Set("type", conditionType)
		setDisplayLabel(el, note.DisplayLabel)
		el.SetText(note.Value)
	}
}

// writeAccessContacts emits repository contact notes.
func writeAccessContacts(root *Element, access *cocina.Access) {
	if access == nil {
		return
	}
	for _, contact := range access.AccessContact {
		el := root.Child("note")
		el.Set("type", "contact")
		setDisplayLabel(el, contact.DisplayLabel)
		el.SetText(strings.TrimSpace(contact.Value))
	}
}
