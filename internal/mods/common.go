package mods

import (
	"strings"

	"golang.org/x/text/language"

	"lectern/internal/cocina"
)

// setAuthority renders authority attributes on a term-level element:
// source.code becomes authority, source.uri becomes authorityURI, and the
// value's own uri becomes valueURI. A bare uri with no source still renders
// valueURI at this level.
func setAuthority(el *Element, v cocina.DescriptiveValue) {
	if v.Source != nil {
		if code := strings.TrimSpace(v.Source.Code); code != "" {
			el.Set("authority", code)
		}
		if uri := strings.TrimSpace(v.Source.URI); uri != "" {
			el.Set("authorityURI", uri)
		}
	}
	if uri := strings.TrimSpace(v.URI); uri != "" {
		el.Set("valueURI", uri)
	}
}

// setContainerAuthority renders authority attributes on an outer container
// element. The legacy convention drops a bare uri here: without a source no
// attributes are emitted at the container level.
func setContainerAuthority(el *Element, v cocina.DescriptiveValue) {
	if v.Source == nil {
		return
	}
	setAuthority(el, v)
}

// setDisplayLabel renders the displayLabel attribute when present.
func setDisplayLabel(el *Element, label string) {
	if label = strings.TrimSpace(label); label != "" {
		el.Set("displayLabel", label)
	}
}

// setLanguageAttrs renders lang and script attributes from a value's
// language metadata. Script codes are canonicalized to ISO 15924 title case
// when they parse; unparseable codes pass through untouched.
func setLanguageAttrs(el *Element, vl *cocina.ValueLanguage) {
	if vl == nil {
		return
	}
	if code := strings.TrimSpace(vl.Code); code != "" {
		el.Set("lang", code)
	}
	if vl.ValueScript != nil {
		if code := strings.TrimSpace(vl.ValueScript.Code); code != "" {
			el.Set("script", canonicalScript(code))
		}
	}
}

func canonicalScript(code string) string {
	parsed, err := language.ParseScript(code)
	if err != nil {
		return code
	}
	return parsed.String()
}

// appendNotesByType emits note-derived child elements whose cocina type
// matches, using the given element name.
func appendNotesByType(parent *Element, notes []cocina.DescriptiveValue, noteType, elementName string) {
	for _, note := range notes {
		if note.Type != noteType {
			continue
		}
		child := parent.Child(elementName)
		child.SetText(note.Value)
	}
}
