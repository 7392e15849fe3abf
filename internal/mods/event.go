package mods

import (
	"strings"

	"lectern/internal/cocina"
)

// eventDateElements maps event types to their typed MODS date element.
// Untyped secondary events fall through to dateOther.
var eventDateElements = map[string]string{
	"production":   "dateCreated",
	"creation":     "dateCreated",
	"publication":  "dateIssued",
	"distribution": "dateIssued",
	"copyright":    "copyrightDate",
	"capture":      "dateCaptured",
	"validity":     "dateValid",
	"modification": "dateModified",
}

// writeEvents emits one originInfo per event. When the event type is absent
// the first event defaults to "production"; later untyped events omit
// eventType and render their dates under dateOther. Children follow the
// fixed order place, publisher, date, edition, issuance, frequency.
func writeEvents(root *Element, events []cocina.Event) {
	for i, event := range events {
		origin := root.Child("originInfo")

		eventType := event.Type
		if eventType == "" && i == 0 {
			eventType = "production"
		}
		if eventType != "" {
			origin.Set("eventType", eventType)
		}
		setDisplayLabel(origin, event.DisplayLabel)

		writePlaces(origin, event.Location)
		writePublishers(origin, event.Contributor)
		writeDates(origin, event.Date, eventType)

		appendNotesByType(origin, event.Note, "edition", "edition")
		appendNotesByType(origin, event.Note, "issuance", "issuance")
		appendNotesByType(origin, event.Note, "frequency", "frequency")
	}
}

func writePlaces(origin *Element, locations []cocina.DescriptiveValue) {
	for _, location := range locations {
		if location.Value == "" && location.Code == "" && !location.HasContent() {
			continue
		}
		place := origin.Child("place")
		if location.Value != "" || location.Code == "" {
			term := place.Child("placeTerm")
			term.Set("type", "text")
			setAuthority(term, location)
			term.SetText(location.Value)
		}
		if location.Code != "" {
			term := place.Child("placeTerm")
			term.Set("type", "code")
			if location.Source != nil && location.Source.Code != "" {
				term.Set("authority", location.Source.Code)
			}
			term.SetText(location.Code)
		}
	}
}

func writePublishers(origin *Element, contributors []cocina.Contributor) {
	for _, contributor := range contributors {
		if !hasRole(contributor, "publisher") || len(contributor.Name) == 0 {
			continue
		}
		origin.Child("publisher").SetText(contributor.Name[0].Value)
	}
}

func hasRole(contributor cocina.Contributor, role string) bool {
	for _, r := range contributor.Role {
		if strings.EqualFold(r.Value, role) {
			return true
		}
	}
	return false
}

func writeDates(origin *Element, dates []cocina.DescriptiveValue, eventType string) {
	elementName := "dateOther"
	if name, ok := eventDateElements[eventType]; ok {
		elementName = name
	}

	for _, date := range dates {
		switch cocina.ValueShape(date) {
		case cocina.ShapeStructured:
			// A structured date is a start/end range sharing the outer
			// date's encoding and qualifier.
			for _, part := range date.StructuredValue {
				el := buildDate(origin, elementName, part)
				if part.Encoding == nil {
					setDateEncoding(el, date.Encoding)
				}
				if part.Qualifier == "" && date.Qualifier != "" {
					el.Set("qualifier", date.Qualifier)
				}
				if part.Type == "start" || part.Type == "end" {
					el.Set("point", part.Type)
				}
			}
		case cocina.ShapeParallel:
			for _, variant := range date.ParallelValue {
				buildDate(origin, elementName, variant)
			}
		default:
			buildDate(origin, elementName, date)
		}
	}
}

func buildDate(origin *Element, elementName string, date cocina.DescriptiveValue) *Element {
	el := origin.Child(elementName)
	setDateEncoding(el, date.Encoding)
	if date.Qualifier != "" {
		el.Set("qualifier", date.Qualifier)
	}
	if date.Status == "primary" {
		el.Set("keyDate", "yes")
	}
	if date.Type != "" && elementName == "dateOther" && date.Type != "start" && date.Type != "end" {
		el.Set("type", date.Type)
	}
	el.SetText(date.Value)
	return el
}

func setDateEncoding(el *Element, encoding *cocina.Source) {
	if encoding == nil {
		return
	}
	if code := strings.TrimSpace(encoding.Code); code != "" {
		el.Set("encoding", code)
	}
}
