package cocina

import (
	"fmt"
)

// Validate checks the one-of invariant across the whole description tree.
// The MODS writers tolerate malformed nodes at render time; Validate is the
// strict gate applied before a version may close.
func (d *Description) Validate() error {
	if d == nil {
		return nil
	}
	for i, title := range d.Title {
		if err := validateValue(fmt.Sprintf("title[%d]", i), title); err != nil {
			return err
		}
	}
	for i, contributor := range d.Contributor {
		for j, name := range contributor.Name {
			if err := validateValue(fmt.Sprintf("contributor[%d].name[%d]", i, j), name); err != nil {
				return err
			}
		}
	}
	for i, event := range d.Event {
		for j, date := range event.Date {
			if err := validateValue(fmt.Sprintf("event[%d].date[%d]", i, j), date); err != nil {
				return err
			}
		}
	}
	for i, subject := range d.Subject {
		if err := validateValue(fmt.Sprintf("subject[%d]", i), subject); err != nil {
			return err
		}
	}
	for i, form := range d.Form {
		if err := validateValue(fmt.Sprintf("form[%d]", i), form); err != nil {
			return err
		}
	}
	for i, note := range d.Note {
		if err := validateValue(fmt.Sprintf("note[%d]", i), note); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(path string, v DescriptiveValue) error {
	populated := 0
	if v.Value != "" {
		populated++
	}
	if len(v.StructuredValue) > 0 {
		populated++
	}
	if len(v.ParallelValue) > 0 {
		populated++
	}
	if populated > 1 {
		return fmt.Errorf("%s: value, structuredValue, and parallelValue are mutually exclusive", path)
	}
	for i, child := range v.StructuredValue {
		if err := validateValue(fmt.Sprintf("%s.structuredValue[%d]", path, i), child); err != nil {
			return err
		}
	}
	for i, child := range v.ParallelValue {
		if err := validateValue(fmt.Sprintf("%s.parallelValue[%d]", path, i), child); err != nil {
			return err
		}
	}
	return nil
}
