package mods

import (
	"lectern/internal/cocina"
)

const (
	modsNamespace      = "http://www.loc.gov/mods/v3"
	xsiNamespace       = "http://www.w3.org/2001/XMLSchema-instance"
	modsSchemaLocation = "http://www.loc.gov/mods/v3 http://www.loc.gov/standards/mods/v3/mods-3-6.xsd"
	modsVersion        = "3.6"
)

// Transform renders a descriptive record as a MODS 3.6 document rooted at a
// mods element. Group counters are fresh per call, so transforming the same
// record twice yields byte-identical output.
func Transform(desc *cocina.Description, purl string) *Element {
	root := NewElement("mods")
	root.Set("xmlns", modsNamespace)
	root.Set("xmlns:xsi", xsiNamespace)
	root.Set("version", modsVersion)
	root.Set("xsi:schemaLocation", modsSchemaLocation)

	if desc == nil {
		return root
	}
	if purl == "" {
		purl = desc.Purl
	}

	g := NewGroups()
	nameTitles := buildNameTitleIndex(desc, g)

	writeTitles(root, desc.Title, g, nameTitles)
	writeContributors(root, desc.Contributor, g, nameTitles)
	writeEvents(root, desc.Event)
	writeForms(root, desc.Form, g)
	writeLanguages(root, desc.Language)
	writeNotes(root, desc.Note, g)
	writeAccessContacts(root, desc.Access)
	writeSubjects(root, desc.Subject, desc.Form, g)
	writeIdentifiers(root, desc.Identifier)
	writeLocation(root, desc.Access, purl)
	writeAccessConditions(root, desc.Access)
	writeRelated(root, desc.RelatedResource, g)
	writeGeographic(root, desc.Geographic, purl)
	writeAdminMetadata(root, desc.AdminMetadata)

	return root
}

// TransformString renders the document with an XML declaration, ready to
// serve or persist.
func TransformString(desc *cocina.Description, purl string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + Transform(desc, purl).String()
}

// buildNameTitleIndex pairs uniform titles with the contributors they cite.
// Group ids are allocated in first-seen title order, so the index is stable
// for a given record. The key is the normalized name value; both the title
// writer and the name writer consult the same index so the two elements
// carry the same nameTitleGroup id.
func buildNameTitleIndex(desc *cocina.Description, g *Groups) map[string]int {
	contributorNames := make(map[string]struct{})
	for _, contributor := range desc.Contributor {
		for _, name := range contributor.Name {
			collectNameKeys(name, contributorNames)
		}
	}
	if len(contributorNames) == 0 {
		return nil
	}

	index := make(map[string]int)
	for _, title := range desc.Title {
		for _, candidate := range titleVariants(title) {
			if candidate.Type != "uniform" {
				continue
			}
			for _, part := range candidate.StructuredValue {
				if part.Type != "name" {
					continue
				}
				key := nameKey(part.Value)
				if _, known := contributorNames[key]; !known {
					continue
				}
				if _, seen := index[key]; seen {
					continue
				}
				index[key] = g.NextNameTitle()
			}
		}
	}
	if len(index) == 0 {
		return nil
	}
	return index
}

func collectNameKeys(name cocina.DescriptiveValue, into map[string]struct{}) {
	if name.Value != "" {
		into[nameKey(name.Value)] = struct{}{}
	}
	for _, variant := range name.ParallelValue {
		collectNameKeys(variant, into)
	}
}

func titleVariants(title cocina.DescriptiveValue) []cocina.DescriptiveValue {
	if cocina.ValueShape(title) != cocina.ShapeParallel {
		return []cocina.DescriptiveValue{title}
	}
	variants := make([]cocina.DescriptiveValue, 0, len(title.ParallelValue))
	for _, variant := range title.ParallelValue {
		if variant.Type == "" {
			variant.Type = title.Type
		}
		variants = append(variants, variant)
	}
	return variants
}
