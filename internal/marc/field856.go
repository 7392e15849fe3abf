package marc

import (
	"strings"

	"lectern/internal/workflows"
)

// Subfield delimiter used in the flat field rendering.
const delimiter = "|"

// Field856 is the electronic location and access field for one object.
type Field856 struct {
	Indicator1 byte
	Indicator2 byte
	PurlURL    string
	Released   bool
}

// ReleasedToSearchworks reports whether the release tags mark the object
// released to the Searchworks catalog. The last matching tag wins.
func ReleasedToSearchworks(tags []workflows.ReleaseTag) bool {
	released := false
	for _, tag := range tags {
		if strings.EqualFold(tag.To, "Searchworks") {
			released = tag.Release
		}
	}
	return released
}

// NewField856 builds the 856 field for a purl. Indicator 4 marks an HTTP
// resource; indicator 0 marks the link as the resource itself.
func NewField856(purlURL string, released bool) Field856 {
	return Field856{
		Indicator1: '4',
		Indicator2: '0',
		PurlURL:    purlURL,
		Released:   released,
	}
}

// String renders the field in the flat text form consumed by the catalog
// loader. Unreleased objects render with a withdrawn marker so existing
// catalog links can be removed.
func (f Field856) String() string {
	var sb strings.Builder
	sb.WriteString("856 ")
	sb.WriteByte(f.Indicator1)
	sb.WriteByte(f.Indicator2)
	sb.WriteString(" " + delimiter + "u" + f.PurlURL)
	sb.WriteString(delimiter + "xSDR-PURL")
	if !f.Released {
		sb.WriteString(delimiter + "xwithdrawn")
	}
	return sb.String()
}
