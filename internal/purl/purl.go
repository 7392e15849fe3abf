package purl

import (
	"fmt"
	"regexp"
	"strings"
)

// druidPattern matches a bare druid identifier: two letters, three digits,
// two letters, four digits.
var druidPattern = regexp.MustCompile(`^[b-df-hjkmnp-tv-z]{2}[0-9]{3}[b-df-hjkmnp-tv-z]{2}[0-9]{4}$`)

// Normalize strips an optional "druid:" prefix and lowercases the
// identifier.
func Normalize(druid string) string {
	druid = strings.TrimSpace(druid)
	druid = strings.TrimPrefix(druid, "druid:")
	return strings.ToLower(druid)
}

// Validate reports whether the identifier is a well-formed druid after
// normalization.
func Validate(druid string) error {
	normalized := Normalize(druid)
	if !druidPattern.MatchString(normalized) {
		return fmt.Errorf("malformed druid %q", druid)
	}
	return nil
}

// URLFor builds the persistent URL for an object.
func URLFor(baseURL, druid string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return ""
	}
	return base + "/" + Normalize(druid)
}
