package identify

import (
	"fmt"
	"strings"
)

type referenceRule struct {
	contains string
	template string
}

// Rules are tried in order; the first whose substring occurs in the identifier wins
var referenceRules = []referenceRule{
	{contains: "fmt/", template: "http://www.nationalarchives.gov.uk/PRONOM/%s"},
	{contains: "fdd", template: "https://www.loc.gov/preservation/digital/formats/fdd/%s.shtml"},
}

// ReferenceURI derives the registry page for a format identifier: PRONOM for "fmt/" and
// "x-fmt/" PUIDs, the Library of Congress format descriptions for "fdd" identifiers.
// Returns "" when no registry is known for the identifier.
func ReferenceURI(identifier string) string {
	if identifier == "" {
		return ""
	}
	for _, rule := range referenceRules {
		if strings.Contains(identifier, rule.contains) {
			return fmt.Sprintf(rule.template, identifier)
		}
	}
	return ""
}
