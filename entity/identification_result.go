package entity

import "fmt"

// IdentificationResult is what format identification yields for one file.
// An empty string means the field is absent.
type IdentificationResult struct {
	Identifier   string
	DisplayName  string
	ReferenceURI string
}

// IsEmpty reports whether no field is populated (i.e. identification failed)
func (r IdentificationResult) IsEmpty() bool {
	return r.Identifier == "" && r.DisplayName == "" && r.ReferenceURI == ""
}

func (r IdentificationResult) String() string {
	return fmt.Sprintf("%v/%v/%v", r.Identifier, r.DisplayName, r.ReferenceURI)
}
