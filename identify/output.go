package identify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/m-manu/digipres-columns/entity"
)

var errNoFiles = errors.New("no file entries in output")

var errNoMatches = errors.New("no matches for file")

var errEmptyMatch = errors.New("first match has neither id nor format")

// Output is the JSON document printed by `sf -json`. Only what is used is decoded, so
// other fields of any shape don't make the output unreadable.
type Output struct {
	Files []File `json:"files"`
}

// File is the per-file entry of Output
type File struct {
	Matches []Match `json:"matches"`
}

// Match is one candidate format for a file. Any field may be null or missing in the output.
type Match struct {
	ID      *string `json:"id"`
	Format  *string `json:"format"`
	Version *string `json:"version"`
}

// ParseOutput decodes the tool's stdout
func ParseOutput(data []byte) (Output, error) {
	var out Output
	if err := json.Unmarshal(data, &out); err != nil {
		return Output{}, fmt.Errorf("sf parse: %w", err)
	}
	return out, nil
}

// FirstMatch returns the tool's top-ranked match for the first file in the output
func (o Output) FirstMatch() (Match, error) {
	if len(o.Files) == 0 {
		return Match{}, errNoFiles
	}
	if len(o.Files[0].Matches) == 0 {
		return Match{}, errNoMatches
	}
	match := o.Files[0].Matches[0]
	if value(match.ID) == "" && value(match.Format) == "" {
		return Match{}, errEmptyMatch
	}
	return match, nil
}

// Result converts the match into an IdentificationResult, appending the version (if any)
// to the format name and deriving the reference URI from the identifier
func (m Match) Result() entity.IdentificationResult {
	id := value(m.ID)
	displayName := value(m.Format)
	if version := value(m.Version); version != "" {
		displayName = strings.TrimSpace(displayName + " " + version)
	}
	return entity.IdentificationResult{
		Identifier:   id,
		DisplayName:  displayName,
		ReferenceURI: ReferenceURI(id),
	}
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
