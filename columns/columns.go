package columns

import (
	"fmt"
	"strings"

	set "github.com/deckarep/golang-set/v2"

	"github.com/m-manu/digipres-columns/bytesutil"
	"github.com/m-manu/digipres-columns/entity"
)

// Placeholder is shown instead of a blank cell when identification yielded nothing,
// so that "tried and failed" looks different from "never ran"
const Placeholder = "None"

// Align is the horizontal alignment of a column's cells
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one extra column of the list view
type Column struct {
	Name        string
	Attribute   string
	Label       string
	Description string
	Align       Align
	value       func(row entity.FileColumns) string
}

// Value renders the column's cell for a row
func (c Column) Value(row entity.FileColumns) string {
	return c.value(row)
}

var (
	nameColumn = Column{
		Name:        "DigipresColumns::name_column",
		Attribute:   "name",
		Label:       "Name",
		Description: "File name",
		Align:       AlignLeft,
		value:       func(row entity.FileColumns) string { return row.Name },
	}
	sizeColumn = Column{
		Name:        "DigipresColumns::size_column",
		Attribute:   "size",
		Label:       "Size",
		Description: "File size",
		Align:       AlignRight,
		value:       func(row entity.FileColumns) string { return bytesutil.BinaryFormat(row.Size) },
	}
	puidColumn = Column{
		Name:        "DigipresColumns::puid_column",
		Attribute:   "puid",
		Label:       "Format ID",
		Description: "Format identifier according to PRONOM",
		Align:       AlignRight,
		value:       func(row entity.FileColumns) string { return row.FormatID },
	}
	formatNameColumn = Column{
		Name:        "DigipresColumns::format_name_column",
		Attribute:   "format_name",
		Label:       "Format Name",
		Description: "Format name according to PRONOM",
		Align:       AlignLeft,
		value:       func(row entity.FileColumns) string { return row.FormatName },
	}
	formatURIColumn = Column{
		Name:        "DigipresColumns::format_uri_column",
		Attribute:   "format_uri",
		Label:       "Format Reference",
		Description: "Registry page describing the format",
		Align:       AlignLeft,
		value:       func(row entity.FileColumns) string { return row.FormatURI },
	}
	checksumColumn = Column{
		Name:        "DigipresColumns::checksum_column",
		Attribute:   "checksum",
		Label:       "Checksum",
		Description: "Checksum value",
		Align:       AlignRight,
		value:       func(row entity.FileColumns) string { return row.Checksum },
	}
)

// Definitions returns the columns the extension contributes to the list view
func Definitions() []Column {
	return []Column{puidColumn, formatNameColumn, checksumColumn}
}

// Available returns every column that can be selected, including file name and size
func Available() []Column {
	return []Column{nameColumn, sizeColumn, puidColumn, formatNameColumn, formatURIColumn, checksumColumn}
}

// Select returns the columns for the given attribute names, in the given order
func Select(attributes []string) ([]Column, error) {
	byAttribute := make(map[string]Column)
	for _, c := range Available() {
		byAttribute[c.Attribute] = c
	}
	seen := set.NewThreadUnsafeSetWithSize[string](len(attributes))
	selected := make([]Column, 0, len(attributes))
	for _, attribute := range attributes {
		attribute = strings.ToLower(strings.TrimSpace(attribute))
		c, known := byAttribute[attribute]
		if !known {
			return nil, fmt.Errorf("unknown column \"%s\" (available: %s)", attribute, strings.Join(Attributes(), ", "))
		}
		if !seen.Add(attribute) {
			return nil, fmt.Errorf("column \"%s\" selected more than once", attribute)
		}
		selected = append(selected, c)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no columns selected")
	}
	return selected, nil
}

// Attributes lists the attribute names of all available columns
func Attributes() []string {
	available := Available()
	attributes := make([]string, 0, len(available))
	for _, c := range available {
		attributes = append(attributes, c.Attribute)
	}
	return attributes
}
