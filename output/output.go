package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/m-manu/digipres-columns/columns"
	"github.com/m-manu/digipres-columns/config"
	"github.com/m-manu/digipres-columns/entity"
)

// ResolveFormat turns "auto" into a concrete format: a table for terminals, tsv otherwise
func ResolveFormat(format string, w io.Writer) string {
	if format != config.FormatAuto {
		return format
	}
	if isTerminal(w) {
		return config.FormatTable
	}
	return config.FormatTSV
}

// Render writes rows to w in the given format, showing only the given columns
func Render(w io.Writer, format string, cols []columns.Column, rows []entity.FileColumns) error {
	switch ResolveFormat(format, w) {
	case config.FormatTable:
		_, err := fmt.Fprintln(w, renderTable(cols, rows))
		return err
	case config.FormatCSV:
		return writeDelimited(w, ',', cols, rows)
	case config.FormatTSV:
		return writeDelimited(w, '\t', cols, rows)
	case config.FormatJSON:
		return writeJSON(w, cols, rows)
	default:
		return fmt.Errorf("unsupported output format \"%s\"", format)
	}
}

func renderTable(cols []columns.Column, rows []entity.FileColumns) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		for i, c := range cols {
			r[i] = c.Value(row)
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, len(cols))
	for i, c := range cols {
		align := text.AlignLeft
		if c.Align == columns.AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func writeDelimited(w io.Writer, delimiter rune, cols []columns.Column, rows []entity.FileColumns) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Attribute
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error while writing header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(cols))
		for i, c := range cols {
			record[i] = c.Value(row)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error while writing record %+v: %w", record, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, cols []columns.Column, rows []entity.FileColumns) error {
	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]string, len(cols)+1)
		record["path"] = row.Path
		for _, c := range cols {
			record[c.Attribute] = c.Value(row)
		}
		records = append(records, record)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
