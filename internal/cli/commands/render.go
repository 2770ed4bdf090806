package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/uncharted-distil/longform/internal/dataset"
)

// renderResource writes up to limit rows of a resource in the requested
// format. limit <= 0 renders everything.
func renderResource(w io.Writer, res *dataset.Resource, fmtName string, limit int) error {
	rows := res.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	switch fmtName {
	case "json":
		return renderJSON(w, res.Columns, rows)
	case "csv":
		return renderCSV(w, res.Columns, rows)
	case "md", "markdown":
		return renderMarkdown(w, res.Columns, rows)
	default:
		return renderTable(w, res.Columns, rows, res.NumRows())
	}
}

func renderTable(w io.Writer, cols []string, rows [][]string, total int) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", len(rows), total)
	return nil
}

func renderJSON(w io.Writer, cols []string, rows [][]string) error {
	out := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		m := make(map[string]string, len(cols))
		for i, col := range cols {
			if i < len(r) {
				m[col] = r[i]
			}
		}
		out = append(out, m)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderCSV(w io.Writer, cols []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderMarkdown(w io.Writer, cols []string, rows [][]string) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | "))
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(r, " | "))
	}
	return nil
}
