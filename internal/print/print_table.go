package print

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bgunnarsson/askcourses/internal/db"
)

// HiddenColumn is never displayed, whatever it holds.
const HiddenColumn = "raw"

var (
	ErrUnsupportedValue = errors.New("unsupported column type")
	ErrColumnMismatch   = errors.New("row does not match result columns")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table is a fully converted result: every cell is already display text.
type Table struct {
	Header []string
	Rows   [][]string
}

// Build converts rows cell by cell. The header comes from the rows
// themselves, so an empty result has an empty header.
func Build(rows *db.Rows) (Table, error) {
	var t Table
	if rows == nil {
		return t, nil
	}

	for r, row := range rows.Data {
		if len(row) != len(rows.Columns) {
			return Table{}, fmt.Errorf("row %d: %w: %d values for %d columns",
				r, ErrColumnMismatch, len(row), len(rows.Columns))
		}

		header := make([]string, 0, len(row))
		cells := make([]string, 0, len(row))
		for i, col := range rows.Columns {
			if col.Name == HiddenColumn {
				continue
			}
			s, err := formatCell(row[i])
			if err != nil {
				return Table{}, fmt.Errorf("row %d, column %q: %w", r, col.Name, err)
			}
			header = append(header, col.Name)
			cells = append(cells, s)
		}

		t.Header = header
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

// Render draws a rounded frame with a rule under the header only.
func (t Table) Render() string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderHeader(len(t.Rows) > 0).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(t.Header...).
		Rows(t.Rows...).
		Render()
}

// RenderTable builds the whole table before writing anything, so a
// conversion error never leaves half a table on w.
func RenderTable(w io.Writer, rows *db.Rows) error {
	t, err := Build(rows)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}

func formatCell(v db.Value) (string, error) {
	switch v.Kind {
	case db.KindText:
		return v.Text, nil
	case db.KindInteger:
		return strconv.FormatInt(v.Int, 10), nil
	case db.KindNull:
		return "NULL", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedValue, v.Type)
	}
}
