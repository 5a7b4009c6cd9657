// Package report renders similarity matrices as CSV, JSON or terminal tables.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (must be table, csv or json)", s)
	}
}

// Matrix is a labelled similarity matrix.
type Matrix struct {
	RunID        string      `json:"run_id,omitempty"`
	Metric       string      `json:"metric"`
	Directedness string      `json:"directedness"`
	NodeID       string      `json:"node_id,omitempty"`
	Labels       []string    `json:"labels"`
	Values       [][]float64 `json:"values"`
}

// Write renders m in the given format.
func Write(w io.Writer, m *Matrix, f Format) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, m)
	case FormatJSON:
		return WriteJSON(w, m)
	case FormatTable:
		_, err := fmt.Fprintln(w, RenderTable(m))
		return err
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// WriteCSV writes a header row of labels followed by one row per label.
func WriteCSV(w io.Writer, m *Matrix) error {
	cw := csv.NewWriter(w)

	header := append([]string{""}, m.Labels...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, row := range m.Values {
		record := make([]string, 0, len(row)+1)
		record = append(record, m.Labels[i])
		for _, v := range row {
			record = append(record, formatValue(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes m as indented JSON.
func WriteJSON(w io.Writer, m *Matrix) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Right)

	diagonalStyle = cellStyle.
			Foreground(lipgloss.Color("#666666"))

	identicalStyle = cellStyle.
			Foreground(lipgloss.Color("#00FF00"))
)

// RenderTable draws m as a bordered terminal table. Scores of 1 are
// highlighted and the diagonal is dimmed.
func RenderTable(m *Matrix) string {
	rows := make([][]string, len(m.Values))
	for i, row := range m.Values {
		rows[i] = make([]string, 0, len(row)+1)
		rows[i] = append(rows[i], m.Labels[i])
		for _, v := range row {
			rows[i] = append(rows[i], formatValue(v))
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))).
		Headers(append([]string{""}, m.Labels...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow, col == 0:
				return headerStyle
			case row == col-1:
				return diagonalStyle
			case m.Values[row][col-1] == 1:
				return identicalStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
