package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pfrederiksen/corona-scraper/internal/snapshot"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatJSON OutputFormat = "json"
)

// TableResult is one emitted table
type TableResult struct {
	Name    string
	Table   snapshot.Table
	Dropped []time.Time // dates removed as unchanged duplicates
}

// OutputResult contains data to be output
type OutputResult struct {
	TotalLabel  string
	DeathsLabel string
	Locations   []string
	Tables      []TableResult
}

// Columns returns the value columns of t in output order: total, deaths when
// any date has a deaths entry, then every location.
func (r *OutputResult) Columns(t TableResult) []string {
	columns := make([]string, 0, len(r.Locations)+2)
	columns = append(columns, r.TotalLabel)
	if r.DeathsLabel != "" && t.Table.HasColumn(r.DeathsLabel) {
		columns = append(columns, r.DeathsLabel)
	}
	return append(columns, r.Locations...)
}

// values returns the counts for columns on one date, 0 where absent
func values(day map[string]int, columns []string) []int {
	out := make([]int, len(columns))
	for i, col := range columns {
		out[i] = day[col]
	}
	return out
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, result)
	case FormatJSON:
		return writeJSON(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeCSV writes each table as a header row, one row per date and a blank line
func writeCSV(w io.Writer, result *OutputResult) error {
	for _, t := range result.Tables {
		columns := result.Columns(t)

		cw := csv.NewWriter(w)
		if err := cw.Write(append([]string{t.Name}, columns...)); err != nil {
			return err
		}

		for _, date := range t.Table.Dates() {
			record := make([]string, 0, len(columns)+1)
			record = append(record, snapshot.FormatDate(date))
			for _, v := range values(t.Table[date], columns) {
				record = append(record, strconv.Itoa(v))
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}

		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

type jsonOutput struct {
	Tables []jsonTable `json:"tables"`
}

type jsonTable struct {
	Name    string    `json:"name"`
	Columns []string  `json:"columns"`
	Rows    []jsonRow `json:"rows"`
}

type jsonRow struct {
	Date   string `json:"date"`
	Values []int  `json:"values"`
}

// writeJSON outputs the tables as one JSON document
func writeJSON(w io.Writer, result *OutputResult) error {
	doc := jsonOutput{Tables: make([]jsonTable, 0, len(result.Tables))}
	for _, t := range result.Tables {
		columns := result.Columns(t)
		jt := jsonTable{
			Name:    t.Name,
			Columns: columns,
			Rows:    make([]jsonRow, 0, len(t.Table)),
		}
		for _, date := range t.Table.Dates() {
			jt.Rows = append(jt.Rows, jsonRow{
				Date:   snapshot.FormatDate(date),
				Values: values(t.Table[date], columns),
			})
		}
		doc.Tables = append(doc.Tables, jt)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
