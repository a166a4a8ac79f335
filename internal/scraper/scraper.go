package scraper

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/corona-scraper/internal/logger"
	"github.com/pfrederiksen/corona-scraper/internal/snapshot"
)

// Layout selects how the data table is located in a page
type Layout string

const (
	LayoutAuto   Layout = "auto"   // nested, then tbody
	LayoutTBody  Layout = "tbody"  // first <tbody> in the document
	LayoutNested Layout = "nested" // first match of the nested-table selector
)

// DefaultNestedSelector matches a data table nested inside a layout table
const DefaultNestedSelector = "table table"

// ErrNoTable is returned when no strategy finds a table with rows
var ErrNoTable = errors.New("no data table found")

// ParseLayout validates a layout name
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(s); l {
	case LayoutAuto, LayoutTBody, LayoutNested:
		return l, nil
	default:
		return "", fmt.Errorf("invalid layout: %s (must be 'auto', 'tbody' or 'nested')", s)
	}
}

// Options configure a Scraper. Zero values fall back to defaults.
type Options struct {
	Layout         Layout
	NestedSelector string
	Prefixes       []string  // administrative prefixes stripped from location names
	Diagnostics    io.Writer // receives "Unknown: " lines, stdout by default
	Metrics        *logger.Metrics
	Logger         *logger.Logger
}

// Scraper turns snapshot files into case and recovery tables
type Scraper struct {
	layout         Layout
	nestedSelector string
	prefixes       []string
	diag           io.Writer
	metrics        *logger.Metrics
	log            *logger.Logger
}

// New creates a new Scraper instance
func New(opts Options) *Scraper {
	s := &Scraper{
		layout:         opts.Layout,
		nestedSelector: opts.NestedSelector,
		prefixes:       opts.Prefixes,
		diag:           opts.Diagnostics,
		metrics:        opts.Metrics,
		log:            opts.Logger,
	}
	if s.layout == "" {
		s.layout = LayoutAuto
	}
	if s.nestedSelector == "" {
		s.nestedSelector = DefaultNestedSelector
	}
	if s.diag == nil {
		s.diag = os.Stdout
	}
	if s.metrics == nil {
		s.metrics = logger.NewMetrics()
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	return s
}

// ParseFiles folds every file, in order, into fresh tables.
// Any unreadable file, bad file name or page without a data table aborts the run.
func (s *Scraper) ParseFiles(paths []string) (*snapshot.Tables, error) {
	tables := snapshot.NewTables()
	for _, path := range paths {
		if err := s.ParseFile(tables, path); err != nil {
			return nil, err
		}
	}
	return tables, nil
}

// ParseFile folds one snapshot file into tables under the time in its name
func (s *Scraper) ParseFile(tables *snapshot.Tables, path string) error {
	date, err := snapshot.ParseFileTime(path)
	if err != nil {
		return fmt.Errorf("parsing file name: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	if err := s.ParseSnapshot(tables, date, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	s.metrics.FilesProcessed.Inc()
	return nil
}

// ParseSnapshot parses one HTML page and records its rows for date
func (s *Scraper) ParseSnapshot(tables *snapshot.Tables, date time.Time, r io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	rows, strategy, err := s.findRows(doc)
	if err != nil {
		return err
	}

	counted := 0
	rows.Each(func(i int, row *goquery.Selection) {
		outcome := s.ExtractRow(tables, date, rowCells(row))
		s.metrics.Rows.WithLabelValues(string(outcome)).Inc()
		switch outcome {
		case OutcomeObserved, OutcomePartial:
			counted++
		case OutcomeSkipped:
			s.log.Debug("Row skipped", logger.Fields{"row": i, "cells": row.Children().Length()})
		}
	})

	if counted == 0 {
		s.log.Warn("Snapshot has no counts", logger.Fields{
			"date":     snapshot.FormatDate(date),
			"strategy": string(strategy),
		})
	}

	s.log.Debug("Snapshot parsed", logger.Fields{
		"date":     snapshot.FormatDate(date),
		"strategy": string(strategy),
		"rows":     rows.Length(),
	})
	return nil
}

// findRows tries the selection strategies for the configured layout in order
// and returns the rows of the first table that has any.
func (s *Scraper) findRows(doc *goquery.Document) (*goquery.Selection, Layout, error) {
	strategies := []Layout{s.layout}
	if s.layout == LayoutAuto {
		strategies = []Layout{LayoutNested, LayoutTBody}
	}

	for _, strategy := range strategies {
		var rows *goquery.Selection
		switch strategy {
		case LayoutNested:
			rows = tableRows(doc.Find(s.nestedSelector).First())
		case LayoutTBody:
			rows = doc.Find("tbody").First().ChildrenFiltered("tr")
		}
		if rows != nil && rows.Length() > 0 {
			return rows, strategy, nil
		}
	}

	return nil, "", ErrNoTable
}

// tableRows returns the body rows of a <table>, or the direct rows of any
// other matched element such as a <tbody>.
func tableRows(sel *goquery.Selection) *goquery.Selection {
	if goquery.NodeName(sel) == "table" {
		sel = sel.ChildrenFiltered("tbody")
	}
	return sel.ChildrenFiltered("tr")
}

// rowCells returns the whitespace-normalized text of each cell in a row
func rowCells(row *goquery.Selection) []string {
	cells := row.ChildrenFiltered("td, th")
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, cleanText(cell.Text()))
	})
	return texts
}
