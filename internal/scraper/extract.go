package scraper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/pfrederiksen/corona-scraper/internal/snapshot"
)

// RowOutcome describes what a row contributed
type RowOutcome string

const (
	OutcomeObserved    RowOutcome = "observed"    // every count parsed
	OutcomePartial     RowOutcome = "partial"     // case or recovery count parsed, not both
	OutcomeUnparseable RowOutcome = "unparseable" // no count parsed
	OutcomeUnknown     RowOutcome = "unknown"     // single-cell row
	OutcomeSkipped     RowOutcome = "skipped"     // empty or too wide
)

// ExtractRow records one table row for date.
//
// Two cells are a location and its case count; a third cell is the recovery
// count. Each count is parsed on its own, so a bad recovery cell never discards
// a good case count. Single-cell rows are reported on the diagnostics writer.
func (s *Scraper) ExtractRow(tables *snapshot.Tables, date time.Time, cells []string) RowOutcome {
	switch len(cells) {
	case 0:
		return OutcomeSkipped
	case 1:
		fmt.Fprintf(s.diag, "Unknown: %s\n", cells[0])
		return OutcomeUnknown
	case 2, 3:
	default:
		return OutcomeSkipped
	}

	location := s.locationName(cells[0])
	parsed, wanted := 0, 1

	// the date is recorded even when no count parses
	tables.Cases.Ensure(date)
	if n, ok := parseCount(cells[1]); ok {
		tables.Cases.Set(date, location, n)
		parsed++
	}

	if len(cells) == 3 {
		wanted++
		tables.Recoveries.Ensure(date)
		if n, ok := parseCount(cells[2]); ok {
			tables.Recoveries.Set(date, location, n)
			parsed++
		}
	}

	switch parsed {
	case wanted:
		return OutcomeObserved
	case 0:
		return OutcomeUnparseable
	default:
		return OutcomePartial
	}
}

// locationName normalizes a location cell: Unicode NFC, collapsed whitespace
// and administrative prefixes removed.
func (s *Scraper) locationName(cell string) string {
	name := cleanText(norm.NFC.String(cell))
	for _, prefix := range s.prefixes {
		if rest, ok := strings.CutPrefix(name, prefix); ok && (rest == "" || rest[0] == ' ') {
			name = strings.TrimSpace(rest)
		}
	}
	return name
}

// parseCount parses a non-negative decimal count
func parseCount(cell string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// cleanText collapses runs of whitespace (including non-breaking spaces) into single spaces
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
