package snapshot

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// OutputLayout is the date format used in emitted tables (day.month.year hour:minute)
const OutputLayout = "02.01.2006 15:04"

// ErrNoTimestamp is returned when a file name carries no "+"-terminated timestamp
var ErrNoTimestamp = errors.New("no timestamp in file name")

// fileLayouts are tried in order against the normalized file-name stamp
var fileLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseFileTime extracts the observation time from a snapshot file name.
//
// Archived pages are named like "2020-03-28T14_05_00+01_00.html": everything
// before the last "+" is the local wall-clock time, with "T" separating date
// from time and "_" standing in for ":". The zone offset after "+" is ignored,
// so the returned time keeps the page's wall clock (in UTC).
func ParseFileTime(path string) (time.Time, error) {
	name := filepath.Base(path)

	idx := strings.LastIndex(name, "+")
	if idx < 0 {
		return time.Time{}, fmt.Errorf("%s: %w", name, ErrNoTimestamp)
	}

	stamp := strings.NewReplacer("T", " ", "_", ":").Replace(name[:idx])

	for _, layout := range fileLayouts {
		t, err := time.Parse(layout, stamp)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%s: unparseable timestamp %q", name, stamp)
}

// FormatDate renders an observation time for output
func FormatDate(t time.Time) string {
	return t.Format(OutputLayout)
}
