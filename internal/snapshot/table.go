package snapshot

import (
	"sort"
	"time"
)

// Table maps an observation time to the counts per location seen at that time.
// A missing location means "no data", not zero.
type Table map[time.Time]map[string]int

// Tables holds the two tables filled from every snapshot of a run
type Tables struct {
	Cases      Table
	Recoveries Table
}

// NewTables creates empty case and recovery tables
func NewTables() *Tables {
	return &Tables{
		Cases:      make(Table),
		Recoveries: make(Table),
	}
}

// Ensure returns the column map for date, creating it when missing
func (t Table) Ensure(date time.Time) map[string]int {
	day, ok := t[date]
	if !ok {
		day = make(map[string]int)
		t[date] = day
	}
	return day
}

// Set stores count for location on date, replacing any previous value
func (t Table) Set(date time.Time, location string, count int) {
	t.Ensure(date)[location] = count
}

// Dates returns all observation times in ascending order
func (t Table) Dates() []time.Time {
	dates := make([]time.Time, 0, len(t))
	for date := range t {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// HasColumn reports whether any date carries a value for name
func (t Table) HasColumn(name string) bool {
	for _, day := range t {
		if _, ok := day[name]; ok {
			return true
		}
	}
	return false
}
