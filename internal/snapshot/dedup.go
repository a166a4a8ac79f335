package snapshot

import "time"

// Dedup removes dates whose values for every location equal those of the last
// retained date and returns the removed dates in ascending order.
//
// Only the given locations are compared; a location missing on both dates
// counts as equal, missing on one side as different. An empty table is left
// untouched.
func Dedup(t Table, locations []string) []time.Time {
	dates := t.Dates()
	if len(dates) == 0 {
		return nil
	}

	var duplicates []time.Time
	last := dates[0]
	for _, current := range dates[1:] {
		if sameValues(t[last], t[current], locations) {
			duplicates = append(duplicates, current)
			continue
		}
		last = current
	}

	for _, date := range duplicates {
		delete(t, date)
	}
	return duplicates
}

// sameValues compares two dates' columns restricted to locations
func sameValues(a, b map[string]int, locations []string) bool {
	for _, location := range locations {
		va, okA := a[location]
		vb, okB := b[location]
		if okA != okB || va != vb {
			return false
		}
	}
	return true
}
