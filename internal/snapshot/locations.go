package snapshot

import "sort"

// Locations returns every location seen on any date of t, without the
// synthesized total and deaths columns. The slice is sorted so that output
// columns are stable between runs.
func Locations(t Table, r ColumnRules) []string {
	seen := make(map[string]bool)
	for _, day := range t {
		for name := range day {
			if !r.IsSentinel(name) {
				seen[name] = true
			}
		}
	}

	locations := make([]string, 0, len(seen))
	for name := range seen {
		locations = append(locations, name)
	}
	sort.Strings(locations)
	return locations
}
