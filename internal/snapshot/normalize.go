package snapshot

import "strings"

// ColumnRules classifies the columns of one table.
//
// Keywords and labels are data, not code, so pages in another language only
// need a different rule set.
type ColumnRules struct {
	TotalLabel    string   // canonical total column
	DeathsLabel   string   // canonical deaths column
	TotalKeywords []string // lower-case substrings marking a total-style column
	DeathsAliases []string // source names renamed to DeathsLabel
	Drop          []string // noise columns removed before totaling

	// DeriveTotal fills the total from the location columns on dates that
	// carry no total-style column at all.
	DeriveTotal bool
}

// IsTotalColumn reports whether name is the total label, blank, or contains a total keyword
func (r ColumnRules) IsTotalColumn(name string) bool {
	if name == r.TotalLabel || strings.TrimSpace(name) == "" {
		return true
	}
	lower := strings.ToLower(name)
	for _, kw := range r.TotalKeywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// IsSentinel reports whether name is one of the synthesized columns rather than a location
func (r ColumnRules) IsSentinel(name string) bool {
	return name == r.TotalLabel || name == r.DeathsLabel
}

// Normalize rewrites every date of t in place: deaths aliases are renamed,
// dropped columns are removed and all total-style columns collapse into a
// single TotalLabel entry holding their sum. A date without any total-style
// column gets 0, or the sum of its locations when DeriveTotal is set.
func Normalize(t Table, r ColumnRules) {
	for _, day := range t {
		normalizeDay(day, r)
	}
}

func normalizeDay(day map[string]int, r ColumnRules) {
	if r.DeathsLabel != "" {
		for _, alias := range r.DeathsAliases {
			if v, ok := day[alias]; ok && alias != r.DeathsLabel {
				delete(day, alias)
				day[r.DeathsLabel] = v
			}
		}
	}

	for _, name := range r.Drop {
		delete(day, name)
	}

	total, matched := 0, false
	for name, v := range day {
		if r.IsTotalColumn(name) {
			total += v
			matched = true
			delete(day, name)
		}
	}

	if !matched && r.DeriveTotal {
		for name, v := range day {
			if !r.IsSentinel(name) {
				total += v
			}
		}
	}
	day[r.TotalLabel] = total
}
