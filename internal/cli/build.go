package cli

import (
	"github.com/pfrederiksen/corona-scraper/internal/config"
	"github.com/pfrederiksen/corona-scraper/internal/snapshot"
)

// BuildResult normalizes both tables, derives the location columns from the
// cases table and removes unchanged dates from each table.
func BuildResult(tables *snapshot.Tables, rules *config.Rules) *OutputResult {
	casesRules := rules.CasesColumns()
	snapshot.Normalize(tables.Cases, casesRules)
	snapshot.Normalize(tables.Recoveries, rules.RecoveriesColumns())

	// recoveries share the cases columns even where they never mention a location
	locations := snapshot.Locations(tables.Cases, casesRules)

	result := &OutputResult{
		TotalLabel:  rules.TotalLabel,
		DeathsLabel: rules.DeathsLabel,
		Locations:   locations,
	}
	for _, t := range []struct {
		name  string
		table snapshot.Table
	}{
		{"Cases", tables.Cases},
		{"Recoveries", tables.Recoveries},
	} {
		result.Tables = append(result.Tables, TableResult{
			Name:    t.name,
			Table:   t.table,
			Dropped: snapshot.Dedup(t.table, locations),
		})
	}
	return result
}
