package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/pfrederiksen/corona-scraper/internal/snapshot"
)

// Rules classify the columns found on the archived pages
type Rules struct {
	TotalLabel    string   `yaml:"total_label" validate:"required"`
	DeathsLabel   string   `yaml:"deaths_label" validate:"required,nefield=TotalLabel"`
	TotalKeywords []string `yaml:"total_keywords" validate:"min=1,dive,required"`
	DeathsAliases []string `yaml:"deaths_aliases" validate:"dive,required"`

	// Sum the locations on dates whose page has no total row.
	DeriveMissingTotal bool `yaml:"derive_missing_total"`

	// Columns removed from both tables before totaling.
	DropColumns []string `yaml:"drop_columns"`
	// Columns removed from the recoveries table only.
	DropRecoveryColumns []string `yaml:"drop_recovery_columns"`

	// Administrative prefixes stripped from location names.
	LocationPrefixes []string `yaml:"location_prefixes" validate:"dive,required"`

	// CSS selector of the data table in the nested page layout.
	NestedSelector string `yaml:"nested_selector" validate:"required"`
}

// DefaultRules returns the rules for the archived county pages
func DefaultRules() *Rules {
	return &Rules{
		TotalLabel:    "Total",
		DeathsLabel:   "Deaths",
		TotalKeywords: []string{"total", "gesamt"},
		DeathsAliases: []string{"Todesfälle"},

		DeriveMissingTotal: true,

		DropColumns: []string{
			"Active cases",
			"Current total minus recoveries",
			"Aktuelle Covid-19-Fälle",
			"Aktuelle Gesamtzahl (Zahl der bestätigten Fälle abzüglich der Genesenen)",
		},
		DropRecoveryColumns: []string{"Todesfälle", "Deaths"},
		LocationPrefixes:    []string{"Stadt", "Samtgemeinde", "Einheitsgemeinde"},
		NestedSelector:      "table table",
	}
}

// LoadRules returns the default rules overlaid with the YAML file at path.
// An empty path yields the defaults. Keys missing from the file keep their
// default value; lists present in the file replace the default list.
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading rules: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, rules); err != nil {
			return nil, fmt.Errorf("parsing rules %s: %w", path, err)
		}
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Validate checks that the rules can produce a well-formed table
func (r *Rules) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("rules validation failed: %w", err)
	}
	return nil
}

// CasesColumns returns the column rules for the cases table
func (r *Rules) CasesColumns() snapshot.ColumnRules {
	return r.columns(r.DropColumns)
}

// RecoveriesColumns returns the column rules for the recoveries table
func (r *Rules) RecoveriesColumns() snapshot.ColumnRules {
	drop := make([]string, 0, len(r.DropColumns)+len(r.DropRecoveryColumns))
	drop = append(drop, r.DropColumns...)
	drop = append(drop, r.DropRecoveryColumns...)
	return r.columns(drop)
}

func (r *Rules) columns(drop []string) snapshot.ColumnRules {
	return snapshot.ColumnRules{
		TotalLabel:    r.TotalLabel,
		DeathsLabel:   r.DeathsLabel,
		TotalKeywords: r.TotalKeywords,
		DeathsAliases: r.DeathsAliases,
		Drop:          drop,
		DeriveTotal:   r.DeriveMissingTotal,
	}
}
