// Package config loads runtime settings and the column classification rules.
//
// Runtime settings come from CORONA_* environment variables (optionally read
// from a .env file). Column rules have built-in defaults matching the archived
// Lower Saxony county pages and can be overridden by a YAML rules file.
package config
