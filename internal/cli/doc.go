// Package cli implements the command-line interface for corona-scraper.
//
// The cli package provides the Cobra root command that reads archived snapshot
// pages, runs the normalize/deduplicate pipeline over the resulting case and
// recovery tables, and writes them to stdout as CSV (default) or JSON.
package cli
