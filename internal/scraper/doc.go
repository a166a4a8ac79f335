// Package scraper extracts per-location case and recovery counts from archived
// county pages.
//
// Each snapshot file is parsed with goquery, its data table is located with one
// of two selection strategies (the older pages keep the counts in the first
// <tbody>, newer ones nest the data table inside a layout table), and every row
// is folded into the case and recovery tables under the file's timestamp.
package scraper
