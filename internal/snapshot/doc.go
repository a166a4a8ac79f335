// Package snapshot provides the count tables built from archived case-count pages.
//
// A Table maps an observation time (taken from the snapshot's file name) to the
// per-location counts seen on that page. The package normalizes the synonymous
// "total" style columns into one canonical column, computes the shared location
// list used as output columns, and drops snapshots whose per-location values did
// not change since the previously retained one.
package snapshot
