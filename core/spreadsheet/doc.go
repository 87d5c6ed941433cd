// Package spreadsheet fetches published spreadsheet tabs and turns them into
// header-keyed rows.
//
// A Key names one tab (file key plus gid). Fetchers return the raw grid:
// HTTPFetcher reads the CSV export through an auth.Supplier, MirroredFetcher keeps
// a copy of every successful read in object storage and serves it when the live
// read fails. Accessor collapses concurrent reads of one key, and Sheet holds the
// last good snapshot of a tab together with its row-level errors.
package spreadsheet
