// Package players builds player fragments from manifest and source entries and
// merges fragments that share an oid into a single record.
package players
