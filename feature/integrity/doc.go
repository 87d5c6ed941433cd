// Package integrity validates the infrastructure behind the identity service.
//
// # Checks Provided
//
//   - Storage: the snapshot bucket and its snapshots/ folder exist (supports fixing).
//   - Database: the settings table carries every expected column.
//   - Sources: which manifests and sources failed to load and how many row errors were collected.
//
// Storage and database checks report "disabled" when the subsystem is not configured.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/database : Runs the settings schema check.
//   - GET /integrity/sources : Reports source health.
package integrity
