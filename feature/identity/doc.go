// Package identity serves player metadata drawn from manifest and source
// spreadsheets.
//
// The Service is the request/reply surface: player lookups, searches, provenance
// of community and event tags, tree information and error reports, plus the
// administrative operations (reload, add or remove a manifest, clear caches) and
// raw access to the persisted settings. The Handler exposes it over HTTP and
// Feature registers it with the core loader.
package identity
