// Package settings stores the configuration the identity service consumes but
// does not own: the ordered list of manifest keys, per-manifest display names and
// boolean feature toggles.
//
// Values live behind the Store interface (a GORM table or an in-memory map) and are
// read through Cached, a short-lived TTL cache so repeated lookups during a request
// burst do not hit the database. Settings layers typed accessors on top.
package settings
