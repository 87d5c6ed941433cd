// Package entries interprets spreadsheet rows as manifest and source entries.
//
// Manifest rows declare source sheets (key, tag, faction, version token, refresh
// interval); source rows declare players. Columns outside the fixed set of each
// kind are kept as extra data for the player builder. Problems never abort a
// load: a bad value is defaulted or dropped and a message is recorded.
package entries
