package entries

import (
	"regexp"

	"ingress-identity/core/spreadsheet"
	"ingress-identity/core/utils"
	"ingress-identity/feature/identity/models"
)

// Source column names.
const (
	ColOID      = "oid"
	ColName     = "name"
	ColNickname = "nickname"
	ColLevel    = "level"
)

// SourceRequired are the columns a source row cannot do without.
var SourceRequired = []string{ColOID}

var dummyPattern = regexp.MustCompile(`^9+$`)

// IsDummy reports whether s is an all-nines placeholder.
func IsDummy(s string) bool {
	return dummyPattern.MatchString(s)
}

// ParseSource interprets source rows, dropping dummy rows.
func ParseSource(rows []spreadsheet.Row) []models.SourceEntry {
	entries := make([]models.SourceEntry, 0, len(rows))
	for _, row := range rows {
		if entry, ok := SourceEntryFromRow(row); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// SourceEntryFromRow interprets one source row. ok is false for dummy rows and
// rows without an oid.
func SourceEntryFromRow(row spreadsheet.Row) (models.SourceEntry, bool) {
	oid, _ := row.Get(ColOID)
	if oid == "" || IsDummy(oid) {
		return models.SourceEntry{}, false
	}

	entry := models.SourceEntry{
		OID:       oid,
		Row:       row.Number,
		ExtraData: make(map[string]string),
	}
	entry.Name, _ = row.Get(ColName)
	entry.Nickname, _ = row.Get(ColNickname)
	if raw, ok := row.Get(ColLevel); ok {
		entry.Level = utils.Clamp(utils.ToInt(raw), models.MinLevel, models.MaxLevel)
	}

	for col, v := range row.Values {
		switch col {
		case ColOID, ColName, ColNickname, ColLevel:
		default:
			entry.ExtraData[col] = v
		}
	}
	return entry, true
}
