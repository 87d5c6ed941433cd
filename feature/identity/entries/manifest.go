package entries

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ingress-identity/core/spreadsheet"
	"ingress-identity/core/utils"
	"ingress-identity/feature/identity/models"
)

// Manifest column names.
const (
	ColKey         = "key"
	ColTag         = "tag"
	ColFaction     = "faction"
	ColLastUpdated = "lastupdated"
	ColRefresh     = "refresh"
	ColExtraTags   = "extratags"
)

// ManifestRequired are the columns a manifest row cannot do without.
var ManifestRequired = []string{ColKey, ColLastUpdated}

var manifestColumns = map[string]bool{
	ColKey: true, ColTag: true, ColFaction: true, ColLastUpdated: true, ColRefresh: true, ColExtraTags: true,
}

// DefaultRefresh is used when a manifest row has no usable refresh column.
const DefaultRefresh = time.Hour

// ParseManifest interprets manifest rows. Dummy rows are skipped, and a source key
// declared twice keeps its first row. The returned errors cover duplicates only;
// per-row warnings live on each entry.
func ParseManifest(rows []spreadsheet.Row, defaultRefresh time.Duration) ([]models.ManifestEntry, []string) {
	var (
		entries []models.ManifestEntry
		errs    []string
		seen    = make(map[string]int)
	)
	for _, row := range rows {
		entry, ok := ManifestEntryFromRow(row, defaultRefresh)
		if !ok {
			continue
		}
		if first, dup := seen[entry.Key]; dup {
			errs = append(errs, fmt.Sprintf("row %d: duplicate source key '%s' (first declared at row %d)", row.Number, entry.Key, first))
			continue
		}
		seen[entry.Key] = row.Number
		entries = append(entries, entry)
	}
	return entries, errs
}

// ManifestEntryFromRow interprets one manifest row. ok is false for dummy rows
// and rows without a key.
func ManifestEntryFromRow(row spreadsheet.Row, defaultRefresh time.Duration) (models.ManifestEntry, bool) {
	if defaultRefresh <= 0 {
		defaultRefresh = DefaultRefresh
	}
	key, _ := row.Get(ColKey)
	if key == "" || IsDummy(key) {
		return models.ManifestEntry{}, false
	}

	entry := models.ManifestEntry{
		Key:     key,
		Row:     row.Number,
		Faction: models.FactionUnknown,
		Refresh: defaultRefresh,
	}
	warn := func(format string, args ...any) {
		entry.Errors = append(entry.Errors, fmt.Sprintf("row %d: ", row.Number)+fmt.Sprintf(format, args...))
	}

	entry.LastUpdated, _ = row.Get(ColLastUpdated)

	if tag, ok := row.Get(ColTag); ok {
		entry.Tag = tag
	} else {
		entry.Tag = key
		warn("missing tag for '%s', using key", key)
	}

	if raw, ok := row.Get(ColFaction); ok {
		f, valid := models.ParseFaction(raw)
		if !valid {
			warn("invalid faction '%s'", raw)
		}
		entry.Faction = f
	}

	if raw, ok := row.Get(ColRefresh); ok {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil || hours <= 0 {
			warn("invalid refresh '%s', using %s", raw, defaultRefresh)
		} else {
			entry.Refresh = time.Duration(hours * float64(time.Hour))
		}
	} else {
		warn("missing refresh, using %s", defaultRefresh)
	}

	entry.ExtraData = make(map[string]string)
	if blob, ok := row.Get(ColExtraTags); ok {
		legacy, err := parseExtraTags(blob)
		if err != nil {
			warn("invalid extratags: %v", err)
		}
		for k, v := range legacy {
			entry.ExtraData[k] = v
		}
	}
	for col, v := range row.Values {
		if !manifestColumns[col] {
			entry.ExtraData[col] = v
		}
	}
	return entry, true
}

func parseExtraTags(blob string) (map[string]string, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return map[string]string{}, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || v == nil {
			continue
		}
		switch v.(type) {
		case string, bool, float64:
			out[k] = strings.TrimSpace(utils.ToString(v))
		default:
			b, _ := json.Marshal(v)
			out[k] = string(b)
		}
	}
	return out, nil
}
