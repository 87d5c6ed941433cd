package models

import "strings"

// Faction is a player's team.
type Faction string

const (
	FactionEnlightened Faction = "enlightened"
	FactionResistance  Faction = "resistance"
	FactionUnknown     Faction = "unknown"
	// FactionError marks a player whose sources disagree or declare an invalid faction.
	FactionError Faction = "error"
)

// ParseFaction normalizes s. ok is false for values outside the enum.
func ParseFaction(s string) (Faction, bool) {
	switch f := Faction(strings.ToLower(strings.TrimSpace(s))); f {
	case FactionEnlightened, FactionResistance, FactionUnknown, FactionError:
		return f, true
	default:
		return FactionError, false
	}
}

// Anomaly is one of the known anomaly series identifiers.
type Anomaly string

// Anomalies is the canonical order used for every anomaly list.
var Anomalies = []Anomaly{
	"13magnus", "recursion", "interitus", "initio", "helios", "darsana",
	"shonin", "persepolis", "abaddon", "obsidian", "aegis_nova", "via_lux",
}

var anomalyRank = func() map[Anomaly]int {
	m := make(map[Anomaly]int, len(Anomalies))
	for i, a := range Anomalies {
		m[a] = i
	}
	return m
}()

// anomalyBySquashed maps each canonical anomaly with its separators removed
// ("aegisnova") back to the identifier.
var anomalyBySquashed = func() map[string]Anomaly {
	m := make(map[string]Anomaly, len(Anomalies))
	for _, a := range Anomalies {
		m[strings.ReplaceAll(string(a), "_", "")] = a
	}
	return m
}()

func isAnomalySeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '_' || r == '\t'
}

// ParseAnomaly resolves s to a canonical anomaly ignoring case and separators,
// so "Aegis Nova", "aegis-nova" and "13 Magnus" are all known. Unknown values
// are returned lower-cased with separator runs collapsed to "_".
func ParseAnomaly(s string) (Anomaly, bool) {
	fields := strings.FieldsFunc(strings.ToLower(s), isAnomalySeparator)
	if a, ok := anomalyBySquashed[strings.Join(fields, "")]; ok {
		return a, true
	}
	return Anomaly(strings.Join(fields, "_")), false
}

// SortAnomalies returns the known anomalies of list, deduplicated, in canonical order.
func SortAnomalies(list []Anomaly) []Anomaly {
	present := make([]bool, len(Anomalies))
	for _, a := range list {
		if i, ok := anomalyRank[a]; ok {
			present[i] = true
		}
	}
	out := make([]Anomaly, 0, len(list))
	for i, ok := range present {
		if ok {
			out = append(out, Anomalies[i])
		}
	}
	return out
}
