package players

import (
	"fmt"
	"slices"

	"ingress-identity/feature/identity/models"
)

// Merge folds fragments of one identity left to right. The inputs are not
// modified. It returns nil when called without players.
func Merge(players ...*models.Player) *models.Player {
	if len(players) == 0 {
		return nil
	}
	out := players[0].Clone()
	for _, p := range players[1:] {
		mergeInto(out, p)
	}
	out.Anomaly = models.SortAnomalies(out.Anomaly)
	return out
}

func mergeInto(dst, src *models.Player) {
	mergeFaction(dst, src.Faction)

	dst.Level = max(dst.Level, src.Level)
	if src.Nickname != "" {
		dst.Nickname = src.Nickname
	}
	if src.Name != "" {
		dst.Name = src.Name
	}

	dst.Anomaly = append(dst.Anomaly, src.Anomaly...)
	dst.Community = append(dst.Community, src.Community...)
	dst.Event = append(dst.Event, src.Event...)

	if dst.Extra == nil {
		dst.Extra = make(map[string]models.ExtraValue, len(src.Extra))
	}
	for _, k := range src.ExtraKeys() {
		mergeExtra(dst, k, src.Extra[k])
	}

	dst.Sources = append(dst.Sources, src.Sources...)
	dst.Errors = append(dst.Errors, src.Errors...)
}

func mergeFaction(dst *models.Player, f models.Faction) {
	switch {
	case dst.Faction == models.FactionError:
	case f == "" || f == models.FactionUnknown || f == dst.Faction:
	case dst.Faction == "" || dst.Faction == models.FactionUnknown:
		dst.Faction = f
	case f == models.FactionError:
		dst.Faction = models.FactionError
	default:
		dst.Errors = append(dst.Errors, fmt.Sprintf("conflicting factions: %s and %s", dst.Faction, f))
		dst.Faction = models.FactionError
	}
}

func mergeExtra(dst *models.Player, key string, v models.ExtraValue) {
	cur, ok := dst.Extra[key]
	if !ok {
		v.List = slices.Clone(v.List)
		dst.Extra[key] = v
		return
	}
	if cur.IsBool != v.IsBool {
		dst.Errors = append(dst.Errors, fmt.Sprintf("conflicting types for extra '%s'", key))
		return
	}
	if cur.IsBool {
		dst.Extra[key] = models.BoolExtra(cur.Bool || v.Bool)
		return
	}

	list := slices.Clone(cur.List)
	seen := make(map[string]struct{}, len(list)+len(v.List))
	for _, item := range list {
		seen[AffiliationOID(item)] = struct{}{}
	}
	for _, item := range v.List {
		norm := AffiliationOID(item)
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		list = append(list, item)
	}
	dst.Extra[key] = models.ListExtra(list...)
}

// Validate reports structural problems of a merged player. It is a checking
// utility and is not applied by Merge.
func Validate(p *models.Player) []string {
	var problems []string
	if p.OID == "" {
		problems = append(problems, "missing oid")
	}
	if p.Nickname == "" {
		problems = append(problems, "missing nickname")
	}
	if p.Faction == "" {
		problems = append(problems, "missing faction")
	}
	if p.Level < models.MinLevel || p.Level > models.MaxLevel {
		problems = append(problems, fmt.Sprintf("level %d out of range", p.Level))
	}
	return problems
}
