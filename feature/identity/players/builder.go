package players

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"ingress-identity/core/spreadsheet"
	"ingress-identity/core/utils"
	"ingress-identity/feature/identity/models"
)

// Special extra keys consumed by the builder.
const (
	ExtraFaction   = "faction"
	ExtraCommunity = "community"
	ExtraEvent     = "event"
	ExtraAnomaly   = "anomaly"
)

// SourceRef returns the provenance of fragments built from m.
func SourceRef(m models.ManifestEntry) models.SourceRef {
	url := m.Key
	if key, err := spreadsheet.ParseKey(m.Key); err == nil {
		url = key.URL()
	}
	return models.SourceRef{URL: url, Tag: m.Tag}
}

// Build combines the manifest defaults of m with the row s into a player fragment.
func Build(m models.ManifestEntry, s models.SourceEntry) *models.Player {
	p := &models.Player{
		OID:       s.OID,
		Faction:   m.Faction,
		Level:     s.Level,
		Nickname:  s.Nickname,
		Name:      s.Name,
		Anomaly:   []models.Anomaly{},
		Community: []models.Affiliation{},
		Event:     []models.Affiliation{},
		Extra:     map[string]models.ExtraValue{},
		Sources:   []models.SourceRef{SourceRef(m)},
		Errors:    slices.Clone(s.Errors),
	}
	if p.Faction == "" {
		p.Faction = models.FactionUnknown
	}
	if p.Errors == nil {
		p.Errors = []string{}
	}

	extra := make(map[string]string, len(m.ExtraData)+len(s.ExtraData))
	maps.Copy(extra, m.ExtraData)
	maps.Copy(extra, s.ExtraData)

	if raw, ok := extra[ExtraFaction]; ok {
		delete(extra, ExtraFaction)
		f, valid := models.ParseFaction(raw)
		if !valid {
			p.Errors = append(p.Errors, fmt.Sprintf("invalid faction '%s'", raw))
		}
		p.Faction = f
	}

	if a, ok := takeAffiliation(extra, ExtraCommunity); ok {
		p.Community = append(p.Community, a)
	}
	if a, ok := takeAffiliation(extra, ExtraEvent); ok {
		p.Event = append(p.Event, a)
	}

	if raw, ok := extra[ExtraAnomaly]; ok {
		delete(extra, ExtraAnomaly)
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			a, known := models.ParseAnomaly(part)
			if !known {
				p.Errors = append(p.Errors, fmt.Sprintf("unknown anomaly '%s'", strings.TrimSpace(part)))
				continue
			}
			p.Anomaly = append(p.Anomaly, a)
		}
		p.Anomaly = models.SortAnomalies(p.Anomaly)
	}

	for k, v := range extra {
		if b, ok := utils.ParseBool(v); ok {
			p.Extra[k] = models.BoolExtra(b)
			continue
		}
		p.Extra[k] = models.ListExtra(v)
	}
	return p
}

// takeAffiliation removes key and its _name/_image siblings from extra.
func takeAffiliation(extra map[string]string, key string) (models.Affiliation, bool) {
	raw, ok := extra[key]
	if !ok {
		return models.Affiliation{}, false
	}
	name, hasName := extra[key+"_name"]
	image := extra[key+"_image"]
	delete(extra, key)
	delete(extra, key+"_name")
	delete(extra, key+"_image")

	oid, embedded, hasColon := strings.Cut(raw, ":")
	oid = strings.TrimSpace(oid)
	switch {
	case hasName:
	case hasColon && strings.TrimSpace(embedded) != "":
		name = strings.TrimSpace(embedded)
	default:
		name = oid
	}
	return models.Affiliation{OID: oid, Name: name, Image: image}, true
}

// AffiliationOID returns the oid part ("value before the first colon") of an
// extra value, normalized for comparisons.
func AffiliationOID(value string) string {
	oid, _, _ := strings.Cut(value, ":")
	return strings.ToLower(strings.TrimSpace(oid))
}
