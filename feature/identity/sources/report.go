package sources

import (
	"regexp"
	"strings"

	"ingress-identity/feature/identity/models"
	"ingress-identity/feature/identity/players"
)

var matchAll = regexp.MustCompile(`(?s).*`)

// SourceInfo describes one loaded source.
type SourceInfo struct {
	Tag     string         `json:"tag"`
	Count   int            `json:"count"`
	Version string         `json:"version"`
	Faction models.Faction `json:"faction"`
	URL     string         `json:"url"`
}

// ManifestInfo describes one manifest and its sources.
type ManifestInfo struct {
	Tag     string                `json:"tag"`
	URL     string                `json:"url"`
	Sources map[string]SourceInfo `json:"sources"`
}

// Information describes the tree keyed by manifest key. names overrides the
// manifest display tag, which defaults to the key.
func (r *RootSource) Information(names map[string]string) map[string]ManifestInfo {
	out := make(map[string]ManifestInfo)
	for _, m := range r.Manifests() {
		tag := m.Key()
		if n := strings.TrimSpace(names[m.Key()]); n != "" {
			tag = n
		}
		info := ManifestInfo{Tag: tag, URL: m.URL(), Sources: map[string]SourceInfo{}}
		for _, s := range m.Sources() {
			info.Sources[s.Key()] = SourceInfo{
				Tag:     s.Tag(),
				Count:   s.Count(),
				Version: s.Version(),
				Faction: s.Faction(),
				URL:     s.URL(),
			}
		}
		out[m.Key()] = info
	}
	return out
}

// ErrorsByManifest nests errors as manifest key -> (ManifestErrorsKey | source key) -> messages.
func (r *RootSource) ErrorsByManifest() map[string]map[string][]string {
	out := make(map[string]map[string][]string)
	for _, m := range r.Manifests() {
		nested := map[string][]string{ManifestErrorsKey: m.Errors()}
		for _, s := range m.Sources() {
			nested[s.Key()] = s.Errors()
		}
		out[m.Key()] = nested
	}
	return out
}

// SourcesForExtra lists the sources whose manifest row declares tag with the
// given oid, in manifest order.
func (r *RootSource) SourcesForExtra(tag, oid string) []models.SourceRef {
	tag = strings.ToLower(strings.TrimSpace(tag))
	want := players.AffiliationOID(oid)
	refs := []models.SourceRef{}
	for _, m := range r.Manifests() {
		for _, s := range m.Sources() {
			entry := s.Entry()
			v, ok := entry.ExtraData[tag]
			if ok && players.AffiliationOID(v) == want {
				refs = append(refs, players.SourceRef(entry))
			}
		}
	}
	return refs
}
