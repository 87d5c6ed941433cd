package checks

import (
	"ingress-identity/feature/identity/sources"
)

// SourcesReport summarizes the health of the player tree.
type SourcesReport struct {
	Manifests       int      `json:"manifests"`
	Sources         int      `json:"sources"`
	FailedManifests []string `json:"failed_manifests"`
	FailedSources   []string `json:"failed_sources"`
	ErrorCount      int      `json:"error_count"`
	Status          string   `json:"status"` // "ok", "warning", "error"
}

// CheckSources inspects every manifest and source of root.
func CheckSources(root *sources.RootSource) *SourcesReport {
	report := &SourcesReport{
		FailedManifests: []string{},
		FailedSources:   []string{},
		Status:          "ok",
	}
	for _, m := range root.Manifests() {
		report.Manifests++
		report.ErrorCount += len(m.Errors())
		if m.State() == sources.StateFailed {
			report.FailedManifests = append(report.FailedManifests, m.Key())
		}
		for _, s := range m.Sources() {
			report.Sources++
			report.ErrorCount += len(s.Errors())
			if s.State() == sources.StateFailed {
				report.FailedSources = append(report.FailedSources, m.Key()+"/"+s.Key())
			}
		}
	}

	switch {
	case len(report.FailedManifests) > 0 || len(report.FailedSources) > 0:
		report.Status = "error"
	case report.ErrorCount > 0:
		report.Status = "warning"
	}
	return report
}
