package models

import "time"

// ManifestEntry is one source declared by a manifest sheet.
type ManifestEntry struct {
	Key         string            `json:"key"`
	Tag         string            `json:"tag"`
	Faction     Faction           `json:"faction"`
	LastUpdated string            `json:"lastupdated"`
	Refresh     time.Duration     `json:"refresh"`
	ExtraData   map[string]string `json:"extra,omitempty"`
	Errors      []string          `json:"errors,omitempty"`
	Row         int               `json:"row"`
}

// SourceEntry is one player row of a source sheet.
type SourceEntry struct {
	OID       string            `json:"oid"`
	Name      string            `json:"name,omitempty"`
	Nickname  string            `json:"nickname,omitempty"`
	Level     int               `json:"level"`
	ExtraData map[string]string `json:"extra,omitempty"`
	Errors    []string          `json:"errors,omitempty"`
	Row       int               `json:"row"`
}
