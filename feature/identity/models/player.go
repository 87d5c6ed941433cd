package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// MinLevel and MaxLevel bound a player's level.
const (
	MinLevel = 0
	MaxLevel = 16
)

// Affiliation is a community or event membership.
type Affiliation struct {
	OID   string `json:"oid"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// SourceRef names the sheet a fragment came from.
type SourceRef struct {
	URL string `json:"url"`
	Tag string `json:"tag"`
}

// ExtraValue is either a boolean or a list of strings.
type ExtraValue struct {
	IsBool bool
	Bool   bool
	List   []string
}

// BoolExtra creates a boolean extra.
func BoolExtra(b bool) ExtraValue {
	return ExtraValue{IsBool: true, Bool: b}
}

// ListExtra creates a string-list extra.
func ListExtra(values ...string) ExtraValue {
	return ExtraValue{List: values}
}

func (v ExtraValue) MarshalJSON() ([]byte, error) {
	if v.IsBool {
		return json.Marshal(v.Bool)
	}
	if v.List == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.List)
}

func (v *ExtraValue) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolExtra(b)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("extra value must be a boolean or a list of strings: %w", err)
	}
	*v = ListExtra(list...)
	return nil
}

// Player is the merged, externally visible record.
type Player struct {
	OID       string                `json:"oid"`
	Faction   Faction               `json:"faction"`
	Level     int                   `json:"level"`
	Nickname  string                `json:"nickname"`
	Name      string                `json:"name"`
	Anomaly   []Anomaly             `json:"anomaly"`
	Community []Affiliation         `json:"community"`
	Event     []Affiliation         `json:"event"`
	Extra     map[string]ExtraValue `json:"extra"`
	Sources   []SourceRef           `json:"sources"`
	Errors    []string              `json:"errors"`
}

// Clone returns a deep copy.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	c.Anomaly = slices.Clone(p.Anomaly)
	c.Community = slices.Clone(p.Community)
	c.Event = slices.Clone(p.Event)
	c.Sources = slices.Clone(p.Sources)
	c.Errors = slices.Clone(p.Errors)
	if p.Extra != nil {
		c.Extra = make(map[string]ExtraValue, len(p.Extra))
		for k, v := range p.Extra {
			v.List = slices.Clone(v.List)
			c.Extra[k] = v
		}
	}
	return &c
}

// ExtraKeys returns the extra keys in sorted order.
func (p *Player) ExtraKeys() []string {
	return slices.Sorted(maps.Keys(p.Extra))
}

// MatchOptions selects which optional parts of a player are returned.
type MatchOptions struct {
	ShowAnomalies   bool `json:"show_anomalies"`
	ShowCommunities bool `json:"show_communities"`
	ShowEvents      bool `json:"show_events"`
	ShowExtra       bool `json:"show_extra"`
}

// AllMatchOptions shows everything.
func AllMatchOptions() MatchOptions {
	return MatchOptions{ShowAnomalies: true, ShowCommunities: true, ShowEvents: true, ShowExtra: true}
}

// Filter returns a copy of p with the hidden parts emptied.
func (p *Player) Filter(opts MatchOptions) *Player {
	c := p.Clone()
	if !opts.ShowAnomalies {
		c.Anomaly = []Anomaly{}
	}
	if !opts.ShowCommunities {
		c.Community = []Affiliation{}
	}
	if !opts.ShowEvents {
		c.Event = []Affiliation{}
	}
	if !opts.ShowExtra {
		c.Extra = map[string]ExtraValue{}
	}
	return c
}
