// Package finder searches the player tree.
//
// A search first narrows by the standard fields (name, nickname) using only the
// per-source indexes, then merges the surviving oids and applies the full
// pattern to the merged players.
package finder

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"ingress-identity/feature/identity/models"
	"ingress-identity/feature/identity/sources"
)

// Pattern selects players. Empty fields match everything.
type Pattern struct {
	Name     string           `json:"name,omitempty"`
	Nickname string           `json:"nickname,omitempty"`
	Faction  models.Faction   `json:"faction,omitempty"`
	Anomaly  []models.Anomaly `json:"anomaly,omitempty"`
	// Extra is accepted for compatibility and ignored.
	Extra map[string]string `json:"extra,omitempty"`
}

// Source is what the finder needs from the tree.
type Source interface {
	sources.HasPlayers
	AllOids() []string
}

// Finder runs patterns against a Source.
type Finder struct {
	source Source
}

// New creates a Finder.
func New(source Source) *Finder {
	return &Finder{source: source}
}

// Compile turns a glob into an anchored, case-insensitive regexp. `*` matches any
// run, `?` one character, and whitespace runs match anything.
func Compile(glob string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)^")
	inSpace := false
	for _, r := range strings.TrimSpace(glob) {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteString(".*")
			}
			inSpace = true
			continue
		}
		inSpace = false
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

type compiled struct {
	name, nickname *regexp.Regexp
	faction        models.Faction
	anomaly        []models.Anomaly
}

func compile(p Pattern) compiled {
	c := compiled{faction: models.Faction(strings.ToLower(strings.TrimSpace(string(p.Faction))))}
	if strings.TrimSpace(p.Name) != "" {
		c.name = Compile(p.Name)
	}
	if strings.TrimSpace(p.Nickname) != "" {
		c.nickname = Compile(p.Nickname)
	}
	for _, a := range p.Anomaly {
		norm, _ := models.ParseAnomaly(string(a))
		c.anomaly = append(c.anomaly, norm)
	}
	return c
}

// Find returns the merged players matching p, sorted by oid.
func (f *Finder) Find(p Pattern) []*models.Player {
	c := compile(p)

	oids := f.candidates(c)
	found := []*models.Player{}
	for _, oid := range oids {
		player, ok := f.source.GetPlayer(oid)
		if !ok || !c.matches(player) {
			continue
		}
		found = append(found, player)
	}
	return found
}

// candidates narrows by the standard fields, intersecting per-field results.
func (f *Finder) candidates(c compiled) []string {
	var oids []string
	narrowed := false
	for _, std := range []struct {
		field string
		re    *regexp.Regexp
	}{
		{sources.FieldName, c.name},
		{sources.FieldNickname, c.nickname},
	} {
		if std.re == nil {
			continue
		}
		hits := f.source.FindOids(std.field, std.re)
		if !narrowed {
			oids, narrowed = hits, true
			continue
		}
		oids = intersect(oids, hits)
	}
	if !narrowed {
		return f.source.AllOids()
	}
	return oids
}

func intersect(a, b []string) []string {
	out := []string{}
	for _, v := range a {
		if _, ok := slices.BinarySearch(b, v); ok {
			out = append(out, v)
		}
	}
	return out
}

func (c compiled) matches(p *models.Player) bool {
	if c.name != nil && !c.name.MatchString(p.Name) {
		return false
	}
	if c.nickname != nil && !c.nickname.MatchString(p.Nickname) {
		return false
	}
	if c.faction != "" && p.Faction != c.faction {
		return false
	}
	for _, a := range c.anomaly {
		if !slices.Contains(p.Anomaly, a) {
			return false
		}
	}
	return true
}
