package players

import (
	"testing"

	"ingress-identity/feature/identity/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manifest(extra map[string]string) models.ManifestEntry {
	return models.ManifestEntry{
		Key:       "abc?gid=4",
		Tag:       "Main",
		Faction:   models.FactionEnlightened,
		ExtraData: extra,
	}
}

func TestBuild_Basics(t *testing.T) {
	p := Build(manifest(nil), models.SourceEntry{OID: "1", Name: "John", Nickname: "jdoe", Level: 9})
	require.NotNil(t, p)

	assert.Equal(t, "1", p.OID)
	assert.Equal(t, models.FactionEnlightened, p.Faction)
	assert.Equal(t, 9, p.Level)
	assert.Equal(t, []models.SourceRef{{URL: "https://docs.google.com/spreadsheets/d/abc/edit#gid=4", Tag: "Main"}}, p.Sources)
	assert.Empty(t, p.Errors)
	assert.NotNil(t, p.Anomaly)
	assert.NotNil(t, p.Extra)
}

func TestBuild_SourceFactionOverrides(t *testing.T) {
	p := Build(manifest(nil), models.SourceEntry{OID: "1", ExtraData: map[string]string{"faction": "resistance"}})
	assert.Equal(t, models.FactionResistance, p.Faction)
	assert.NotContains(t, p.Extra, "faction")

	p = Build(manifest(nil), models.SourceEntry{OID: "1", ExtraData: map[string]string{"faction": "blue"}})
	assert.Equal(t, models.FactionError, p.Faction)
	assert.Equal(t, []string{"invalid faction 'blue'"}, p.Errors)
}

func TestBuild_Affiliations(t *testing.T) {
	tests := []struct {
		name  string
		extra map[string]string
		want  models.Affiliation
	}{
		{"embedded name", map[string]string{"community": "c1:Club One"}, models.Affiliation{OID: "c1", Name: "Club One"}},
		{"explicit name wins", map[string]string{"community": "c1:Embedded", "community_name": "Explicit", "community_image": "http://img"}, models.Affiliation{OID: "c1", Name: "Explicit", Image: "http://img"}},
		{"no colon", map[string]string{"community": "club"}, models.Affiliation{OID: "club", Name: "club"}},
		{"empty name after colon", map[string]string{"community": "c2:"}, models.Affiliation{OID: "c2", Name: "c2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Build(manifest(tt.extra), models.SourceEntry{OID: "1"})
			assert.Equal(t, []models.Affiliation{tt.want}, p.Community)
			assert.Empty(t, p.Extra)
		})
	}
}

func TestBuild_SourceExtraWins(t *testing.T) {
	p := Build(
		manifest(map[string]string{"event": "e1:Manifest Event", "rank": "gold"}),
		models.SourceEntry{OID: "1", ExtraData: map[string]string{"event": "e2:Row Event"}},
	)
	assert.Equal(t, []models.Affiliation{{OID: "e2", Name: "Row Event"}}, p.Event)
	assert.Equal(t, models.ListExtra("gold"), p.Extra["rank"])
}

func TestBuild_Anomaly(t *testing.T) {
	p := Build(manifest(nil), models.SourceEntry{OID: "1", ExtraData: map[string]string{"anomaly": "Via Lux, aegis nova, atlantis"}})
	assert.Equal(t, []models.Anomaly{"aegis_nova", "via_lux"}, p.Anomaly)
	assert.Equal(t, []string{"unknown anomaly 'atlantis'"}, p.Errors)
	assert.NotContains(t, p.Extra, "anomaly")
}

func TestBuild_Extras(t *testing.T) {
	p := Build(manifest(nil), models.SourceEntry{OID: "1", ExtraData: map[string]string{
		"verified": "TRUE",
		"banned":   "false",
		"rank":     "gold",
	}})
	assert.Equal(t, models.BoolExtra(true), p.Extra["verified"])
	assert.Equal(t, models.BoolExtra(false), p.Extra["banned"])
	assert.Equal(t, models.ListExtra("gold"), p.Extra["rank"])
}

func player(faction models.Faction, level int) *models.Player {
	return &models.Player{OID: "1", Faction: faction, Level: level, Extra: map[string]models.ExtraValue{}}
}

func TestMerge_Faction(t *testing.T) {
	same := Merge(player(models.FactionResistance, 1), player(models.FactionResistance, 2), player(models.FactionResistance, 3))
	assert.Equal(t, models.FactionResistance, same.Faction)
	assert.Empty(t, same.Errors)

	conflict := Merge(player(models.FactionEnlightened, 1), player(models.FactionResistance, 1))
	assert.Equal(t, models.FactionError, conflict.Faction)
	assert.NotEmpty(t, conflict.Errors)

	unknown := Merge(player(models.FactionUnknown, 1), player(models.FactionResistance, 1), player(models.FactionUnknown, 1))
	assert.Equal(t, models.FactionResistance, unknown.Faction)

	sticky := Merge(player(models.FactionError, 1), player(models.FactionEnlightened, 1))
	assert.Equal(t, models.FactionError, sticky.Faction)
}

func TestMerge_Fields(t *testing.T) {
	a := player(models.FactionUnknown, 5)
	a.Nickname, a.Name = "old", "Old Name"
	a.Anomaly = []models.Anomaly{"via_lux"}
	a.Community = []models.Affiliation{{OID: "c", Name: "C"}}
	a.Sources = []models.SourceRef{{URL: "u1", Tag: "t1"}}

	b := player(models.FactionUnknown, 3)
	b.Nickname = "new"
	b.Anomaly = []models.Anomaly{"13magnus", "via_lux"}
	b.Community = []models.Affiliation{{OID: "c", Name: "C"}}
	b.Sources = []models.SourceRef{{URL: "u2", Tag: "t2"}}

	m := Merge(a, b)
	assert.Equal(t, 5, m.Level)
	assert.Equal(t, "new", m.Nickname)
	assert.Equal(t, "Old Name", m.Name)
	assert.Equal(t, []models.Anomaly{"13magnus", "via_lux"}, m.Anomaly)
	assert.Len(t, m.Community, 2)
	assert.Equal(t, []models.SourceRef{{URL: "u1", Tag: "t1"}, {URL: "u2", Tag: "t2"}}, m.Sources)

	// inputs are untouched
	assert.Equal(t, "old", a.Nickname)
	assert.Len(t, a.Community, 1)
}

func TestMerge_Extra(t *testing.T) {
	withRank := func(v ...string) *models.Player {
		p := player(models.FactionUnknown, 0)
		p.Extra["rank"] = models.ListExtra(v...)
		return p
	}

	assert.Equal(t, []string{"gold"}, Merge(withRank("gold"), withRank("gold")).Extra["rank"].List)
	assert.Equal(t, []string{"gold", "silver"}, Merge(withRank("gold"), withRank("silver")).Extra["rank"].List)
	assert.Equal(t, []string{"gold:First"}, Merge(withRank("gold:First"), withRank(" Gold:Second")).Extra["rank"].List)

	a := player(models.FactionUnknown, 0)
	a.Extra["verified"] = models.BoolExtra(false)
	b := player(models.FactionUnknown, 0)
	b.Extra["verified"] = models.BoolExtra(true)
	assert.Equal(t, models.BoolExtra(true), Merge(a, b).Extra["verified"])

	c := player(models.FactionUnknown, 0)
	c.Extra["verified"] = models.ListExtra("yes")
	m := Merge(a, c)
	assert.Equal(t, models.BoolExtra(false), m.Extra["verified"])
	assert.Equal(t, []string{"conflicting types for extra 'verified'"}, m.Errors)
}

func TestMerge_Empty(t *testing.T) {
	assert.Nil(t, Merge())
}

func TestValidate(t *testing.T) {
	assert.Empty(t, Validate(&models.Player{OID: "1", Nickname: "n", Faction: models.FactionUnknown, Level: 16}))

	problems := Validate(&models.Player{Level: 17})
	assert.ElementsMatch(t, []string{"missing oid", "missing nickname", "missing faction", "level 17 out of range"}, problems)
}
