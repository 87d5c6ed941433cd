package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFaction(t *testing.T) {
	f, ok := ParseFaction(" Enlightened ")
	assert.True(t, ok)
	assert.Equal(t, FactionEnlightened, f)

	f, ok = ParseFaction("smurf")
	assert.False(t, ok)
	assert.Equal(t, FactionError, f)
}

func TestParseAnomaly(t *testing.T) {
	tests := map[string]Anomaly{
		"aegis nova":  "aegis_nova",
		"Aegis  Nova": "aegis_nova",
		"via-lux":     "via_lux",
		" 13MAGNUS ":  "13magnus",
		"13 Magnus":   "13magnus",
		"Aegis_Nova":  "aegis_nova",
		"aegisnova":   "aegis_nova",
		"Via - Lux":   "via_lux",
	}
	for in, want := range tests {
		got, ok := ParseAnomaly(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	got, ok := ParseAnomaly("New  Atlantis")
	assert.False(t, ok)
	assert.Equal(t, Anomaly("new_atlantis"), got)
}

func TestSortAnomalies(t *testing.T) {
	got := SortAnomalies([]Anomaly{"via_lux", "13magnus", "helios", "13magnus", "bogus"})
	assert.Equal(t, []Anomaly{"13magnus", "helios", "via_lux"}, got)
}

func TestExtraValue_JSON(t *testing.T) {
	p := Player{Extra: map[string]ExtraValue{
		"verified": BoolExtra(true),
		"rank":     ListExtra("gold", "silver"),
	}}
	b, err := json.Marshal(p.Extra)
	require.NoError(t, err)
	assert.JSONEq(t, `{"verified":true,"rank":["gold","silver"]}`, string(b))

	var back map[string]ExtraValue
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, p.Extra, back)

	var bad ExtraValue
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
}

func TestPlayer_CloneAndFilter(t *testing.T) {
	p := &Player{
		OID:       "1",
		Anomaly:   []Anomaly{"helios"},
		Community: []Affiliation{{OID: "c", Name: "C"}},
		Event:     []Affiliation{{OID: "e", Name: "E"}},
		Extra:     map[string]ExtraValue{"rank": ListExtra("gold")},
	}

	c := p.Clone()
	c.Extra["rank"].List[0] = "silver"
	c.Anomaly[0] = "initio"
	assert.Equal(t, "gold", p.Extra["rank"].List[0])
	assert.Equal(t, Anomaly("helios"), p.Anomaly[0])

	f := p.Filter(MatchOptions{ShowCommunities: true})
	assert.Empty(t, f.Anomaly)
	assert.Len(t, f.Community, 1)
	assert.Empty(t, f.Event)
	assert.Empty(t, f.Extra)
	assert.Len(t, p.Event, 1)
}
