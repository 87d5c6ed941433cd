package entries

import (
	"testing"
	"time"

	"ingress-identity/core/spreadsheet"
	"ingress-identity/feature/identity/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(n int, values map[string]string) spreadsheet.Row {
	return spreadsheet.Row{Number: n, Values: values}
}

func TestManifestEntryFromRow(t *testing.T) {
	entry, ok := ManifestEntryFromRow(row(2, map[string]string{
		"key":         "abc?gid=1",
		"tag":         "Main",
		"faction":     "Resistance",
		"lastupdated": "v7",
		"refresh":     "0.5",
		"community":   "c1:Club",
		"extratags":   `{"event": "e1", "community": "old", "verified": true}`,
	}), time.Hour)
	require.True(t, ok)

	assert.Equal(t, "abc?gid=1", entry.Key)
	assert.Equal(t, "Main", entry.Tag)
	assert.Equal(t, models.FactionResistance, entry.Faction)
	assert.Equal(t, "v7", entry.LastUpdated)
	assert.Equal(t, 30*time.Minute, entry.Refresh)
	assert.Equal(t, map[string]string{"community": "c1:Club", "event": "e1", "verified": "true"}, entry.ExtraData)
	assert.Empty(t, entry.Errors)
}

func TestManifestEntryFromRow_Defaults(t *testing.T) {
	entry, ok := ManifestEntryFromRow(row(3, map[string]string{
		"key":         "abc",
		"lastupdated": "1",
		"faction":     "purple",
		"extratags":   "{not json",
	}), 2*time.Hour)
	require.True(t, ok)

	assert.Equal(t, "abc", entry.Tag)
	assert.Equal(t, models.FactionError, entry.Faction)
	assert.Equal(t, 2*time.Hour, entry.Refresh)
	assert.Empty(t, entry.ExtraData)
	require.Len(t, entry.Errors, 4)
	for _, e := range entry.Errors {
		assert.Contains(t, e, "row 3: ")
	}
}

func TestManifestEntryFromRow_InvalidRefresh(t *testing.T) {
	for _, raw := range []string{"soon", "0", "-3"} {
		entry, ok := ManifestEntryFromRow(row(2, map[string]string{"key": "k", "tag": "t", "lastupdated": "1", "refresh": raw}), 0)
		require.True(t, ok)
		assert.Equal(t, DefaultRefresh, entry.Refresh, raw)
		assert.Len(t, entry.Errors, 1, raw)
	}
}

func TestParseManifest(t *testing.T) {
	rows := []spreadsheet.Row{
		row(2, map[string]string{"key": "a", "tag": "A", "lastupdated": "1", "refresh": "1"}),
		row(3, map[string]string{"key": "99999", "tag": "dummy", "lastupdated": "1", "refresh": "1"}),
		row(4, map[string]string{"key": "a", "tag": "again", "lastupdated": "2", "refresh": "1"}),
		row(5, map[string]string{"key": "b", "tag": "B", "lastupdated": "1", "refresh": "1"}),
	}

	got, errs := ParseManifest(rows, time.Hour)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Tag)
	assert.Equal(t, "b", got[1].Key)
	assert.Equal(t, []string{"row 4: duplicate source key 'a' (first declared at row 2)"}, errs)
}

func TestSourceEntryFromRow(t *testing.T) {
	entry, ok := SourceEntryFromRow(row(2, map[string]string{
		"oid":      "123",
		"name":     "John",
		"nickname": "jdoe",
		"level":    "12",
		"faction":  "enlightened",
		"anomaly":  "helios",
	}))
	require.True(t, ok)
	assert.Equal(t, "123", entry.OID)
	assert.Equal(t, "John", entry.Name)
	assert.Equal(t, "jdoe", entry.Nickname)
	assert.Equal(t, 12, entry.Level)
	assert.Equal(t, map[string]string{"faction": "enlightened", "anomaly": "helios"}, entry.ExtraData)
}

func TestSourceEntryFromRow_Level(t *testing.T) {
	tests := map[string]int{
		"16":   16,
		"17":   16,
		"-2":   0,
		"8.7":  8,
		"high": 0,
	}
	for raw, want := range tests {
		entry, ok := SourceEntryFromRow(row(2, map[string]string{"oid": "1", "level": raw}))
		require.True(t, ok)
		assert.Equal(t, want, entry.Level, raw)
	}

	entry, _ := SourceEntryFromRow(row(2, map[string]string{"oid": "1"}))
	assert.Equal(t, 0, entry.Level)
}

func TestParseSource_DropsDummies(t *testing.T) {
	rows := []spreadsheet.Row{
		row(2, map[string]string{"oid": "999999999999999999999", "nickname": "dummy"}),
		row(3, map[string]string{"oid": "1", "nickname": "real"}),
		row(4, map[string]string{"oid": "1999", "nickname": "also real"}),
	}
	got := ParseSource(rows)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].OID)
	assert.Equal(t, "1999", got[1].OID)
	assert.True(t, IsDummy("9"))
	assert.False(t, IsDummy("919"))
}
