package sources

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sync"
	"time"

	"ingress-identity/core/logger"
	"ingress-identity/core/spreadsheet"
	"ingress-identity/feature/identity/entries"
	"ingress-identity/feature/identity/models"
	"ingress-identity/feature/identity/players"

	"go.uber.org/zap"
)

// PlayerSource owns one source sheet. loadedVersion is the lastupdated token
// of the rows currently served, which lags entry.LastUpdated until a fetch of
// the new version succeeds.
type PlayerSource struct {
	sheet  *spreadsheet.Sheet
	keyErr error
	opts   options
	ready  *readiness

	mu            sync.RWMutex
	entry         models.ManifestEntry
	loadedVersion string
	players       map[string]*models.Player
	errors        []string
	loadErr       error
	lastLoad      time.Time
	state         State
}

// NewPlayerSource creates an unloaded source for entry.
func NewPlayerSource(entry models.ManifestEntry, accessor *spreadsheet.Accessor, opts ...Option) *PlayerSource {
	s := &PlayerSource{
		opts:    newOptions(opts),
		ready:   newReadiness(),
		entry:   entry,
		players: map[string]*models.Player{},
		state:   StateNew,
	}
	if key, err := spreadsheet.ParseKey(entry.Key); err != nil {
		s.keyErr = err
	} else {
		s.sheet = spreadsheet.NewSheet(accessor, key, entries.SourceRequired...)
	}
	return s
}

// Load fetches the sheet and rebuilds the players. On failure the previous
// players and their version are kept and the error is recorded.
func (s *PlayerSource) Load(ctx context.Context) error {
	s.ready.begin()
	defer s.ready.finish()

	s.mu.Lock()
	entry := s.entry
	if s.state == StateReady {
		s.state = StateReloading
	} else {
		s.state = StateLoading
	}
	s.mu.Unlock()

	log := logger.ForSheet(s.opts.logger, entry.Key)

	err := s.keyErr
	if err == nil {
		err = s.sheet.Load(ctx)
	}
	if err != nil {
		s.mu.Lock()
		s.loadErr = err
		if !s.loaded() {
			s.state = StateFailed
		} else {
			s.state = StateReady
		}
		s.mu.Unlock()
		log.Warn("Source load failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.rebuildLocked()
	s.loadedVersion = entry.LastUpdated
	s.loadErr = nil
	s.lastLoad = s.opts.now()
	s.state = StateReady
	count := len(s.players)
	s.mu.Unlock()
	log.Debug("Source loaded", zap.Int("players", count), zap.Int("row_errors", len(s.sheet.Errors())))
	return nil
}

func (s *PlayerSource) loaded() bool {
	return s.sheet != nil && s.sheet.Loaded()
}

// rebuildLocked recomputes players from the sheet's last good rows. Rows
// repeating an oid are merged.
func (s *PlayerSource) rebuildLocked() {
	rows := s.sheet.Rows()
	built := make(map[string]*models.Player, len(rows))
	errs := s.sheet.Errors()
	for _, e := range entries.ParseSource(rows) {
		p := players.Build(s.entry, e)
		for _, msg := range p.Errors {
			errs = append(errs, fmt.Sprintf("row %d: %s", e.Row, msg))
		}
		if prev, ok := built[e.OID]; ok {
			p = players.Merge(prev, p)
		}
		built[e.OID] = p
	}
	s.players = built
	s.errors = errs
}

// Update replaces the manifest entry. When the version token matches the rows
// already held the players are rebuilt without fetching; otherwise the caller
// is expected to Load.
func (s *PlayerSource) Update(entry models.ManifestEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = entry
	if s.loaded() && s.loadedVersion == entry.LastUpdated {
		s.rebuildLocked()
	}
}

// Touch resets the freshness timer without fetching.
func (s *PlayerSource) Touch() {
	s.mu.Lock()
	s.lastLoad = s.opts.now()
	s.mu.Unlock()
}

// ShouldUpdate reports whether the refresh interval has elapsed since the last load.
func (s *PlayerSource) ShouldUpdate(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.After(s.lastLoad.Add(s.entry.Refresh))
}

// Entry returns the manifest entry.
func (s *PlayerSource) Entry() models.ManifestEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entry
}

// Key returns the sheet key declared in the manifest.
func (s *PlayerSource) Key() string { return s.Entry().Key }

// Tag returns the display tag.
func (s *PlayerSource) Tag() string { return s.Entry().Tag }

// Faction returns the manifest-level faction.
func (s *PlayerSource) Faction() models.Faction { return s.Entry().Faction }

// Version is the lastupdated token of the rows being served. Before the first
// successful load it is the declared token.
func (s *PlayerSource) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded() {
		return s.entry.LastUpdated
	}
	return s.loadedVersion
}

// URL is the display link of the sheet.
func (s *PlayerSource) URL() string {
	return players.SourceRef(s.Entry()).URL
}

// Count returns the number of distinct players.
func (s *PlayerSource) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// State returns the lifecycle state.
func (s *PlayerSource) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Ready waits for in-flight loads.
func (s *PlayerSource) Ready(ctx context.Context) error {
	return s.ready.wait(ctx)
}

// Errors returns row and build errors plus the last load failure.
func (s *PlayerSource) Errors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	errs := slices.Clone(s.errors)
	if s.loadErr != nil {
		errs = append(errs, s.loadErr.Error())
	}
	if errs == nil {
		errs = []string{}
	}
	return errs
}

// HasPlayer reports whether the sheet lists oid.
func (s *PlayerSource) HasPlayer(oid string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.players[oid]
	return ok
}

// GetPlayer returns a copy of the player built for oid.
func (s *PlayerSource) GetPlayer(oid string) (*models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[oid]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// FindOids returns the sorted oids whose field value matches re.
func (s *PlayerSource) FindOids(field string, re *regexp.Regexp) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var oids []string
	for oid, p := range s.players {
		v, ok := fieldValue(p, field)
		if ok && re.MatchString(v) {
			oids = append(oids, oid)
		}
	}
	slices.Sort(oids)
	return oids
}
