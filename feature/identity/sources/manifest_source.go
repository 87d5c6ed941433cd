package sources

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"sync"
	"time"

	"ingress-identity/core/cache"
	"ingress-identity/core/logger"
	"ingress-identity/core/spreadsheet"
	"ingress-identity/feature/identity/entries"
	"ingress-identity/feature/identity/models"
	"ingress-identity/feature/identity/players"

	"go.uber.org/zap"
)

var errNoPlayer = errors.New("player not found")

// ManifestSource owns the PlayerSources declared by one manifest sheet.
type ManifestSource struct {
	key      string
	accessor *spreadsheet.Accessor
	sheet    *spreadsheet.Sheet
	keyErr   error
	opts     options
	childOpt []Option
	ready    *readiness
	cache    *cache.Store[string, *models.Player]

	mu      sync.RWMutex
	sources []*PlayerSource
	byKey   map[string]*PlayerSource
	errors  []string
	loadErr error
	loaded  bool
	state   State
}

// NewManifestSource creates an unloaded manifest for key.
func NewManifestSource(key string, accessor *spreadsheet.Accessor, opts ...Option) *ManifestSource {
	m := &ManifestSource{
		key:      key,
		accessor: accessor,
		opts:     newOptions(opts),
		childOpt: opts,
		ready:    newReadiness(),
		cache:    cache.New[string, *models.Player](0),
		byKey:    map[string]*PlayerSource{},
		state:    StateNew,
	}
	if k, err := spreadsheet.ParseKey(key); err != nil {
		m.keyErr = err
	} else {
		m.sheet = spreadsheet.NewSheet(accessor, k, entries.ManifestRequired...)
	}
	return m
}

// Key returns the manifest key.
func (m *ManifestSource) Key() string { return m.key }

// URL returns the display link of the manifest sheet.
func (m *ManifestSource) URL() string {
	if k, err := spreadsheet.ParseKey(m.key); err == nil {
		return k.URL()
	}
	return m.key
}

// Load reads the manifest and loads every source.
func (m *ManifestSource) Load(ctx context.Context) error {
	return m.Reload(ctx)
}

// Reload re-reads the manifest and reconciles the sources against it. New keys
// are loaded, removed keys dropped, and keys whose version token changed are
// reloaded in place. Unchanged keys are touched without fetching.
func (m *ManifestSource) Reload(ctx context.Context) error {
	m.ready.begin()
	defer m.ready.finish()

	m.mu.Lock()
	if m.loaded {
		m.state = StateReloading
	} else {
		m.state = StateLoading
	}
	m.mu.Unlock()

	log := logger.ForSheet(m.opts.logger, m.key)

	err := m.keyErr
	if err == nil {
		err = m.sheet.Load(ctx)
	}
	if err != nil {
		m.mu.Lock()
		m.loadErr = err
		if m.loaded {
			m.state = StateReady
		} else {
			m.state = StateFailed
		}
		m.mu.Unlock()
		log.Warn("Manifest load failed", zap.Error(err))
		return err
	}

	declared, dupErrs := entries.ParseManifest(m.sheet.Rows(), m.opts.defaultRefresh)
	errs := append(m.sheet.Errors(), dupErrs...)
	for _, e := range declared {
		errs = append(errs, e.Errors...)
	}

	m.mu.Lock()
	next := make([]*PlayerSource, 0, len(declared))
	nextByKey := make(map[string]*PlayerSource, len(declared))
	var toLoad []*PlayerSource
	touched := 0
	for _, e := range declared {
		src, ok := m.byKey[e.Key]
		switch {
		case !ok:
			src = NewPlayerSource(e, m.accessor, m.childOpt...)
			toLoad = append(toLoad, src)
		case src.Version() != e.LastUpdated || src.State() == StateFailed:
			src.Update(e)
			toLoad = append(toLoad, src)
		default:
			src.Update(e)
			src.Touch()
			touched++
		}
		next = append(next, src)
		nextByKey[e.Key] = src
	}
	removed := len(m.byKey) - (len(next) - countNew(toLoad, m.byKey))
	m.sources, m.byKey = next, nextByKey
	m.errors = errs
	m.loadErr = nil
	m.cache.Clear()
	m.mu.Unlock()

	loadAll(ctx, toLoad)

	m.mu.Lock()
	m.cache.Clear()
	m.loaded = true
	m.state = StateReady
	m.mu.Unlock()

	log.Info("Manifest reconciled",
		zap.Int("sources", len(next)),
		zap.Int("loaded", len(toLoad)),
		zap.Int("touched", touched),
		zap.Int("removed", removed),
		zap.Int("errors", len(errs)))
	return nil
}

func countNew(list []*PlayerSource, existing map[string]*PlayerSource) int {
	n := 0
	for _, s := range list {
		if _, ok := existing[s.Key()]; !ok {
			n++
		}
	}
	return n
}

// loadAll loads sources concurrently. Failures are recorded on each source.
func loadAll(ctx context.Context, list []*PlayerSource) {
	var wg sync.WaitGroup
	for _, s := range list {
		wg.Add(1)
		go func(s *PlayerSource) {
			defer wg.Done()
			_ = s.Load(ctx)
		}(s)
	}
	wg.Wait()
}

// NeedsRefresh reports whether any source is past its refresh interval.
func (m *ManifestSource) NeedsRefresh(now time.Time) bool {
	for _, s := range m.Sources() {
		if s.ShouldUpdate(now) {
			return true
		}
	}
	return false
}

// Sources returns the sources in manifest order.
func (m *ManifestSource) Sources() []*PlayerSource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.sources)
}

// Source returns the source declared under key.
func (m *ManifestSource) Source(key string) (*PlayerSource, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.byKey[key]
	return s, ok
}

// ClearCache drops the merged players.
func (m *ManifestSource) ClearCache() {
	m.cache.Clear()
}

// State returns the lifecycle state.
func (m *ManifestSource) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Ready waits until the manifest and all of its sources are idle.
func (m *ManifestSource) Ready(ctx context.Context) error {
	if err := m.ready.wait(ctx); err != nil {
		return err
	}
	for _, s := range m.Sources() {
		if err := s.Ready(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Errors returns manifest-level errors: row problems and the last load failure.
func (m *ManifestSource) Errors() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	errs := slices.Clone(m.errors)
	if m.loadErr != nil {
		errs = append(errs, m.loadErr.Error())
	}
	if errs == nil {
		errs = []string{}
	}
	return errs
}

func (m *ManifestSource) HasPlayer(oid string) bool {
	for _, s := range m.Sources() {
		if s.HasPlayer(oid) {
			return true
		}
	}
	return false
}

// GetPlayer merges the fragments of oid across the sources, in manifest order.
func (m *ManifestSource) GetPlayer(oid string) (*models.Player, bool) {
	p, err := m.cache.GetOrBuild(context.Background(), oid, func(ctx context.Context) (*models.Player, error) {
		var fragments []*models.Player
		for _, s := range m.Sources() {
			if f, ok := s.GetPlayer(oid); ok {
				fragments = append(fragments, f)
			}
		}
		if len(fragments) == 0 {
			return nil, errNoPlayer
		}
		return players.Merge(fragments...), nil
	})
	if err != nil {
		return nil, false
	}
	return p.Clone(), true
}

func (m *ManifestSource) FindOids(field string, re *regexp.Regexp) []string {
	var oids []string
	for _, s := range m.Sources() {
		oids = append(oids, s.FindOids(field, re)...)
	}
	slices.Sort(oids)
	return slices.Compact(oids)
}
