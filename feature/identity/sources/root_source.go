package sources

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"ingress-identity/core/cache"
	"ingress-identity/core/spreadsheet"
	"ingress-identity/feature/identity/models"
	"ingress-identity/feature/identity/players"

	"go.uber.org/zap"
)

var (
	// ErrManifestExists is returned when adding a manifest that is already present.
	ErrManifestExists = errors.New("manifest already present")
	// ErrUnknownManifest is returned when removing a manifest that is not present.
	ErrUnknownManifest = errors.New("unknown manifest")
)

// ManifestErrorsKey holds manifest-level errors in ErrorsByManifest.
const ManifestErrorsKey = ".manifest"

// RootSource merges players across all manifests.
type RootSource struct {
	accessor *spreadsheet.Accessor
	opts     options
	childOpt []Option
	ready    *readiness
	cache    *cache.Store[string, *models.Player]

	mu        sync.RWMutex
	manifests []*ManifestSource
	state     State
}

// NewRootSource creates an empty root.
func NewRootSource(accessor *spreadsheet.Accessor, opts ...Option) *RootSource {
	return &RootSource{
		accessor: accessor,
		opts:     newOptions(opts),
		childOpt: opts,
		ready:    newReadiness(),
		cache:    cache.New[string, *models.Player](0),
		state:    StateNew,
	}
}

// Load replaces the manifest set with keys, keeping manifests already present,
// and loads all of them concurrently. The returned error joins the manifests that
// could not be read; the others are usable regardless.
func (r *RootSource) Load(ctx context.Context, keys []string) error {
	r.mu.Lock()
	existing := make(map[string]*ManifestSource, len(r.manifests))
	for _, m := range r.manifests {
		existing[m.Key()] = m
	}
	next := make([]*ManifestSource, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		m, ok := existing[k]
		if !ok {
			m = NewManifestSource(k, r.accessor, r.childOpt...)
		}
		next = append(next, m)
	}
	r.manifests = next
	r.cache.Clear()
	r.mu.Unlock()

	return r.reload(ctx, next)
}

// Reload re-reads every manifest.
func (r *RootSource) Reload(ctx context.Context) error {
	return r.reload(ctx, r.Manifests())
}

// Refresh reloads only the manifests that have a source past its refresh
// interval and returns how many were reloaded.
func (r *RootSource) Refresh(ctx context.Context) (int, error) {
	now := r.opts.now()
	var stale []*ManifestSource
	for _, m := range r.Manifests() {
		if m.State() == StateFailed || m.NeedsRefresh(now) {
			stale = append(stale, m)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	return len(stale), r.reload(ctx, stale)
}

func (r *RootSource) reload(ctx context.Context, list []*ManifestSource) error {
	r.ready.begin()
	defer r.ready.finish()

	r.setState()
	start := time.Now()

	errs := make([]error, len(list))
	var wg sync.WaitGroup
	for i, m := range list {
		wg.Add(1)
		go func(i int, m *ManifestSource) {
			defer wg.Done()
			if err := m.Reload(ctx); err != nil {
				errs[i] = fmt.Errorf("manifest %s: %w", m.Key(), err)
			}
		}(i, m)
	}
	wg.Wait()

	r.cache.Clear()
	r.mu.Lock()
	r.state = StateReady
	r.mu.Unlock()

	r.opts.logger.Info("Manifests reloaded",
		zap.Int("manifests", len(list)),
		zap.Duration("duration", time.Since(start)))
	return errors.Join(errs...)
}

func (r *RootSource) setState() {
	r.mu.Lock()
	if r.state == StateReady {
		r.state = StateReloading
	} else {
		r.state = StateLoading
	}
	r.mu.Unlock()
}

// AddManifest adds and loads one manifest without touching the others.
func (r *RootSource) AddManifest(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if _, err := spreadsheet.ParseKey(key); err != nil {
		return err
	}

	r.mu.Lock()
	for _, m := range r.manifests {
		if m.Key() == key {
			r.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrManifestExists, key)
		}
	}
	m := NewManifestSource(key, r.accessor, r.childOpt...)
	r.manifests = append(r.manifests, m)
	r.cache.Clear()
	r.mu.Unlock()

	return r.reload(ctx, []*ManifestSource{m})
}

// RemoveManifest drops one manifest.
func (r *RootSource) RemoveManifest(key string) error {
	key = strings.TrimSpace(key)

	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.IndexFunc(r.manifests, func(m *ManifestSource) bool { return m.Key() == key })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownManifest, key)
	}
	r.manifests = slices.Delete(r.manifests, i, i+1)
	r.cache.Clear()
	return nil
}

// ClearCache drops every memoized player in the tree.
func (r *RootSource) ClearCache() {
	r.cache.Clear()
	for _, m := range r.Manifests() {
		m.ClearCache()
	}
}

// Manifests returns the manifests in configured order.
func (r *RootSource) Manifests() []*ManifestSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.manifests)
}

// Keys returns the manifest keys in configured order.
func (r *RootSource) Keys() []string {
	list := r.Manifests()
	keys := make([]string, len(list))
	for i, m := range list {
		keys[i] = m.Key()
	}
	return keys
}

// State returns the lifecycle state.
func (r *RootSource) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Ready waits until the whole tree is idle.
func (r *RootSource) Ready(ctx context.Context) error {
	if err := r.ready.wait(ctx); err != nil {
		return err
	}
	for _, m := range r.Manifests() {
		if err := m.Ready(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Errors returns every error in the tree, flattened.
func (r *RootSource) Errors() []string {
	errs := []string{}
	for _, m := range r.Manifests() {
		for _, e := range m.Errors() {
			errs = append(errs, m.Key()+": "+e)
		}
		for _, s := range m.Sources() {
			for _, e := range s.Errors() {
				errs = append(errs, m.Key()+"/"+s.Key()+": "+e)
			}
		}
	}
	return errs
}

func (r *RootSource) HasPlayer(oid string) bool {
	for _, m := range r.Manifests() {
		if m.HasPlayer(oid) {
			return true
		}
	}
	return false
}

// GetPlayer merges oid across every manifest that knows it.
func (r *RootSource) GetPlayer(oid string) (*models.Player, bool) {
	p, err := r.cache.GetOrBuild(context.Background(), oid, func(ctx context.Context) (*models.Player, error) {
		var fragments []*models.Player
		for _, m := range r.Manifests() {
			if f, ok := m.GetPlayer(oid); ok {
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

func (r *RootSource) FindOids(field string, re *regexp.Regexp) []string {
	var oids []string
	for _, m := range r.Manifests() {
		oids = append(oids, m.FindOids(field, re)...)
	}
	slices.Sort(oids)
	return slices.Compact(oids)
}

// AllOids returns every known oid, sorted.
func (r *RootSource) AllOids() []string {
	return r.FindOids(FieldNickname, matchAll)
}
