package spreadsheet

import (
	"context"
	"sync"

	"ingress-identity/core/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Accessor reads tabs through a Fetcher, collapsing concurrent reads of one key.
type Accessor struct {
	fetcher Fetcher
	logger  *zap.Logger
	sf      singleflight.Group
}

// NewAccessor creates an Accessor.
func NewAccessor(fetcher Fetcher, logger *zap.Logger) *Accessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Accessor{fetcher: fetcher, logger: logger}
}

// Read fetches key and parses it into rows.
func (a *Accessor) Read(ctx context.Context, key Key, required ...string) ([]Row, []string, error) {
	log := logger.ForSheet(a.logger, key.String())
	v, err, shared := a.sf.Do(key.String(), func() (interface{}, error) {
		return a.fetcher.Fetch(ctx, key)
	})
	if err != nil {
		log.Warn("Sheet fetch failed", zap.Error(err))
		return nil, nil, err
	}
	rows, errs := Parse(v.([][]string), required...)
	log.Debug("Sheet read",
		zap.Int("rows", len(rows)),
		zap.Int("errors", len(errs)),
		zap.Bool("shared", shared))
	return rows, errs, nil
}

// Sheet keeps the last good snapshot of one tab.
type Sheet struct {
	accessor *Accessor
	key      Key
	required []string

	mu     sync.RWMutex
	rows   []Row
	errors []string
	loaded bool
}

// NewSheet creates an unloaded sheet.
func NewSheet(accessor *Accessor, key Key, required ...string) *Sheet {
	return &Sheet{accessor: accessor, key: key, required: required}
}

// Key returns the tab key.
func (s *Sheet) Key() Key {
	return s.key
}

// Load fetches the tab. On failure the previous snapshot is kept.
func (s *Sheet) Load(ctx context.Context) error {
	rows, errs, err := s.accessor.Read(ctx, s.key, s.required...)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rows, s.errors, s.loaded = rows, errs, true
	s.mu.Unlock()
	return nil
}

// Rows returns the current snapshot.
func (s *Sheet) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// Errors returns the row-level errors of the current snapshot.
func (s *Sheet) Errors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.errors...)
}

// Loaded reports whether any load has succeeded.
func (s *Sheet) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
