package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ingress-identity/core/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("setting not found")

// Store is a key/value store for raw setting values.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Setting is the persisted row.
type Setting struct {
	Name  string `gorm:"column:name;primaryKey;size:191"`
	Value string `gorm:"column:value;type:text"`
}

// TableName pins the table name.
func (Setting) TableName() string {
	return "settings"
}

// Columns lists the columns the settings table must have.
var Columns = []string{"name", "value"}

// GormStore persists settings in the settings table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store and migrates the settings table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Setting{}); err != nil {
		return nil, fmt.Errorf("failed to migrate settings table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get returns the raw value for key.
func (s *GormStore) Get(ctx context.Context, key string) (string, error) {
	var row Setting
	err := s.db.WithContext(ctx).Where("name = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return row.Value, nil
}

// Set upserts the value for key.
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Setting{Name: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// MemoryStore keeps settings in a map. It is used when no database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// DefaultTTL is how long Cached keeps a value before re-reading it.
const DefaultTTL = 60 * time.Second

type cachedValue struct {
	value string
	found bool
}

// Cached is a read-through cache in front of another Store.
type Cached struct {
	store Store
	cache *cache.Store[string, cachedValue]
}

// NewCached wraps store with a TTL cache. A non-positive ttl uses DefaultTTL.
func NewCached(store Store, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cached{store: store, cache: cache.New[string, cachedValue](ttl)}
}

// Get returns the value for key, reading through to the store on a miss.
// Absence is cached as well so unknown keys do not hit the store repeatedly.
func (c *Cached) Get(ctx context.Context, key string) (string, error) {
	v, err := c.cache.GetOrBuild(ctx, key, func(ctx context.Context) (cachedValue, error) {
		raw, err := c.store.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			return cachedValue{}, nil
		}
		if err != nil {
			return cachedValue{}, err
		}
		return cachedValue{value: raw, found: true}, nil
	})
	if err != nil {
		return "", err
	}
	if !v.found {
		return "", ErrNotFound
	}
	return v.value, nil
}

// Set writes through to the store and drops the cached entry.
func (c *Cached) Set(ctx context.Context, key, value string) error {
	if err := c.store.Set(ctx, key, value); err != nil {
		return err
	}
	c.cache.Invalidate(key)
	return nil
}

// Clear empties the cache.
func (c *Cached) Clear() {
	c.cache.Clear()
}

// SetClock replaces the cache clock. Used by tests.
func (c *Cached) SetClock(now func() time.Time) {
	c.cache.SetClock(now)
}
