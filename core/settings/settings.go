package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Keys of the well-known settings.
const (
	KeyManifests     = "manifests"
	KeyManifestNames = "manifest_names"
)

// Feature toggles read by the identity service.
const (
	ToggleShowAnomalies   = "show_anomalies"
	ToggleShowCommunities = "show_communities"
	ToggleShowEvents      = "show_events"
	ToggleShowExtra       = "show_extra"
)

// Toggles lists every known toggle.
var Toggles = []string{ToggleShowAnomalies, ToggleShowCommunities, ToggleShowEvents, ToggleShowExtra}

// Settings is a typed view over a Store. Values are JSON encoded.
type Settings struct {
	store Store
}

// New creates a typed view over store.
func New(store Store) *Settings {
	return &Settings{store: store}
}

// Store returns the underlying raw store.
func (s *Settings) Store() Store {
	return s.store
}

func (s *Settings) getJSON(ctx context.Context, key string, out any) (bool, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("setting %s holds invalid JSON: %w", key, err)
	}
	return true, nil
}

func (s *Settings) setJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode setting %s: %w", key, err)
	}
	return s.store.Set(ctx, key, string(b))
}

// ManifestKeys returns the ordered manifest list. ok is false when it was never stored.
func (s *Settings) ManifestKeys(ctx context.Context) (keys []string, ok bool, err error) {
	ok, err = s.getJSON(ctx, KeyManifests, &keys)
	return keys, ok, err
}

// SetManifestKeys stores the ordered manifest list, dropping blanks and duplicates.
func (s *Settings) SetManifestKeys(ctx context.Context, keys []string) error {
	seen := make(map[string]struct{}, len(keys))
	clean := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		clean = append(clean, k)
	}
	return s.setJSON(ctx, KeyManifests, clean)
}

// ManifestNames returns the display-name overrides keyed by manifest key.
func (s *Settings) ManifestNames(ctx context.Context) (map[string]string, error) {
	names := map[string]string{}
	if _, err := s.getJSON(ctx, KeyManifestNames, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SetManifestName sets (or with an empty name, removes) a display-name override.
func (s *Settings) SetManifestName(ctx context.Context, key, name string) error {
	names, err := s.ManifestNames(ctx)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		delete(names, key)
	} else {
		names[key] = name
	}
	return s.setJSON(ctx, KeyManifestNames, names)
}

// Toggle returns the boolean toggle name, or def when it is unset or unreadable.
func (s *Settings) Toggle(ctx context.Context, name string, def bool) bool {
	var v bool
	ok, err := s.getJSON(ctx, name, &v)
	if err != nil || !ok {
		return def
	}
	return v
}

// SetToggle stores a boolean toggle.
func (s *Settings) SetToggle(ctx context.Context, name string, value bool) error {
	return s.setJSON(ctx, name, value)
}
