package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ingress-identity/core/settings"
	"ingress-identity/core/spreadsheet"
	"ingress-identity/feature/identity/finder"
	"ingress-identity/feature/identity/models"
	"ingress-identity/feature/identity/sources"

	"go.uber.org/zap"
)

// Lookup statuses.
const (
	StatusSuccess  = "success"
	StatusNotFound = "not-found"
)

// ErrInvalidSetting is returned when a setting value is not valid JSON.
var ErrInvalidSetting = errors.New("setting value must be valid JSON")

// PlayerResult is the reply of GetPlayer.
type PlayerResult struct {
	Status string         `json:"status"`
	Player *models.Player `json:"player,omitempty"`
}

// Service implements the identity operations on top of a RootSource.
type Service struct {
	root     *sources.RootSource
	finder   *finder.Finder
	settings *settings.Settings
	seed     []string
	logger   *zap.Logger
}

// NewService creates a service. seed is used as the manifest list when the
// settings store holds none.
func NewService(root *sources.RootSource, store settings.Store, seed []string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		root:     root,
		finder:   finder.New(root),
		settings: settings.New(store),
		seed:     seed,
		logger:   logger,
	}
}

// Root exposes the player tree.
func (s *Service) Root() *sources.RootSource {
	return s.root
}

// ManifestKeys returns the configured manifest list. The seed list is persisted
// the first time it is used.
func (s *Service) ManifestKeys(ctx context.Context) ([]string, error) {
	keys, ok, err := s.settings.ManifestKeys(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return keys, nil
	}
	if len(s.seed) > 0 {
		if err := s.settings.SetManifestKeys(ctx, s.seed); err != nil {
			return nil, err
		}
	}
	return s.seed, nil
}

// Load reads the manifest list and loads the whole tree. Unreachable manifests are
// logged and reported through Errors; they do not fail the load.
func (s *Service) Load(ctx context.Context) error {
	keys, err := s.ManifestKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to read manifest list: %w", err)
	}
	if err := s.root.Load(ctx, keys); err != nil {
		s.logger.Warn("Some manifests could not be loaded", zap.Error(err))
	}
	return nil
}

// Reload re-reads the manifest list and every manifest.
func (s *Service) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// MatchOptions returns the default options from the settings toggles.
func (s *Service) MatchOptions(ctx context.Context) models.MatchOptions {
	return models.MatchOptions{
		ShowAnomalies:   s.settings.Toggle(ctx, settings.ToggleShowAnomalies, true),
		ShowCommunities: s.settings.Toggle(ctx, settings.ToggleShowCommunities, true),
		ShowEvents:      s.settings.Toggle(ctx, settings.ToggleShowEvents, true),
		ShowExtra:       s.settings.Toggle(ctx, settings.ToggleShowExtra, true),
	}
}

// GetPlayer looks oid up. A nil opts uses MatchOptions.
func (s *Service) GetPlayer(ctx context.Context, oid string, opts *models.MatchOptions) (PlayerResult, error) {
	if err := s.root.Ready(ctx); err != nil {
		return PlayerResult{}, err
	}
	p, ok := s.root.GetPlayer(oid)
	if !ok {
		return PlayerResult{Status: StatusNotFound}, nil
	}
	o := s.MatchOptions(ctx)
	if opts != nil {
		o = *opts
	}
	return PlayerResult{Status: StatusSuccess, Player: p.Filter(o)}, nil
}

// HasPlayer reports whether any source lists oid.
func (s *Service) HasPlayer(ctx context.Context, oid string) (bool, error) {
	if err := s.root.Ready(ctx); err != nil {
		return false, err
	}
	return s.root.HasPlayer(oid), nil
}

// SourcesForExtra lists the sources declaring tag with oid.
func (s *Service) SourcesForExtra(ctx context.Context, tag, oid string) ([]models.SourceRef, error) {
	if err := s.root.Ready(ctx); err != nil {
		return nil, err
	}
	return s.root.SourcesForExtra(tag, oid), nil
}

// Find searches the merged players.
func (s *Service) Find(ctx context.Context, pattern finder.Pattern) ([]*models.Player, error) {
	if err := s.root.Ready(ctx); err != nil {
		return nil, err
	}
	return s.finder.Find(pattern), nil
}

// Information describes the tree, applying display-name overrides.
func (s *Service) Information(ctx context.Context) (map[string]sources.ManifestInfo, error) {
	if err := s.root.Ready(ctx); err != nil {
		return nil, err
	}
	names, err := s.settings.ManifestNames(ctx)
	if err != nil {
		s.logger.Warn("Failed to read manifest names", zap.Error(err))
		names = nil
	}
	return s.root.Information(names), nil
}

// Errors returns the nested error report.
func (s *Service) Errors(ctx context.Context) (map[string]map[string][]string, error) {
	if err := s.root.Ready(ctx); err != nil {
		return nil, err
	}
	return s.root.ErrorsByManifest(), nil
}

// AddManifest adds a manifest, loads it and persists the manifest list.
func (s *Service) AddManifest(ctx context.Context, key string) error {
	err := s.root.AddManifest(ctx, key)
	if errors.Is(err, sources.ErrManifestExists) || errors.Is(err, spreadsheet.ErrInvalidKey) {
		return err
	}
	if err != nil {
		s.logger.Warn("Added manifest could not be loaded", zap.String("manifest", key), zap.Error(err))
	}
	return s.settings.SetManifestKeys(ctx, s.root.Keys())
}

// RemoveManifest drops a manifest and persists the manifest list.
func (s *Service) RemoveManifest(ctx context.Context, key string) error {
	if err := s.root.RemoveManifest(key); err != nil {
		return err
	}
	return s.settings.SetManifestKeys(ctx, s.root.Keys())
}

// ClearCache drops memoized players and cached settings.
func (s *Service) ClearCache() {
	s.root.ClearCache()
	if c, ok := s.settings.Store().(*settings.Cached); ok {
		c.Clear()
	}
}

// GetSetting returns the decoded JSON value of key.
func (s *Service) GetSetting(ctx context.Context, key string) (any, error) {
	raw, err := s.settings.Store().Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw, nil
	}
	return v, nil
}

// SetSetting stores value (raw JSON) under key.
func (s *Service) SetSetting(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return ErrInvalidSetting
	}
	return s.settings.Store().Set(ctx, key, string(value))
}
