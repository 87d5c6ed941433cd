package config

import (
	"strings"
	"time"
)

// IdentityConfig controls the player data layer.
type IdentityConfig struct {
	// Manifests is a comma separated list of manifest keys used when the settings
	// store does not hold a manifest list yet.
	Manifests string `mapstructure:"manifests" default:""`
	// SettingsCacheSeconds is the TTL of the settings read cache.
	SettingsCacheSeconds int `mapstructure:"settings_cache_seconds" default:"60"`
	// RefreshCheckSeconds is how often the background refresher looks for stale sources.
	RefreshCheckSeconds int `mapstructure:"refresh_check_seconds" default:"300"`
	// DefaultRefreshHours is used for manifest rows without a valid refresh column.
	DefaultRefreshHours float64 `mapstructure:"default_refresh_hours" default:"1"`
}

// ManifestKeys splits Manifests into trimmed, non-empty keys.
func (c IdentityConfig) ManifestKeys() []string {
	var keys []string
	for _, k := range strings.Split(c.Manifests, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// SettingsCacheTTL returns the settings cache TTL.
func (c IdentityConfig) SettingsCacheTTL() time.Duration {
	return time.Duration(c.SettingsCacheSeconds) * time.Second
}

// RefreshInterval returns the refresher tick, zero when disabled.
func (c IdentityConfig) RefreshInterval() time.Duration {
	if c.RefreshCheckSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RefreshCheckSeconds) * time.Second
}

// DefaultRefresh returns DefaultRefreshHours as a duration, falling back to one hour.
func (c IdentityConfig) DefaultRefresh() time.Duration {
	if c.DefaultRefreshHours <= 0 {
		return time.Hour
	}
	return time.Duration(c.DefaultRefreshHours * float64(time.Hour))
}
