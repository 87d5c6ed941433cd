package storage

import (
	"strings"
	"time"
)

// Config describes the S3-compatible bucket used for sheet snapshots.
type Config struct {
	Enabled        bool   `mapstructure:"enabled" default:"false"`
	Endpoint       string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey      string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey      string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL         bool   `mapstructure:"use_ssl" default:"false"`
	Bucket         string `mapstructure:"bucket" default:"identity"`
	Region         string `mapstructure:"region" default:""`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" default:"30"`
}

// Host returns the endpoint without its scheme, as minio expects it.
func (c Config) Host() string {
	host := strings.TrimPrefix(c.Endpoint, "http://")
	return strings.TrimPrefix(host, "https://")
}

// Secure reports whether TLS is used, either explicitly or through an https endpoint.
func (c Config) Secure() bool {
	return c.UseSSL || strings.HasPrefix(c.Endpoint, "https://")
}

// Timeout returns the dial and header timeout, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
