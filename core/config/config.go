package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"ingress-identity/core/auth"
	"ingress-identity/core/database"
	"ingress-identity/core/logger"
	"ingress-identity/core/server"
	"ingress-identity/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the application configuration, one section per subsystem.
type Config struct {
	Server   server.Config   `mapstructure:"server"`
	Storage  storage.Config  `mapstructure:"storage"`
	Log      logger.Config   `mapstructure:"log"`
	Database database.Config `mapstructure:"database"`
	Auth     auth.Config     `mapstructure:"auth"`
	Identity IdentityConfig  `mapstructure:"identity"`
}

// LoadConfig reads <path>/.env when present, overlays the process environment
// and decodes the result into a validated Config.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal in production.
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	for key, def := range defaults(reflect.TypeOf(Config{}), "") {
		// Every key needs a default, even an empty one, for AutomaticEnv to see it.
		v.SetDefault(key, def)
	}
	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would only fail later at startup.
func (c *Config) Validate() error {
	if !c.Server.IsValidPort() {
		return fmt.Errorf("%w: server port %q", ErrInvalidConfig, c.Server.Port)
	}
	if c.Database.Enabled {
		switch strings.ToLower(c.Database.Driver) {
		case "sqlite", "mysql":
		default:
			return fmt.Errorf("%w: database driver %q", ErrInvalidConfig, c.Database.Driver)
		}
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("%w: storage bucket is empty", ErrInvalidConfig)
	}
	return nil
}

// defaults flattens the `mapstructure` keys of t into dotted paths mapped to
// their `default` tag.
func defaults(t reflect.Type, prefix string) map[string]string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	out := make(map[string]string)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if field.Type.Kind() == reflect.Struct {
			for k, d := range defaults(field.Type, name) {
				out[k] = d
			}
			continue
		}
		out[name] = field.Tag.Get("default")
	}
	return out
}
