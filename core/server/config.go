package server

import "strconv"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
}

// IsValidPort checks if the configured port is a usable TCP port number.
func (c Config) IsValidPort() bool {
	p, err := strconv.Atoi(c.Port)
	if err != nil {
		return false
	}
	return p > 0 && p < 65536
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + c.Port
}
