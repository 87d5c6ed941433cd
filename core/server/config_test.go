package server_test

import (
	"testing"

	"ingress-identity/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidPort(t *testing.T) {
	tests := []struct {
		name string
		port string
		want bool
	}{
		{"Default", "8080", true},
		{"Low", "1", true},
		{"Zero", "0", false},
		{"TooHigh", "70000", false},
		{"NotNumber", "http", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Port: tt.port}
			assert.Equal(t, tt.want, c.IsValidPort())
		})
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":9000", server.Config{Port: "9000"}.Address())
}
