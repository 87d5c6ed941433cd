package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Int", 7, 7},
		{"String", "12", 12},
		{"Padded", " 3 ", 3},
		{"Float", "8.9", 8},
		{"Garbage", "abc", 0},
		{"Empty", "", 0},
		{"Float64", 4.2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-4, 0, 16))
	assert.Equal(t, 16, Clamp(99, 0, 16))
	assert.Equal(t, 9, Clamp(9, 0, 16))
}

func TestParseBool(t *testing.T) {
	v, ok := ParseBool("TRUE")
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = ParseBool(" false ")
	assert.True(t, ok)
	assert.False(t, v)

	_, ok = ParseBool("1")
	assert.False(t, ok)
	_, ok = ParseBool("yes")
	assert.False(t, ok)
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("True"))
	assert.True(t, ToBool(1))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool(nil))
}
