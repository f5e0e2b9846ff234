package keynorm_test

import (
	"testing"

	"github.com/andresousadotpt/keynorm"
	"github.com/stretchr/testify/assert"
)

func TestReverseTable(t *testing.T) {
	// Every named key must round-trip through the reverse table. This
	// also proves the forward table has no code collisions.
	for name, code := range keynorm.Codes {
		assert.Equal(t, name, keynorm.Names[code], "code %d", int(code))
	}
	assert.Equal(t, len(keynorm.Codes), len(keynorm.Names))
}

func TestWellKnownCodes(t *testing.T) {
	cases := []struct {
		name string
		code keynorm.Code
	}{
		{"a", 65},
		{"z", 90},
		{"0", 48},
		{"9", 57},
		{"enter", keynorm.KeyEnter},
		{"space", keynorm.KeySpace},
		{"escape", 27},
		{"f1", 112},
		{"f12", 123},
		{"numpad0", 96},
		{"numpad9", 105},
		{"semicolon", 186},
		{"quote", 222},
	}

	for _, c := range cases {
		assert.Equal(t, c.code, keynorm.Codes[c.name], c.name)
	}
}
