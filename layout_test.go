package keynorm_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andresousadotpt/keynorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUSLayoutChars(t *testing.T) {
	l := keynorm.USLayout()
	assert.Equal(t, "us", l.Name())

	cases := []struct {
		code  keynorm.Code
		shift bool
		want  rune
	}{
		{keynorm.Code('A'), false, 'a'},
		{keynorm.Code('A'), true, 'A'},
		{keynorm.Code('0'), false, '0'},
		{keynorm.Code('0'), true, ')'},
		{keynorm.Code('2'), true, '@'},
		{keynorm.KeySemicolon, true, ':'},
		{keynorm.KeyQuote, false, '\''},
		{keynorm.KeyBackquote, true, '~'},
		{keynorm.KeySpace, false, ' '},
		{keynorm.KeySpace, true, ' '},
		{keynorm.Codes["numpad7"], true, '7'},
		{keynorm.KeyEnter, false, 0},
		{keynorm.KeyLeft, false, 0},
		{keynorm.KeyShift, true, 0},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, l.Char(c.code, c.shift),
			"code %d shift %v", int(c.code), c.shift)
	}
}

func TestLoadLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uk.yml")
	content := `name: uk
keys:
  "2": {normal: "2", shifted: "\""}
  quote: {normal: "'", shifted: "@"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l, err := keynorm.LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, "uk", l.Name())

	// Overridden keys.
	assert.Equal(t, '"', l.Char(keynorm.Code('2'), true))
	assert.Equal(t, '@', l.Char(keynorm.KeyQuote, true))

	// Everything else falls back to the US layout.
	assert.Equal(t, 'a', l.Char(keynorm.Code('A'), false))
	assert.Equal(t, ')', l.Char(keynorm.Code('0'), true))
}

func TestLoadLayoutErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := keynorm.LoadLayout(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)

	unnamed := filepath.Join(dir, "unnamed.yml")
	require.NoError(t, os.WriteFile(unnamed, []byte("keys: {}\n"), 0644))
	_, err = keynorm.LoadLayout(unnamed)
	assert.ErrorContains(t, err, "no name")

	badKey := filepath.Join(dir, "badkey.yml")
	require.NoError(t, os.WriteFile(badKey, []byte("name: x\nkeys:\n  nosuchkey: {normal: a, shifted: A}\n"), 0644))
	_, err = keynorm.LoadLayout(badKey)
	assert.ErrorContains(t, err, "unknown key name")
}
