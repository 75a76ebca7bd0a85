package teams

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoundTrip(t *testing.T) {
	for _, code := range Codes {
		got, ok := Resolve(strings.ToUpper(string(code)))
		require.True(t, ok, "code %s should resolve", code)
		assert.Equal(t, code, got)

		name := Name(code)
		require.NotEmpty(t, name, "code %s should have a display name", code)

		got, ok = Resolve(strings.ToLower(name))
		require.True(t, ok, "name %q should resolve", name)
		assert.Equal(t, code, got)
	}
}

func TestResolveAliases(t *testing.T) {
	tests := []struct {
		raw  string
		want Code
	}{
		{"Chiefs", "KC"},
		{"  kansas city chiefs ", "KC"},
		{"niners", "SF"},
		{"The Buffalo Bills are rolling", "BUF"},
		{"gb", "GB"},
		{"Football Team", "WAS"},
	}
	for _, tt := range tests {
		got, ok := Resolve(tt.raw)
		require.True(t, ok, "%q should resolve", tt.raw)
		assert.Equal(t, tt.want, got, "input %q", tt.raw)
	}
}

func TestResolveNotFound(t *testing.T) {
	for _, raw := range []string{"", "   ", "real madrid", "xyzzy"} {
		_, ok := Resolve(raw)
		assert.False(t, ok, "%q should not resolve", raw)
	}
}

func TestResolveDeterministicSubstring(t *testing.T) {
	// The substring pass iterates aliases in sorted order, so repeated calls
	// with an ambiguous fragment must return the same code.
	first, ok := Resolve("new york")
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		got, ok := Resolve("new york")
		require.True(t, ok)
		assert.Equal(t, first, got)
	}
}

func TestAliases(t *testing.T) {
	aliases := Aliases("KC")
	assert.Contains(t, aliases, "kc")
	assert.Contains(t, aliases, "KC")
	assert.Contains(t, aliases, "Kansas City Chiefs")
	assert.Contains(t, aliases, "kansas city chiefs")
	assert.Contains(t, aliases, "chiefs")

	for _, code := range Codes {
		got := Aliases(code)
		assert.NotEmpty(t, got)
		for _, alias := range got[2:] { // skip the raw code forms
			resolved, ok := Resolve(alias)
			require.True(t, ok, "alias %q of %s should resolve", alias, code)
			assert.Equal(t, code, resolved)
		}
	}
}
