package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{PrefixProfile, PrefixClient, "x"} {
		t.Run(prefix, func(t *testing.T) {
			v, err := Generate(prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(v, prefix+"-"))
			assert.Len(t, strings.TrimPrefix(v, prefix+"-"), 21)
		})
	}
}

func TestNewProfileID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 500 {
		v, err := NewProfileID()
		require.NoError(t, err)
		assert.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}

func TestNewEventID_IsUUID(t *testing.T) {
	v := NewEventID()
	_, err := uuid.Parse(v)
	assert.NoError(t, err)
	assert.NotEqual(t, v, NewEventID())
}

func TestMustGenerate(t *testing.T) {
	assert.True(t, strings.HasPrefix(MustGenerate(PrefixClient), "cli-"))
}
