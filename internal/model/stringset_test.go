package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSet_MarshalIsSorted(t *testing.T) {
	s := NewStringSet("zeta", "alpha", "mu")
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["alpha","mu","zeta"]`, string(data))
}

func TestStringSet_RoundTrip(t *testing.T) {
	var s StringSet
	require.NoError(t, json.Unmarshal([]byte(`["a","b","a"]`), &s))
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.True(t, s.Has("b"))
	assert.False(t, s.Has("c"))
}

func TestStringSet_AddRemove(t *testing.T) {
	s := NewStringSet()
	s.Add("x")
	s.Add("y")
	assert.Equal(t, 2, s.Len())
	s.Remove("x")
	assert.False(t, s.Has("x"))
	assert.Equal(t, []string{"y"}, s.Slice())
}
