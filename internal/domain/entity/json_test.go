package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTripsThroughDriver(t *testing.T) {
	v, err := JSON{"entity": "prescription"}.Value()
	require.NoError(t, err)

	var out JSON
	require.NoError(t, out.Scan(v))
	assert.Equal(t, "prescription", out["entity"])
}

func TestJSONEmptyAndNull(t *testing.T) {
	v, err := JSON{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	out := JSON{"stale": true}
	require.NoError(t, out.Scan(nil))
	assert.Nil(t, out)

	assert.Error(t, out.Scan(42))
}
