package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type herd struct {
	HasCow   bool   `json:"has_cow"`
	CowCount string `json:"cow_count"`
}

func TestJSONMap_StructRoundTrip(t *testing.T) {
	m, err := ToJSONMap(herd{HasCow: true, CowCount: "4"})
	require.NoError(t, err)
	assert.Equal(t, true, m["has_cow"])

	value, err := m.Value()
	require.NoError(t, err)

	var scanned JSONMap
	require.NoError(t, scanned.Scan(value))

	var out herd
	require.NoError(t, scanned.Decode(&out))
	assert.Equal(t, herd{HasCow: true, CowCount: "4"}, out)
}

func TestJSONMap_ScanRejectsUnknownTypes(t *testing.T) {
	var m JSONMap
	assert.Error(t, m.Scan(42))
	assert.NoError(t, m.Scan(nil))
	assert.Nil(t, m)
}
