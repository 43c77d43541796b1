package shop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedJSON = `[
  {
    "name": "Alice Johnson",
    "phone": "555-0101",
    "timestamp": 1714000000,
    "notes": "leave at front desk",
    "items": [
      {"name": "Widget", "price": 9.99},
      {"name": "Gadget", "price": 19.5}
    ]
  },
  {
    "name": "Bob Lee",
    "phone": 5550202,
    "timestamp": 1714180000,
    "notes": "",
    "items": []
  }
]`

func TestDecodeSeedRecords(t *testing.T) {
	records, err := DecodeSeedRecords(strings.NewReader(seedJSON))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Alice Johnson", records[0].Name)
	assert.EqualValues(t, "555-0101", records[0].Phone)
	assert.EqualValues(t, 1714000000, records[0].Timestamp)
	require.Len(t, records[0].Items, 2)
	assert.Equal(t, "Widget", records[0].Items[0].Name)
	assert.Equal(t, 9.99, records[0].Items[0].Price)

	// Numeric phones are normalized to their digit string.
	assert.EqualValues(t, "5550202", records[1].Phone)
	assert.Empty(t, records[1].Items)
}

func TestDecodeSeedRecordsRejectsGarbage(t *testing.T) {
	_, err := DecodeSeedRecords(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)
}
