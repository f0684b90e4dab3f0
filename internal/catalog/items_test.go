package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPickRarity(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		want Rarity
	}{
		{"zero is common", 0, Common},
		{"just below common cutoff", 0.4999, Common},
		{"common cutoff starts rare", 0.50, Rare},
		{"just below rare cutoff", 0.7999, Rare},
		{"rare cutoff starts epic", 0.80, Epic},
		{"just below epic cutoff", 0.9899, Epic},
		{"epic cutoff starts legendary", 0.99, Legendary},
		{"top of the range", 0.9999, Legendary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PickRarity(tt.roll))
		})
	}
}

func TestNextRarity(t *testing.T) {
	next, ok := NextRarity(Common)
	require.True(t, ok)
	assert.Equal(t, Rare, next)

	next, ok = NextRarity(Epic)
	require.True(t, ok)
	assert.Equal(t, Legendary, next)

	_, ok = NextRarity(Legendary)
	assert.False(t, ok)
}

func TestByRarity(t *testing.T) {
	// Every tier has at least one item so every roll can land somewhere.
	for _, r := range []Rarity{Common, Rare, Epic, Legendary} {
		items := ByRarity(r)
		require.NotEmpty(t, items, "tier %s has no items", r)
		for _, item := range items {
			assert.Equal(t, r, item.Rarity)
		}
	}
}

func TestGet(t *testing.T) {
	item, ok := Get(1)
	require.True(t, ok)
	assert.Equal(t, "Wooden Spoon", item.Name)

	_, ok = Get(999)
	assert.False(t, ok)
}

// TestPickRarityTotalProperty checks every draw in [0,1) lands on a valid
// tier with items behind it.
func TestPickRarityTotalProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		roll := rapid.Float64Range(0, 0.999999).Draw(t, "roll")
		r := PickRarity(roll)
		if len(ByRarity(r)) == 0 {
			t.Fatalf("roll %f picked empty tier %s", roll, r)
		}
	})
}
