package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gold-casino-bot/internal/catalog"
)

func TestDrawFollowsRarityRoll(t *testing.T) {
	tests := []struct {
		name string
		roll float64
		want catalog.Rarity
	}{
		{name: "low roll stays common", roll: 0.0, want: catalog.Common},
		{name: "just under rare cutoff", roll: 0.4999, want: catalog.Common},
		{name: "rare band", roll: 0.50, want: catalog.Rare},
		{name: "epic band", roll: 0.80, want: catalog.Epic},
		{name: "top of the table", roll: 0.995, want: catalog.Legendary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGachaService(nil, nil, nil, 1, 50, 10)
			s.randFloat = func() float64 { return tt.roll }
			s.randIntn = func(n int) int { return 0 }

			item := s.draw()
			require.Equal(t, tt.want, item.Rarity)
		})
	}
}

func TestDrawPicksWithinTier(t *testing.T) {
	s := NewGachaService(nil, nil, nil, 1, 50, 10)
	s.randFloat = func() float64 { return 0.0 } // common tier

	commons := catalog.ByRarity(catalog.Common)
	for i := range commons {
		i := i
		s.randIntn = func(n int) int {
			require.Equal(t, len(commons), n)
			return i
		}
		require.Equal(t, commons[i], s.draw())
	}
}
