package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"gold-casino-bot/internal/model"
)

// day builds a submission timestamped at noon N days before the base date.
func day(base time.Time, daysAgo int, messageID int64) model.Submission {
	return model.Submission{
		MessageID:  messageID,
		UserID:     1,
		InsertedAt: base.AddDate(0, 0, -daysAgo).Add(12 * time.Hour),
	}
}

func TestCurrentStreak(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		daysAgo []int // oldest first
		want    int
	}{
		{"no submissions", nil, 0},
		{"single day", []int{0}, 1},
		{"two consecutive days", []int{1, 0}, 2},
		{"week long run", []int{6, 5, 4, 3, 2, 1, 0}, 7},
		{"gap breaks the run", []int{5, 4, 1, 0}, 2},
		{"gap of exactly one day keeps the run", []int{2, 1, 0}, 3},
		{"several same day submissions count once", []int{1, 0, 0, 0}, 2},
		{"old isolated submission ignored", []int{30, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var subs []model.Submission
			for i, d := range tt.daysAgo {
				subs = append(subs, day(base, d, int64(i+1)))
			}
			assert.Equal(t, tt.want, CurrentStreak(subs))
		})
	}
}

func TestStreakBonus(t *testing.T) {
	tests := []struct {
		streak int
		want   int64
	}{
		{0, 0},
		{7, 0},   // at the threshold, no bonus yet
		{8, 1},   // log7(8) = 1.06
		{48, 1},  // log7(48) = 1.99
		{49, 2},  // log7(49) = 2
		{342, 2}, // log7(342) = 2.999
		{343, 3}, // log7(343) = 3
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StreakBonus(tt.streak), "streak %d", tt.streak)
	}
}

// TestCurrentStreakUnbrokenRunProperty checks that an unbroken run of daily
// submissions always yields a streak equal to the number of days.
func TestCurrentStreakUnbrokenRunProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numDays := rapid.IntRange(1, 60).Draw(t, "numDays")
		perDay := rapid.IntRange(1, 3).Draw(t, "perDay")

		base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		var subs []model.Submission
		id := int64(1)
		for d := numDays - 1; d >= 0; d-- {
			for j := 0; j < perDay; j++ {
				subs = append(subs, day(base, d, id))
				id++
			}
		}

		if got := CurrentStreak(subs); got != numDays {
			t.Fatalf("unbroken %d-day run counted as %d", numDays, got)
		}
	})
}

// TestCurrentStreakGapProperty checks that a gap always caps the streak at
// the run after the gap.
func TestCurrentStreakGapProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		runAfterGap := rapid.IntRange(1, 20).Draw(t, "runAfterGap")
		runBeforeGap := rapid.IntRange(1, 20).Draw(t, "runBeforeGap")
		gap := rapid.IntRange(2, 10).Draw(t, "gap")

		base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		var subs []model.Submission
		id := int64(1)

		// Older run, separated from the recent one by the gap.
		firstOld := runAfterGap - 1 + gap
		for d := firstOld + runBeforeGap - 1; d >= firstOld; d-- {
			subs = append(subs, day(base, d, id))
			id++
		}
		for d := runAfterGap - 1; d >= 0; d-- {
			subs = append(subs, day(base, d, id))
			id++
		}

		if got := CurrentStreak(subs); got != runAfterGap {
			t.Fatalf("expected streak %d after gap, got %d", runAfterGap, got)
		}
	})
}
