package service

import (
	"context"
	"errors"
	"math"
	"time"

	"gold-casino-bot/internal/model"
	"gold-casino-bot/internal/pkg/lock"
	"gold-casino-bot/internal/repository"
)

// ErrAlreadySubmitted is returned when a message was already rewarded.
var ErrAlreadySubmitted = errors.New("already submitted")

// streakBonusThreshold is the streak length above which bonus gold kicks in.
const streakBonusThreshold = 7

// SubmissionService handles daily photo submissions and streaks.
type SubmissionService struct {
	subRepo  *repository.SubmissionRepository
	goldRepo *repository.GoldRepository
	userLock *lock.UserLock

	baseReward int64
}

// NewSubmissionService creates a new SubmissionService instance.
func NewSubmissionService(
	subRepo *repository.SubmissionRepository,
	goldRepo *repository.GoldRepository,
	userLock *lock.UserLock,
	baseReward int64,
) *SubmissionService {
	return &SubmissionService{
		subRepo:    subRepo,
		goldRepo:   goldRepo,
		userLock:   userLock,
		baseReward: baseReward,
	}
}

// SubmissionResult describes one rewarded submission.
type SubmissionResult struct {
	Awarded   int64 // gold granted, base plus streak bonus
	Bonus     int64 // streak bonus portion
	Streak    int   // streak at the time of submission
	TotalGold int64 // balance after the grant
}

// Award grants gold for a photo submission. Each message grants at most
// once; resubmitting returns ErrAlreadySubmitted.
func (s *SubmissionService) Award(ctx context.Context, userID, messageID int64) (*SubmissionResult, error) {
	has, err := s.subRepo.Has(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if has {
		return nil, ErrAlreadySubmitted
	}

	subs, err := s.subRepo.FetchByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	streak := CurrentStreak(subs)
	bonus := StreakBonus(streak)
	awarded := s.baseReward + bonus

	var total int64
	err = s.userLock.WithLockContext(ctx, userID, lockWait, func() error {
		var err error
		total, err = s.goldRepo.Add(ctx, userID, awarded)
		if err != nil {
			return err
		}
		return s.subRepo.Track(ctx, messageID, userID)
	})
	if err != nil {
		return nil, err
	}

	return &SubmissionResult{
		Awarded:   awarded,
		Bonus:     bonus,
		Streak:    streak,
		TotalGold: total,
	}, nil
}

// Streak returns a user's current submission streak.
func (s *SubmissionService) Streak(ctx context.Context, userID int64) (int, error) {
	subs, err := s.subRepo.FetchByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return CurrentStreak(subs), nil
}

// CurrentStreak counts the trailing run of consecutive days with at least
// one submission, ending at the most recent submission. A gap of more than
// one day breaks the run.
func CurrentStreak(subs []model.Submission) int {
	if len(subs) == 0 {
		return 0
	}

	days := 0
	var last time.Time
	for i := len(subs) - 1; i >= 0; i-- {
		day := dateOnly(subs[i].InsertedAt)
		if !day.Equal(last) {
			days++
			last = day
		}
		// A gap of more than one calendar day ends the run.
		if i > 0 && day.AddDate(0, 0, -1).After(dateOnly(subs[i-1].InsertedAt)) {
			break
		}
	}
	return days
}

// StreakBonus is the extra gold for long streaks: floor(log7(streak)) once
// the streak passes the threshold.
func StreakBonus(streak int) int64 {
	if streak <= streakBonusThreshold {
		return 0
	}
	return int64(math.Floor(math.Log(float64(streak)) / math.Log(streakBonusThreshold)))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
