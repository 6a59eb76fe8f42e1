package stats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sessionRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/session"
	statsRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/stats"
	"github.com/Project-Ma-y/Ma-y-sub000/models"
	"github.com/Project-Ma-y/Ma-y-sub000/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service computes funnel conversion ratios over the session collection.
// Every ratio is in [0,1]; with zero sessions each ratio is 0, never NaN.
type Service interface {
	// SignupConversion = registered sessions / all sessions.
	SignupConversion() (float64, error)
	// ApplicationReach = sessions that visited the booking page / all sessions.
	ApplicationReach() (float64, error)
	// ApplicationConversion = sessions that completed a booking / all sessions.
	ApplicationConversion() (float64, error)
	// FunnelSummary returns all three ratios plus the raw counts.
	FunnelSummary() (*models.FunnelStats, error)
	// Snapshot persists the current ratios as the record for the given date.
	Snapshot(date string) (*models.StatsSnapshot, error)
}

// DefaultStatsService implements Service. Aggregates always read the
// production session collection; test-classified traffic never enters the
// funnel numbers. Cache is optional: a nil client disables caching.
type DefaultStatsService struct {
	Repo      sessionRepo.SessionRepository
	Snapshots statsRepo.SnapshotRepository
	Cache     *redis.Client
	CacheTTL  time.Duration
}

// Cache keys for the three ratios.
const (
	cacheKeySignupConversion      = "stats:signup-conversion"
	cacheKeyApplicationReach      = "stats:application-reach"
	cacheKeyApplicationConversion = "stats:application-conversion"
)

// SignupConversion returns the registration ratio.
func (s *DefaultStatsService) SignupConversion() (float64, error) {
	return s.cachedRatio(cacheKeySignupConversion, "signup conversion", s.Repo.CountRegistered)
}

// ApplicationReach returns the booking-page reach ratio.
func (s *DefaultStatsService) ApplicationReach() (float64, error) {
	return s.cachedRatio(cacheKeyApplicationReach, "application reach", s.Repo.CountVisitedApplyPage)
}

// ApplicationConversion returns the completed-booking ratio.
func (s *DefaultStatsService) ApplicationConversion() (float64, error) {
	return s.cachedRatio(cacheKeyApplicationConversion, "application conversion", s.Repo.CountApplied)
}

// FunnelSummary computes all three ratios in one pass over the counts.
func (s *DefaultStatsService) FunnelSummary() (*models.FunnelStats, error) {
	total, err := s.Repo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("stats service: funnel summary failed: %w", err)
	}
	registered, err := s.Repo.CountRegistered()
	if err != nil {
		return nil, fmt.Errorf("stats service: funnel summary failed: %w", err)
	}
	reached, err := s.Repo.CountVisitedApplyPage()
	if err != nil {
		return nil, fmt.Errorf("stats service: funnel summary failed: %w", err)
	}
	applied, err := s.Repo.CountApplied()
	if err != nil {
		return nil, fmt.Errorf("stats service: funnel summary failed: %w", err)
	}

	return &models.FunnelStats{
		TotalSessions:         total,
		RegisteredSessions:    registered,
		ReachedApplySessions:  reached,
		AppliedSessions:       applied,
		SignupConversion:      ratio(registered, total),
		ApplicationReach:      ratio(reached, total),
		ApplicationConversion: ratio(applied, total),
	}, nil
}

// Snapshot persists the current funnel numbers as the record for date.
func (s *DefaultStatsService) Snapshot(date string) (*models.StatsSnapshot, error) {
	summary, err := s.FunnelSummary()
	if err != nil {
		return nil, err
	}

	snapshot := &models.StatsSnapshot{
		Date:                  date,
		TotalSessions:         summary.TotalSessions,
		SignupConversion:      summary.SignupConversion,
		ApplicationReach:      summary.ApplicationReach,
		ApplicationConversion: summary.ApplicationConversion,
		TakenAt:               time.Now(),
	}

	if err := s.Snapshots.Save(snapshot); err != nil {
		return nil, fmt.Errorf("stats service: snapshot failed: %w", err)
	}
	return snapshot, nil
}

// cachedRatio serves a ratio from the stats cache when possible, computing
// and caching on miss. Cache failures degrade to a plain computation.
func (s *DefaultStatsService) cachedRatio(key, name string, numerator func() (int64, error)) (float64, error) {
	ctx := context.Background()

	if s.Cache != nil {
		val, err := s.Cache.Get(ctx, key).Result()
		if err == nil {
			if rate, perr := strconv.ParseFloat(val, 64); perr == nil {
				return rate, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("stats cache read failed, computing directly",
				zap.String("key", key), zap.Error(err))
		}
	}

	num, err := numerator()
	if err != nil {
		return 0, fmt.Errorf("stats service: %s failed: %w", name, err)
	}
	total, err := s.Repo.CountAll()
	if err != nil {
		return 0, fmt.Errorf("stats service: %s failed: %w", name, err)
	}

	rate := ratio(num, total)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, strconv.FormatFloat(rate, 'f', -1, 64), s.CacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("stats cache write failed",
				zap.String("key", key), zap.Error(err))
		}
	}
	return rate, nil
}

// ratio divides with the 0/0 → 0 convention.
func ratio(num, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(num) / float64(total)
}
