package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Haugenau20/campaign-companion/internal/domain/entities"
	"github.com/Haugenau20/campaign-companion/internal/domain/ports"
)

// Window cadences. Each window resets on its own fixed cadence; the monthly
// window uses a 30-day equivalent rather than calendar months.
const (
	DailyCadence   = 24 * time.Hour
	WeeklyCadence  = 7 * 24 * time.Hour
	MonthlyCadence = 30 * 24 * time.Hour
)

// Default window limits, applied when no explicit limits are configured.
const (
	DefaultDailyLimit   = 10
	DefaultWeeklyLimit  = 30
	DefaultMonthlyLimit = 75
)

// QuotaLimits configures the default limit of each usage window.
type QuotaLimits struct {
	Daily   int
	Weekly  int
	Monthly int
}

// QuotaService is the authoritative quota engine. It tracks per-user
// extraction usage across three independent windows and decides whether one
// more extraction call is allowed. All mutation goes through the usage
// store's transactional Update, so concurrent reservations from two clients
// cannot both observe "under limit".
type QuotaService struct {
	store  ports.UsageStore
	limits QuotaLimits

	// timeNow can be overridden in tests.
	timeNow func() time.Time
}

// NewQuotaService creates a new quota service. Zero or negative limits fall
// back to the defaults.
func NewQuotaService(store ports.UsageStore, limits QuotaLimits) *QuotaService {
	if limits.Daily <= 0 {
		limits.Daily = DefaultDailyLimit
	}
	if limits.Weekly <= 0 {
		limits.Weekly = DefaultWeeklyLimit
	}
	if limits.Monthly <= 0 {
		limits.Monthly = DefaultMonthlyLimit
	}
	return &QuotaService{
		store:   store,
		limits:  limits,
		timeNow: time.Now,
	}
}

// CheckAndReserve atomically evaluates whether one more extraction call is
// allowed for the user and, if so, increments all three window counters and
// records the extraction time. On rejection no counter changes; the status
// reports the first window (daily, weekly, monthly) whose projected count
// would exceed its limit. Window resets that have come due are applied
// inside the same transaction.
func (s *QuotaService) CheckAndReserve(ctx context.Context, userID string) (entities.UsageStatus, error) {
	now := s.timeNow()

	var status entities.UsageStatus
	_, err := s.store.Update(ctx, userID, s.defaultRecord(now), func(rec *entities.UsageRecord) error {
		resetDueWindows(rec, now)

		if period := s.exceededPeriod(rec); period != "" {
			status = s.projectStatus(rec, period)
			return nil
		}

		rec.Daily.Count++
		rec.Weekly.Count++
		rec.Monthly.Count++
		at := now
		rec.LastExtraction = &at

		status = s.projectStatus(rec, "")
		return nil
	})
	if err != nil {
		// Callers must treat extraction as unavailable, never as unlimited.
		return entities.UsageStatus{}, fmt.Errorf("reserving extraction quota: %w", err)
	}

	return status, nil
}

// ReadStatus returns the user's usage snapshot without consuming quota.
// Due resets are applied to the projection only; the stored record is not
// mutated until the next reservation.
func (s *QuotaService) ReadStatus(ctx context.Context, userID string) (entities.UsageStatus, error) {
	now := s.timeNow()

	rec, err := s.store.Get(ctx, userID, s.defaultRecord(now))
	if err != nil {
		return entities.UsageStatus{}, fmt.Errorf("reading usage record: %w", err)
	}

	resetDueWindows(rec, now)
	return s.projectStatus(rec, s.exceededPeriod(rec)), nil
}

// SetCustomLimit sets or clears (limit <= 0) a per-user daily limit override.
func (s *QuotaService) SetCustomLimit(ctx context.Context, userID string, limit int) error {
	_, err := s.store.Update(ctx, userID, s.defaultRecord(s.timeNow()), func(rec *entities.UsageRecord) error {
		if limit <= 0 {
			rec.CustomLimit = nil
			return nil
		}
		rec.CustomLimit = &limit
		return nil
	})
	if err != nil {
		return fmt.Errorf("setting custom limit: %w", err)
	}
	return nil
}

// SetUnlimited toggles the user's unlimited flag.
func (s *QuotaService) SetUnlimited(ctx context.Context, userID string, unlimited bool) error {
	_, err := s.store.Update(ctx, userID, s.defaultRecord(s.timeNow()), func(rec *entities.UsageRecord) error {
		rec.IsUnlimited = unlimited
		return nil
	})
	if err != nil {
		return fmt.Errorf("setting unlimited flag: %w", err)
	}
	return nil
}

// defaultRecord builds the zeroed record seeded for first-time users.
func (s *QuotaService) defaultRecord(now time.Time) entities.UsageRecord {
	return entities.UsageRecord{
		Daily:   entities.UsageWindow{Limit: s.limits.Daily, LastReset: now},
		Weekly:  entities.UsageWindow{Limit: s.limits.Weekly, LastReset: now},
		Monthly: entities.UsageWindow{Limit: s.limits.Monthly, LastReset: now},
	}
}

// exceededPeriod returns the first window whose projected count after one
// more reservation would exceed its effective limit, or "" when the
// reservation is allowed. Unlimited users are always allowed.
func (s *QuotaService) exceededPeriod(rec *entities.UsageRecord) entities.UsagePeriod {
	if rec.IsUnlimited {
		return ""
	}
	if rec.Daily.Count+1 > rec.EffectiveDailyLimit() {
		return entities.PeriodDaily
	}
	if rec.Weekly.Count+1 > rec.Weekly.Limit {
		return entities.PeriodWeekly
	}
	if rec.Monthly.Count+1 > rec.Monthly.Limit {
		return entities.PeriodMonthly
	}
	return ""
}

// projectStatus builds the read-only status snapshot for a record.
func (s *QuotaService) projectStatus(rec *entities.UsageRecord, exceeded entities.UsagePeriod) entities.UsageStatus {
	status := entities.UsageStatus{
		LimitExceeded:  exceeded != "",
		ExceededPeriod: exceeded,
		Daily:          rec.Daily,
		Weekly:         rec.Weekly,
		Monthly:        rec.Monthly,
		IsUnlimited:    rec.IsUnlimited,
		NextReset: entities.NextResets{
			Daily:   rec.Daily.NextReset(DailyCadence),
			Weekly:  rec.Weekly.NextReset(WeeklyCadence),
			Monthly: rec.Monthly.NextReset(MonthlyCadence),
		},
		LastExtraction: rec.LastExtraction,
	}
	status.Daily.Limit = rec.EffectiveDailyLimit()
	status.FillPercent = fillPercent(rec, exceeded != "")
	return status
}

// fillPercent blends the three windows into one display heuristic: daily
// pressure dominates, but sustained weekly or monthly pressure still raises
// the indicator while the daily window looks healthy.
func fillPercent(rec *entities.UsageRecord, exceeded bool) float64 {
	if exceeded {
		return 100
	}
	daily := windowPercent(rec.Daily.Count, rec.EffectiveDailyLimit())
	weekly := windowPercent(rec.Weekly.Count, rec.Weekly.Limit) * 0.5
	monthly := windowPercent(rec.Monthly.Count, rec.Monthly.Limit) * 0.3
	return max(daily, weekly, monthly)
}

// windowPercent returns a window's fill as a percentage capped at 100.
func windowPercent(count, limit int) float64 {
	if limit <= 0 {
		return 0
	}
	pct := float64(count) / float64(limit) * 100
	return min(pct, 100)
}

// resetDueWindows resets each window whose boundary has passed, advancing
// LastReset by whole cadences so boundaries stay fixed.
func resetDueWindows(rec *entities.UsageRecord, now time.Time) {
	resetWindow(&rec.Daily, DailyCadence, now)
	resetWindow(&rec.Weekly, WeeklyCadence, now)
	resetWindow(&rec.Monthly, MonthlyCadence, now)
}

func resetWindow(w *entities.UsageWindow, cadence time.Duration, now time.Time) {
	if w.LastReset.IsZero() {
		w.LastReset = now
		return
	}
	elapsed := now.Sub(w.LastReset)
	if elapsed < cadence {
		return
	}
	periods := elapsed / cadence
	w.LastReset = w.LastReset.Add(periods * cadence)
	w.Count = 0
}
