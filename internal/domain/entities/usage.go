package entities

import "time"

// UsagePeriod identifies one of the three quota windows.
type UsagePeriod string

// Quota window periods, in the order they are checked.
const (
	PeriodDaily   UsagePeriod = "daily"
	PeriodWeekly  UsagePeriod = "weekly"
	PeriodMonthly UsagePeriod = "monthly"
)

// UsageWindow is one rolling quota counter. Count is monotonically
// non-decreasing within a period and resets to zero exactly once per
// period boundary.
type UsageWindow struct {
	Count     int       `json:"count"`
	Limit     int       `json:"limit"`
	LastReset time.Time `json:"last_reset"`
}

// NextReset returns when the window's counter next resets for the given
// cadence.
func (w UsageWindow) NextReset(cadence time.Duration) time.Time {
	return w.LastReset.Add(cadence)
}

// UsageRecord is the authoritative per-user usage state, owned and mutated
// exclusively by the server-side quota engine.
type UsageRecord struct {
	UserID         string      `json:"user_id"`
	Daily          UsageWindow `json:"daily"`
	Weekly         UsageWindow `json:"weekly"`
	Monthly        UsageWindow `json:"monthly"`
	CustomLimit    *int        `json:"custom_limit,omitempty"`
	IsUnlimited    bool        `json:"is_unlimited,omitempty"`
	LastExtraction *time.Time  `json:"last_extraction,omitempty"`
}

// EffectiveDailyLimit returns the daily window's limit, honoring a per-user
// custom override when set.
func (r *UsageRecord) EffectiveDailyLimit() int {
	if r.CustomLimit != nil && *r.CustomLimit > 0 {
		return *r.CustomLimit
	}
	return r.Daily.Limit
}

// NextResets carries the next reset timestamp of each window.
type NextResets struct {
	Daily   time.Time `json:"daily"`
	Weekly  time.Time `json:"weekly"`
	Monthly time.Time `json:"monthly"`
}

// UsageStatus is the read-only projection of a UsageRecord served to callers.
// Clients only ever read snapshots; they never mutate usage state.
type UsageStatus struct {
	LimitExceeded  bool        `json:"limit_exceeded"`
	ExceededPeriod UsagePeriod `json:"exceeded_period,omitempty"`
	Daily          UsageWindow `json:"daily"`
	Weekly         UsageWindow `json:"weekly"`
	Monthly        UsageWindow `json:"monthly"`
	IsUnlimited    bool        `json:"is_unlimited,omitempty"`
	NextReset      NextResets  `json:"next_reset"`
	FillPercent    float64     `json:"fill_percent"`
	LastExtraction *time.Time  `json:"last_extraction,omitempty"`
}
