package models

import "time"

// FunnelStats aggregates the three funnel ratios over the session collection.
// Ratios are in [0,1]; with zero sessions every ratio is 0.
type FunnelStats struct {
	TotalSessions         int64   `json:"totalSessions"`
	RegisteredSessions    int64   `json:"registeredSessions"`
	ReachedApplySessions  int64   `json:"reachedApplySessions"`
	AppliedSessions       int64   `json:"appliedSessions"`
	SignupConversion      float64 `json:"signupConversion"`
	ApplicationReach      float64 `json:"applicationReach"`
	ApplicationConversion float64 `json:"applicationConversion"`
}

// StatsSnapshot is a persisted daily record of the funnel ratios.
type StatsSnapshot struct {
	Date                  string    `bson:"date" json:"date"` // YYYY-MM-DD
	TotalSessions         int64     `bson:"totalSessions" json:"totalSessions"`
	SignupConversion      float64   `bson:"signupConversion" json:"signupConversion"`
	ApplicationReach      float64   `bson:"applicationReach" json:"applicationReach"`
	ApplicationConversion float64   `bson:"applicationConversion" json:"applicationConversion"`
	TakenAt               time.Time `bson:"takenAt" json:"takenAt"`
}
