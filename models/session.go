package models

import "time"

// Session tracks one visitor's funnel progress, keyed by the sessionId cookie.
// A session document is created exactly once and thereafter only patched.
type Session struct {
	ID                   string     `bson:"sessionId" json:"sessionId"`
	CreatedAt            time.Time  `bson:"createdAt" json:"createdAt"`
	IsRegistered         bool       `bson:"isRegistered" json:"isRegistered"`
	RegisteredAt         *time.Time `bson:"registeredAt,omitempty" json:"registeredAt,omitempty"`
	UserID               string     `bson:"userId" json:"userId"` // empty while anonymous
	VisitApplyPageCount  int64      `bson:"visitApplyPageCount" json:"visitApplyPageCount"`
	LastVisitApplyPageAt *time.Time `bson:"lastVisitApplyPageAt,omitempty" json:"lastVisitApplyPageAt,omitempty"`
	ApplyCount           int64      `bson:"applyCount" json:"applyCount"`
	LastApplyAt          *time.Time `bson:"lastApplyAt,omitempty" json:"lastApplyAt,omitempty"`
}

// SessionUpdate is a merge-style partial update. Nil pointer fields are left
// untouched; the deltas translate to atomic increments so concurrent counter
// updates to the same document do not lose writes.
type SessionUpdate struct {
	IsRegistered         *bool
	RegisteredAt         *time.Time
	UserID               *string
	LastVisitApplyPageAt *time.Time
	LastApplyAt          *time.Time

	VisitApplyPageDelta int64
	ApplyDelta          int64
}

// IsZero reports whether the update would touch nothing.
func (u SessionUpdate) IsZero() bool {
	return u.IsRegistered == nil &&
		u.RegisteredAt == nil &&
		u.UserID == nil &&
		u.LastVisitApplyPageAt == nil &&
		u.LastApplyAt == nil &&
		u.VisitApplyPageDelta == 0 &&
		u.ApplyDelta == 0
}
