package stats

import (
	"testing"

	"github.com/Project-Ma-y/Ma-y-sub000/models"
)

// fakeCountRepo implements SessionRepository with canned funnel counts.
type fakeCountRepo struct {
	total, registered, reached, applied int64
}

func (f *fakeCountRepo) Insert(*models.Session) error             { return nil }
func (f *fakeCountRepo) GetByID(string) (*models.Session, error)  { return nil, nil }
func (f *fakeCountRepo) Patch(string, models.SessionUpdate) error { return nil }
func (f *fakeCountRepo) CountAll() (int64, error)                 { return f.total, nil }
func (f *fakeCountRepo) CountRegistered() (int64, error)          { return f.registered, nil }
func (f *fakeCountRepo) CountVisitedApplyPage() (int64, error)    { return f.reached, nil }
func (f *fakeCountRepo) CountApplied() (int64, error)             { return f.applied, nil }

type fakeSnapshotRepo struct {
	saved []*models.StatsSnapshot
}

func (f *fakeSnapshotRepo) Save(s *models.StatsSnapshot) error {
	f.saved = append(f.saved, s)
	return nil
}

func (f *fakeSnapshotRepo) GetRange(from, to string) ([]models.StatsSnapshot, error) {
	var out []models.StatsSnapshot
	for _, s := range f.saved {
		if s.Date >= from && s.Date <= to {
			out = append(out, *s)
		}
	}
	return out, nil
}

func TestSignupConversion(t *testing.T) {
	svc := &DefaultStatsService{Repo: &fakeCountRepo{total: 10, registered: 4}}

	rate, err := svc.SignupConversion()
	if err != nil {
		t.Fatalf("SignupConversion returned error: %v", err)
	}
	if rate != 0.4 {
		t.Errorf("rate = %v, want 0.4", rate)
	}
}

func TestRatiosWithZeroSessions(t *testing.T) {
	svc := &DefaultStatsService{Repo: &fakeCountRepo{}}

	for name, fn := range map[string]func() (float64, error){
		"SignupConversion":      svc.SignupConversion,
		"ApplicationReach":      svc.ApplicationReach,
		"ApplicationConversion": svc.ApplicationConversion,
	} {
		rate, err := fn()
		if err != nil {
			t.Errorf("%s returned error with empty collection: %v", name, err)
		}
		if rate != 0 {
			t.Errorf("%s = %v with empty collection, want 0", name, rate)
		}
	}
}

func TestFunnelSummary(t *testing.T) {
	svc := &DefaultStatsService{
		Repo: &fakeCountRepo{total: 20, registered: 10, reached: 5, applied: 2},
	}

	summary, err := svc.FunnelSummary()
	if err != nil {
		t.Fatalf("FunnelSummary returned error: %v", err)
	}
	if summary.TotalSessions != 20 || summary.RegisteredSessions != 10 ||
		summary.ReachedApplySessions != 5 || summary.AppliedSessions != 2 {
		t.Errorf("counts wrong: %+v", summary)
	}
	if summary.SignupConversion != 0.5 {
		t.Errorf("signupConversion = %v, want 0.5", summary.SignupConversion)
	}
	if summary.ApplicationReach != 0.25 {
		t.Errorf("applicationReach = %v, want 0.25", summary.ApplicationReach)
	}
	if summary.ApplicationConversion != 0.1 {
		t.Errorf("applicationConversion = %v, want 0.1", summary.ApplicationConversion)
	}
}

func TestSnapshotUpsertsByDate(t *testing.T) {
	snapshots := &fakeSnapshotRepo{}
	svc := &DefaultStatsService{
		Repo:      &fakeCountRepo{total: 10, registered: 4, reached: 2, applied: 1},
		Snapshots: snapshots,
	}

	snap, err := svc.Snapshot("2026-09-01")
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if snap.Date != "2026-09-01" {
		t.Errorf("date = %q, want 2026-09-01", snap.Date)
	}
	if snap.SignupConversion != 0.4 || snap.ApplicationReach != 0.2 || snap.ApplicationConversion != 0.1 {
		t.Errorf("ratios wrong: %+v", snap)
	}
	if snap.TakenAt.IsZero() {
		t.Errorf("takenAt not stamped")
	}
	if len(snapshots.saved) != 1 {
		t.Fatalf("expected one saved snapshot, got %d", len(snapshots.saved))
	}
}
