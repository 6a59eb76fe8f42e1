package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Project-Ma-y/Ma-y-sub000/models"

	"github.com/gin-gonic/gin"
)

// fakeStatsService returns canned funnel numbers.
type fakeStatsService struct {
	signup, reach, conversion float64
}

func (f *fakeStatsService) SignupConversion() (float64, error)      { return f.signup, nil }
func (f *fakeStatsService) ApplicationReach() (float64, error)      { return f.reach, nil }
func (f *fakeStatsService) ApplicationConversion() (float64, error) { return f.conversion, nil }

func (f *fakeStatsService) FunnelSummary() (*models.FunnelStats, error) {
	return &models.FunnelStats{
		TotalSessions:         10,
		RegisteredSessions:    4,
		ReachedApplySessions:  2,
		AppliedSessions:       1,
		SignupConversion:      f.signup,
		ApplicationReach:      f.reach,
		ApplicationConversion: f.conversion,
	}, nil
}

func (f *fakeStatsService) Snapshot(date string) (*models.StatsSnapshot, error) {
	return &models.StatsSnapshot{Date: date}, nil
}

func newStatsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewStatsHandler(&fakeStatsService{signup: 0.4, reach: 0.2, conversion: 0.1})

	r := gin.New()
	r.GET("/api/stats/signup-conversion", h.SignupConversionHandler)
	r.GET("/api/stats/application-reach", h.ApplicationReachHandler)
	r.GET("/api/stats/application-conversion", h.ApplicationConversionHandler)
	r.GET("/api/stats/funnel", h.FunnelSummaryHandler)
	return r
}

func TestRateEndpoints(t *testing.T) {
	r := newStatsRouter()

	cases := []struct {
		path string
		want float64
	}{
		{"/api/stats/signup-conversion", 0.4},
		{"/api/stats/application-reach", 0.2},
		{"/api/stats/application-conversion", 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
			}
			var body map[string]float64
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if body["rate"] != tc.want {
				t.Errorf("rate = %v, want %v", body["rate"], tc.want)
			}
		})
	}
}

func TestFunnelSummaryEndpoint(t *testing.T) {
	r := newStatsRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats/funnel", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	var summary models.FunnelStats
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if summary.TotalSessions != 10 || summary.SignupConversion != 0.4 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}
