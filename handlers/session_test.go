package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Project-Ma-y/Ma-y-sub000/config"
	sessionRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/session"
	"github.com/Project-Ma-y/Ma-y-sub000/middleware"
	"github.com/Project-Ma-y/Ma-y-sub000/models"
	"github.com/Project-Ma-y/Ma-y-sub000/services/session"

	"github.com/gin-gonic/gin"
)

// fakeSessionRepo is an in-memory SessionRepository.
type fakeSessionRepo struct {
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) Insert(s *models.Session) error {
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) GetByID(id string) (*models.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) Patch(id string, upd models.SessionUpdate) error {
	s, ok := f.sessions[id]
	if !ok {
		return sessionRepo.ErrSessionNotFound
	}
	if upd.IsRegistered != nil {
		s.IsRegistered = *upd.IsRegistered
	}
	if upd.RegisteredAt != nil {
		s.RegisteredAt = upd.RegisteredAt
	}
	if upd.UserID != nil {
		s.UserID = *upd.UserID
	}
	if upd.LastVisitApplyPageAt != nil {
		s.LastVisitApplyPageAt = upd.LastVisitApplyPageAt
	}
	if upd.LastApplyAt != nil {
		s.LastApplyAt = upd.LastApplyAt
	}
	s.VisitApplyPageCount += upd.VisitApplyPageDelta
	s.ApplyCount += upd.ApplyDelta
	return nil
}

func (f *fakeSessionRepo) CountAll() (int64, error)              { return int64(len(f.sessions)), nil }
func (f *fakeSessionRepo) CountRegistered() (int64, error)       { return 0, nil }
func (f *fakeSessionRepo) CountVisitedApplyPage() (int64, error) { return 0, nil }
func (f *fakeSessionRepo) CountApplied() (int64, error)          { return 0, nil }

type sessionFixture struct {
	router *gin.Engine
	prod   *fakeSessionRepo
	test   *fakeSessionRepo
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.TestHostMarker = "test.mayservice"
	config.AppConfig.CookieDomain = ""

	prod := newFakeSessionRepo()
	test := newFakeSessionRepo()
	repos := &sessionRepo.RepoSet{Prod: prod, Test: test}
	svc := &session.DefaultSessionService{Repos: repos}
	h := NewSessionHandler(svc)

	r := gin.New()
	r.GET("/api/sessions/main", h.MainLandingHandler)
	r.POST("/api/sessions/main", h.MainLandingHandler)
	r.GET("/api/sessions/cookie", h.EchoSessionCookieHandler)
	r.GET("/api/sessions/booking", middleware.LoadSession(repos, svc), h.BookingPageVisitHandler)

	return &sessionFixture{router: r, prod: prod, test: test}
}

func issuedSessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	return nil
}

// First landing creates a session; replaying the cookie does not.
func TestMainLandingFirstVisitThenReplay(t *testing.T) {
	fx := newSessionFixture(t)

	w1 := httptest.NewRecorder()
	fx.router.ServeHTTP(w1, httptest.NewRequest(http.MethodPost, "/api/sessions/main", nil))

	if w1.Code != http.StatusCreated {
		t.Fatalf("first visit status = %d, want 201 (body %s)", w1.Code, w1.Body.String())
	}
	if !strings.Contains(w1.Body.String(), "세션이 생성되었습니다.") {
		t.Errorf("first visit body = %s", w1.Body.String())
	}
	ck := issuedSessionCookie(w1)
	if ck == nil {
		t.Fatalf("no session cookie issued on first visit")
	}
	if len(fx.prod.sessions) != 1 {
		t.Fatalf("expected one session document, got %d", len(fx.prod.sessions))
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/main", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: ck.Value})
	fx.router.ServeHTTP(w2, req)

	if w2.Code != http.StatusOK {
		t.Fatalf("replay status = %d, want 200 (body %s)", w2.Code, w2.Body.String())
	}
	if !strings.Contains(w2.Body.String(), "이미 세션이 있습니다.") {
		t.Errorf("replay body = %s", w2.Body.String())
	}
	if len(fx.prod.sessions) != 1 {
		t.Errorf("replay created another session document")
	}
}

// A cookie pointing at a purged document gets a fresh session.
func TestMainLandingStaleCookie(t *testing.T) {
	fx := newSessionFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/main", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "dead-session-id"})
	fx.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	ck := issuedSessionCookie(w)
	if ck == nil || ck.Value == "dead-session-id" {
		t.Errorf("stale cookie not replaced with a fresh id")
	}
}

// Test-host traffic lands in the test collection.
func TestMainLandingTestTraffic(t *testing.T) {
	fx := newSessionFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sessions/main", nil)
	req.Header.Set("Origin", "https://test.mayservice.example.com")
	fx.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	if len(fx.test.sessions) != 1 || len(fx.prod.sessions) != 0 {
		t.Errorf("test traffic misclassified: prod=%d test=%d",
			len(fx.prod.sessions), len(fx.test.sessions))
	}
}

// Repeated booking-page visits accumulate on the same document.
func TestBookingPageVisitAccumulates(t *testing.T) {
	fx := newSessionFixture(t)

	// Establish a session first.
	w0 := httptest.NewRecorder()
	fx.router.ServeHTTP(w0, httptest.NewRequest(http.MethodPost, "/api/sessions/main", nil))
	ck := issuedSessionCookie(w0)
	if ck == nil {
		t.Fatalf("no session cookie issued")
	}

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/sessions/booking", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: ck.Value})
		fx.router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("visit #%d status = %d (body %s)", i+1, w.Code, w.Body.String())
		}
	}

	sess := fx.prod.sessions[ck.Value]
	if sess.VisitApplyPageCount != 3 {
		t.Errorf("visitApplyPageCount = %d, want 3", sess.VisitApplyPageCount)
	}
	if sess.LastVisitApplyPageAt == nil {
		t.Errorf("lastVisitApplyPageAt not stamped")
	}
}

func TestEchoSessionCookie(t *testing.T) {
	fx := newSessionFixture(t)

	// Without a cookie the echo endpoint answers 404.
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/cookie", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status without cookie = %d, want 404", w.Code)
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/cookie", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "abc"})
	fx.router.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK || !strings.Contains(w2.Body.String(), "abc") {
		t.Errorf("status with cookie = %d, body = %s", w2.Code, w2.Body.String())
	}
}
