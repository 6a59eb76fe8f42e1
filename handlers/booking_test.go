package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Project-Ma-y/Ma-y-sub000/config"
	bookingRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/booking"
	sessionRepo "github.com/Project-Ma-y/Ma-y-sub000/database/repository/session"
	"github.com/Project-Ma-y/Ma-y-sub000/middleware"
	"github.com/Project-Ma-y/Ma-y-sub000/models"
	"github.com/Project-Ma-y/Ma-y-sub000/services/booking"
	"github.com/Project-Ma-y/Ma-y-sub000/services/session"

	"github.com/gin-gonic/gin"
)

// fakeBookingRepo is an in-memory BookingRepository.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetAll() ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByUserID(userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && !b.IsDeleted {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Update(b *models.Booking) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) SoftDelete(id string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.IsDeleted = true
	b.DeletedAt = &now
	return nil
}

// asUser mimics the auth middleware for a fixed subject id.
func asUser(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUID, uid)
	}
}

type bookingFixture struct {
	router *gin.Engine
	repo   *fakeBookingRepo
	prod   *fakeSessionRepo
}

func newBookingFixture(t *testing.T, uid string, admin bool) *bookingFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.TestHostMarker = "test.mayservice"
	config.AppConfig.CookieDomain = ""

	prod := newFakeSessionRepo()
	repos := &sessionRepo.RepoSet{Prod: prod, Test: newFakeSessionRepo()}
	sessionSvc := &session.DefaultSessionService{Repos: repos}

	repo := newFakeBookingRepo()
	bookingSvc := &booking.DefaultBookingService{Repo: repo}
	h := NewBookingHandler(bookingSvc, sessionSvc, func(string) bool { return admin })

	r := gin.New()
	r.POST("/api/booking", middleware.LoadSession(repos, sessionSvc), asUser(uid), h.CreateBookingHandler)
	r.GET("/api/booking/my", asUser(uid), h.GetMyBookingsHandler)
	r.GET("/api/booking/:id", asUser(uid), h.GetBookingByIDHandler)
	r.PUT("/api/booking/:id", asUser(uid), h.UpdateBookingHandler)
	r.DELETE("/api/booking/:id", asUser(uid), h.DeleteBookingHandler)

	return &bookingFixture{router: r, repo: repo, prod: prod}
}

func bookingPayload(t *testing.T) []byte {
	t.Helper()
	start := time.Now().Add(24 * time.Hour).UTC()
	body, err := json.Marshal(models.BookingInput{
		DepartureAddress:   "서울특별시 마포구",
		DestinationAddress: "서울아산병원",
		StartBookingTime:   start,
		EndBookingTime:     start.Add(2 * time.Hour),
		RoundTrip:          true,
		AssistanceType:     models.AssistanceGuide,
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return body
}

func TestCreateBookingRecordsFunnelEvent(t *testing.T) {
	fx := newBookingFixture(t, "u1", false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/booking", bytes.NewReader(bookingPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	fx.router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	var created models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if created.Status != models.BookingStatusPending {
		t.Errorf("status = %q, want pending", created.Status)
	}
	if created.UserID != "u1" {
		t.Errorf("owner = %q, want u1", created.UserID)
	}

	// The submission must count as one apply-completion on the session.
	if len(fx.prod.sessions) != 1 {
		t.Fatalf("expected one session document, got %d", len(fx.prod.sessions))
	}
	for _, sess := range fx.prod.sessions {
		if sess.ApplyCount != 1 {
			t.Errorf("applyCount = %d, want 1", sess.ApplyCount)
		}
	}
}

func TestCreateBookingReportsAllViolations(t *testing.T) {
	fx := newBookingFixture(t, "u1", false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/booking", bytes.NewReader([]byte(`{"assistanceType":"teleport"}`)))
	req.Header.Set("Content-Type", "application/json")
	fx.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	var body struct {
		Violations []string `json:"violations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(body.Violations) < 5 {
		t.Errorf("violations = %v, want every problem reported at once", body.Violations)
	}
	if len(fx.repo.bookings) != 0 {
		t.Errorf("invalid payload persisted a booking")
	}
}

func TestBookingAccessControl(t *testing.T) {
	owner := newBookingFixture(t, "u1", false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/booking", bytes.NewReader(bookingPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	owner.router.ServeHTTP(w, req)
	var created models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}

	// Another user hitting the same store is rejected.
	intruder := newBookingFixture(t, "intruder", false)
	intruder.repo.bookings = owner.repo.bookings

	w2 := httptest.NewRecorder()
	intruder.router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/booking/"+created.ID, nil))
	if w2.Code != http.StatusForbidden {
		t.Errorf("foreign read status = %d, want 403", w2.Code)
	}

	w3 := httptest.NewRecorder()
	intruder.router.ServeHTTP(w3, httptest.NewRequest(http.MethodDelete, "/api/booking/"+created.ID, nil))
	if w3.Code != http.StatusForbidden {
		t.Errorf("foreign delete status = %d, want 403", w3.Code)
	}

	// An admin may read and delete anyone's booking.
	admin := newBookingFixture(t, "the-admin", true)
	admin.repo.bookings = owner.repo.bookings

	w4 := httptest.NewRecorder()
	admin.router.ServeHTTP(w4, httptest.NewRequest(http.MethodGet, "/api/booking/"+created.ID, nil))
	if w4.Code != http.StatusOK {
		t.Errorf("admin read status = %d, want 200", w4.Code)
	}

	w5 := httptest.NewRecorder()
	admin.router.ServeHTTP(w5, httptest.NewRequest(http.MethodDelete, "/api/booking/"+created.ID, nil))
	if w5.Code != http.StatusOK {
		t.Errorf("admin delete status = %d, want 200 (body %s)", w5.Code, w5.Body.String())
	}
}

func TestDeletedBookingHiddenFromMyListing(t *testing.T) {
	fx := newBookingFixture(t, "u1", false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/booking", bytes.NewReader(bookingPayload(t)))
	req.Header.Set("Content-Type", "application/json")
	fx.router.ServeHTTP(w, req)
	var created models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}

	wDel := httptest.NewRecorder()
	fx.router.ServeHTTP(wDel, httptest.NewRequest(http.MethodDelete, "/api/booking/"+created.ID, nil))
	if wDel.Code != http.StatusOK {
		t.Fatalf("delete status = %d (body %s)", wDel.Code, wDel.Body.String())
	}

	wList := httptest.NewRecorder()
	fx.router.ServeHTTP(wList, httptest.NewRequest(http.MethodGet, "/api/booking/my", nil))
	if wList.Code != http.StatusOK {
		t.Fatalf("listing status = %d", wList.Code)
	}
	var mine []models.Booking
	if err := json.Unmarshal(wList.Body.Bytes(), &mine); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("deleted booking still listed: %+v", mine)
	}

	// Direct lookup still serves the document with its tombstone.
	wGet := httptest.NewRecorder()
	fx.router.ServeHTTP(wGet, httptest.NewRequest(http.MethodGet, "/api/booking/"+created.ID, nil))
	if wGet.Code != http.StatusOK {
		t.Fatalf("lookup status = %d", wGet.Code)
	}
	var got models.Booking
	if err := json.Unmarshal(wGet.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if !got.IsDeleted || got.DeletedAt == nil {
		t.Errorf("tombstone not visible on direct lookup: %+v", got)
	}

	w404 := httptest.NewRecorder()
	fx.router.ServeHTTP(w404, httptest.NewRequest(http.MethodGet, "/api/booking/no-such-id", nil))
	if w404.Code != http.StatusNotFound {
		t.Errorf("missing booking status = %d, want 404", w404.Code)
	}
}
