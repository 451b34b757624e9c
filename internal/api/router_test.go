package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookworks/book-app/internal/core/domain"
	"github.com/bookworks/book-app/internal/core/service"
)

type memPrincipalStore struct {
	records map[string]*domain.Principal
	nextID  int
}

func newMemPrincipalStore() *memPrincipalStore {
	return &memPrincipalStore{records: make(map[string]*domain.Principal)}
}

func (s *memPrincipalStore) key(kind domain.Role, username string) string {
	return string(kind) + "/" + username
}

func (s *memPrincipalStore) FindByUsername(_ context.Context, kind domain.Role, username string) (*domain.Principal, error) {
	if p, ok := s.records[s.key(kind, username)]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPrincipalNotFound
}

func (s *memPrincipalStore) FindByID(_ context.Context, kind domain.Role, id string) (*domain.Principal, error) {
	for _, p := range s.records {
		if p.Role == kind && p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (s *memPrincipalStore) Create(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	key := s.key(p.Role, p.Username)
	if _, exists := s.records[key]; exists {
		return nil, domain.ErrUsernameTaken
	}
	s.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("p-%d", s.nextID)
	s.records[key] = &clone
	out := clone
	return &out, nil
}

func (s *memPrincipalStore) DeleteByID(_ context.Context, kind domain.Role, id string) error {
	for key, p := range s.records {
		if p.Role == kind && p.ID == id {
			delete(s.records, key)
			return nil
		}
	}
	return domain.ErrPrincipalNotFound
}

func newTestServer(t *testing.T) (*echo.Echo, *service.AuthService) {
	t.Helper()
	store := newMemPrincipalStore()
	hasher := service.NewPasswordHasher(4)
	tokens := service.NewTokenIssuer("test-secret", time.Hour)
	log := zerolog.Nop()

	authService := service.NewAuthService(store, hasher, tokens, log)
	adminService := service.NewAdminService(store, log)

	e := NewRouter(Services{
		Auth:  authService,
		Admin: adminService,
		Books: nil, // catalog routes are not exercised here
	}, tokens, nil, nil, log)
	return e, authService
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeToken(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
	if resp["token"] == "" {
		t.Fatalf("missing token in response: %s", rec.Body.String())
	}
	return resp["token"]
}

func TestRouter_ReaderRegistrationAndLoginFlow(t *testing.T) {
	e, _ := newTestServer(t)

	// Fresh registration succeeds and the token identifies the reader.
	rec := doJSON(e, http.MethodPost, "/api/book-app/reader/register",
		`{"username":"alice","password":"p@ss1234","name":"Alice","surname":"A"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	token := decodeToken(t, rec)

	claims, err := service.NewTokenIssuer("test-secret", time.Hour).Parse(token)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.Subject != "alice" || claims.Role != domain.RoleReader {
		t.Fatalf("unexpected claims: subject=%q role=%s", claims.Subject, claims.Role)
	}

	// Re-registering the username fails with the envelope.
	rec = doJSON(e, http.MethodPost, "/api/book-app/reader/register",
		`{"username":"alice","password":"other","name":"Alice","surname":"A"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", rec.Code)
	}
	var envelope struct {
		Message   string    `json:"message"`
		Status    int       `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	if envelope.Message != "Username already exists" || envelope.Status != http.StatusBadRequest {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
	if envelope.Timestamp.IsZero() {
		t.Fatalf("envelope timestamp missing")
	}

	// Correct credentials log in; wrong ones fail with the uniform message.
	rec = doJSON(e, http.MethodPost, "/api/book-app/reader/login",
		`{"username":"alice","password":"p@ss1234"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	decodeToken(t, rec)

	rec = doJSON(e, http.MethodPost, "/api/book-app/reader/login",
		`{"username":"alice","password":"wrong"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad login: expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Username or password is incorrect") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	// Unknown username fails with the exact same message.
	rec2 := doJSON(e, http.MethodPost, "/api/book-app/reader/login",
		`{"username":"ghost","password":"p@ss1234"}`, "")
	if rec2.Code != http.StatusBadRequest || rec2.Body.String() == "" {
		t.Fatalf("unknown login: expected 400, got %d", rec2.Code)
	}
	if !strings.Contains(rec2.Body.String(), "Username or password is incorrect") {
		t.Fatalf("message leaks which half failed: %s", rec2.Body.String())
	}
}

func TestRouter_ValidationEnvelope(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/book-app/author/register",
		`{"username":"  ","password":""}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var envelope struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid envelope: %v", err)
	}
	if envelope.Fields["username"] == "" || envelope.Fields["password"] == "" {
		t.Fatalf("expected per-field messages, got %+v", envelope.Fields)
	}
}

func TestRouter_AdminDeletion(t *testing.T) {
	e, authService := newTestServer(t)
	ctx := context.Background()

	if err := authService.EnsureAdmin(ctx, "root", "rootpass"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	rec := doJSON(e, http.MethodPost, "/api/book-app/admin/login",
		`{"username":"root","password":"rootpass"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	adminToken := decodeToken(t, rec)

	// Deleting an absent author is 404, not success.
	rec = doJSON(e, http.MethodDelete, "/api/book-app/admin/author/missing-id", "", adminToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", rec.Code, rec.Body.String())
	}

	// A reader token cannot reach admin routes.
	rec = doJSON(e, http.MethodPost, "/api/book-app/reader/register",
		`{"username":"bob","password":"pw"}`, "")
	readerToken := decodeToken(t, rec)

	rec = doJSON(e, http.MethodDelete, "/api/book-app/admin/author/missing-id", "", readerToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for reader token, got %d", rec.Code)
	}

	// No token is 401.
	rec = doJSON(e, http.MethodDelete, "/api/book-app/admin/author/missing-id", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
