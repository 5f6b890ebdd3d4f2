package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classroom/internal/auth"
	"classroom/internal/domain/models"
	"classroom/internal/httputil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubVerifier maps token strings to claims or errors.
type stubVerifier struct {
	claims map[string]*models.Claims
	errs   map[string]error
}

func (s *stubVerifier) VerifyToken(token string) (*models.Claims, error) {
	if err, ok := s.errs[token]; ok {
		return nil, err
	}
	if c, ok := s.claims[token]; ok {
		return c, nil
	}
	return nil, &auth.AuthError{Kind: auth.ErrMalformedClaims, Detail: "unknown test token"}
}

func (s *stubVerifier) Close() error { return nil }

func newStubVerifier() *stubVerifier {
	exp := time.Now().Add(time.Hour)
	return &stubVerifier{
		claims: map[string]*models.Claims{
			"admin-token":   {Subject: "u-admin", Role: models.RoleAdmin, ExpiresAt: exp},
			"teacher-token": {Subject: "u-teacher", Role: models.RoleTeacher, ExpiresAt: exp},
			"student-token": {Subject: "u-student", Role: models.RoleStudent, ExpiresAt: exp},
		},
		errs: map[string]error{
			"expired-token": &auth.AuthError{Kind: auth.ErrExpired},
			"forged-token":  &auth.AuthError{Kind: auth.ErrBadSignature},
		},
	}
}

// echoIdentity writes the subject and credential seen by the handler.
var echoIdentity = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"user_id":    httputil.GetUserID(r),
		"credential": httputil.GetCredential(r),
	})
})

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) httputil.ProblemDetail {
	t.Helper()
	var p httputil.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestAuth(t *testing.T) {
	h := Auth(newStubVerifier(), discardLogger(), "/health")(echoIdentity)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantDetail string
	}{
		{"valid token", "/api/x", "Bearer teacher-token", http.StatusOK, ""},
		{"lowercase scheme", "/api/x", "bearer teacher-token", http.StatusOK, ""},
		{"missing header", "/api/x", "", http.StatusUnauthorized, "missing bearer token"},
		{"basic scheme", "/api/x", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "missing bearer token"},
		{"empty token", "/api/x", "Bearer ", http.StatusUnauthorized, "missing bearer token"},
		{"expired", "/api/x", "Bearer expired-token", http.StatusUnauthorized, "token expired"},
		{"bad signature", "/api/x", "Bearer forged-token", http.StatusUnauthorized, "invalid token signature"},
		{"malformed", "/api/x", "Bearer junk", http.StatusUnauthorized, "malformed token"},
		{"public path", "/health", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
				assert.Equal(t, tt.wantDetail, decodeProblem(t, rec).Detail)
			}
		})
	}
}

func TestAuth_StoresRawCredential(t *testing.T) {
	h := Auth(newStubVerifier(), discardLogger())(echoIdentity)

	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u-student", body["user_id"])
	assert.Equal(t, "student-token", body["credential"])
}

func TestAuth_PreflightPassesThrough(t *testing.T) {
	h := Auth(newStubVerifier(), discardLogger())(echoIdentity)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/x", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	h := Auth(newStubVerifier(), discardLogger())(
		RequireRoles(models.RoleAdmin, models.RoleTeacher)(echoIdentity),
	)

	tests := []struct {
		token      string
		wantStatus int
	}{
		{"admin-token", http.StatusOK},
		{"teacher-token", http.StatusOK},
		{"student-token", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/courses/1", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRoles_WithoutAuth(t *testing.T) {
	h := RequireRolesFunc(echoIdentity, models.RoleAdmin)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTimeout_SetsDeadline(t *testing.T) {
	var deadline time.Time
	var ok bool
	h := Timeout(30 * time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(30*time.Second), deadline, time.Second)
}

func TestTimeout_CancelsSlowWork(t *testing.T) {
	var ctxErr error
	h := Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		ctxErr = r.Context().Err()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.ErrorIs(t, ctxErr, context.DeadlineExceeded)
}

func TestRecovery(t *testing.T) {
	h := Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeProblem(t, rec).Detail)
}

func TestRequestLogger_PassesStatusThrough(t *testing.T) {
	h := RequestLogger(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
