package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorResponseMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ErrorCode
		field  string
	}{
		{apperrors.NewCredentialError("password", "Invalid password"), 400, dto.ErrorCodeInvalidCredentials, "password"},
		{apperrors.ErrInvalidDateRange, 400, dto.ErrorCodeValidationFailed, "endDate"},
		{apperrors.ErrTooManyAttempts, 429, dto.ErrorCodeTooManyAttempts, ""},
		{apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken, ""},
		{apperrors.ErrUnauthorized, 401, dto.ErrorCodeUnauthorized, ""},
		{fmt.Errorf("lookup: %w", apperrors.ErrBatchNotFound), 404, dto.ErrorCodeResourceNotFound, ""},
		{apperrors.ErrRollNoExists, 409, dto.ErrorCodeResourceAlreadyExists, "rollNo"},
		{apperrors.ErrBatchHasStudents, 409, dto.ErrorCodeConflict, ""},
		{fmt.Errorf("%w: boom", apperrors.ErrPartialEnrollment), 500, dto.ErrorCodePartialEnrollment, ""},
		{fmt.Errorf("%w: boom", apperrors.ErrPartialUnenrollment), 500, dto.ErrorCodePartialEnrollment, ""},
		{errors.New("connection refused"), 500, dto.ErrorCodeInternalServer, ""},
	}
	for _, tc := range cases {
		status, resp := errorResponse(tc.err)
		if status != tc.status || resp.Code != tc.code || resp.Field != tc.field || !resp.Error {
			t.Fatalf("%v: got %d %s field=%q", tc.err, status, resp.Code, resp.Field)
		}
	}

	_, resp := errorResponse(errors.New("pq: password authentication failed for user admin"))
	if resp.Message != "Internal server error" {
		t.Fatalf("internal details leaked: %s", resp.Message)
	}
}

func TestAdminAuth(t *testing.T) {
	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "s", TokenExp: time.Hour, TokenIssuer: "registrar"})
	token, _, err := jwtSvc.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	newRouter := func(required bool) *gin.Engine {
		r := gin.New()
		r.GET("/x", NewAuthMiddleware(jwtSvc, required).AdminAuth(), func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString(ContextUsername))
		})
		return r
	}

	cases := []struct {
		required bool
		header   string
		status   int
	}{
		{false, "", http.StatusOK},
		{true, "", http.StatusUnauthorized},
		{true, "Bearer garbage", http.StatusUnauthorized},
		{true, "Basic abc", http.StatusUnauthorized},
		{true, "Bearer " + token, http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		newRouter(tc.required).ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Fatalf("required=%v header=%q: expected %d, got %d", tc.required, tc.header, tc.status, w.Code)
		}
	}

	w := httptest.NewRecorder()
	newRouter(true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x?token="+token, nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected query token to be ignored, got %d %s", w.Code, w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("unexpected preflight response %d %v", w.Code, w.Header())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unexpected origin allowed")
	}
}

func TestRecoveryRendersEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || !resp.Error || resp.Code != dto.ErrorCodeInternalServer {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
