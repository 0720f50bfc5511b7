package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookbuddy/library-api/internal/api/handler"
	"github.com/bookbuddy/library-api/internal/core/domain"
)

func renderError(t *testing.T, err error, production bool) (int, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), production)(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrTokenExpired, http.StatusUnauthorized},
		{domain.ErrInvalidToken, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrSelfDemotion, http.StatusBadRequest},
		{domain.ErrSelfDeletion, http.StatusBadRequest},
		{domain.ErrWeakPassword, http.StatusBadRequest},
		{domain.ErrUserExists, http.StatusBadRequest},
		{domain.ErrDuplicateISBN, http.StatusBadRequest},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrBookNotFound, http.StatusNotFound},
		{domain.ErrPostNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		code, body := renderError(t, tc.err, true)
		if code != tc.code {
			t.Fatalf("%v: status = %d, want %d", tc.err, code, tc.code)
		}
		if body["success"] != false {
			t.Fatalf("%v: success = %v, want false", tc.err, body["success"])
		}
		if body["error"] != tc.err.Error() {
			t.Fatalf("%v: error = %v", tc.err, body["error"])
		}
	}
}

func TestErrorHandler_ValidationEnvelope(t *testing.T) {
	err := &handler.ValidationErrors{Fields: []string{
		"email must be a valid email",
		"password must be at least 8 characters",
	}}

	code, body := renderError(t, err, true)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}

	fields, ok := body["errors"].([]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("errors = %v, want both messages", body["errors"])
	}
	if _, present := body["error"]; present {
		t.Fatalf("validation envelope must not carry a single error string: %v", body)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	err := echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests from this IP, please try again later.")

	code, body := renderError(t, err, true)
	if code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", code)
	}
	if !strings.Contains(body["error"].(string), "Too many requests") {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestErrorHandler_UnexpectedErrorHidesDetailInProduction(t *testing.T) {
	boom := errors.New("mongo: socket was unexpectedly closed")

	code, body := renderError(t, boom, true)
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("error = %v", body["error"])
	}
	if _, present := body["detail"]; present {
		t.Fatalf("production response leaked detail: %v", body)
	}

	_, body = renderError(t, boom, false)
	if body["detail"] != boom.Error() {
		t.Fatalf("development response missing detail: %v", body)
	}
}
