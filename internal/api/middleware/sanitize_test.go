package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func invokeSanitize(t *testing.T, req *http.Request) *http.Request {
	t.Helper()

	e := echo.New()
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *http.Request
	err := Sanitize()(func(c echo.Context) error {
		seen = c.Request()
		return nil
	})(c)
	if err != nil {
		t.Fatalf("sanitize middleware failed: %v", err)
	}
	return seen
}

func TestSanitize_StripsOperatorKeysFromBody(t *testing.T) {
	body := `{"email":{"$gt":""},"password":"x","profile":{"a.b":1,"name":"brig"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	seen := invokeSanitize(t, req)

	got, err := io.ReadAll(seen.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if strings.Contains(string(got), "$gt") || strings.Contains(string(got), "a.b") {
		t.Fatalf("dangerous keys survived: %s", got)
	}
	if !strings.Contains(string(got), `"password":"x"`) {
		t.Fatalf("benign field lost: %s", got)
	}
	if seen.ContentLength != int64(len(got)) {
		t.Fatalf("ContentLength = %d, body is %d bytes", seen.ContentLength, len(got))
	}
}

func TestSanitize_StripsQueryKeys(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/books?search=dune&$where=1&a.b=2", nil)

	seen := invokeSanitize(t, req)

	q := seen.URL.Query()
	if q.Get("search") != "dune" {
		t.Fatalf("benign query param lost: %v", q)
	}
	if len(q) != 1 {
		t.Fatalf("dangerous query params survived: %v", q)
	}
}

func TestSanitize_LeavesInvalidJSONForBind(t *testing.T) {
	body := `{"broken":`
	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	seen := invokeSanitize(t, req)

	got, err := io.ReadAll(seen.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(got) != body {
		t.Fatalf("invalid body altered: %q", got)
	}
}

func TestSanitize_IgnoresNonJSONBodies(t *testing.T) {
	body := `$where=1`
	req := httptest.NewRequest(http.MethodPost, "/api/books", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)

	seen := invokeSanitize(t, req)

	got, err := io.ReadAll(seen.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(got) != body {
		t.Fatalf("non-JSON body altered: %q", got)
	}
}
