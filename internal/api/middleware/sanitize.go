package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookbuddy/library-api/internal/pkg/sanitize"
)

// Sanitize strips NoSQL-operator keys from every inbound request before any
// other stage sees the input. JSON bodies are decoded, cleaned and
// re-serialized; query strings are rebuilt without dangerous keys. Route
// parameter names come from route patterns rather than the client, and
// parameter values are scalars, so they pass through by the key-only rule.
// The middleware never fails a request: unparseable bodies are left for the
// handler's bind step to reject.
func Sanitize() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if q := req.URL.RawQuery; q != "" {
				req.URL.RawQuery = cleanQuery(q)
			}

			if req.Body != nil && strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
				body, err := io.ReadAll(req.Body)
				if err == nil && len(body) > 0 {
					if cleaned, ok := cleanBody(body); ok {
						body = cleaned
					}
					req.Body = io.NopCloser(bytes.NewReader(body))
					req.ContentLength = int64(len(body))
				} else {
					req.Body = io.NopCloser(bytes.NewReader(body))
				}
			}

			return next(c)
		}
	}
}

func cleanBody(body []byte) ([]byte, bool) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, false
	}
	cleaned, err := json.Marshal(sanitize.Clean(decoded))
	if err != nil {
		return nil, false
	}
	return cleaned, true
}

func cleanQuery(rawQuery string) string {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return rawQuery
	}
	for key := range values {
		if sanitize.Dangerous(key) {
			delete(values, key)
		}
	}
	return values.Encode()
}
