package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/logger"
	"github.com/MKhiriev/invisible-wallet/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	return &Handler{auth: testAuth, logger: logger.Nop()}
}

// injectLogger puts l into the request context the way withTraceID does.
func injectLogger(r *http.Request, l zerolog.Logger) *http.Request {
	return r.WithContext(l.WithContext(r.Context()))
}

// ─────────────────────────────────────────────
// platformAuth
// ─────────────────────────────────────────────

func TestPlatformAuth(t *testing.T) {
	expired, err := utils.GenerateJWTToken(testIssuer, testPlatform, -time.Minute, testSignKey)
	require.NoError(t, err)
	foreignIssuer, err := utils.GenerateJWTToken("someone-else", testPlatform, time.Hour, testSignKey)
	require.NoError(t, err)
	foreignKey, err := utils.GenerateJWTToken(testIssuer, testPlatform, time.Hour, "other-key")
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		wantStatus   int
		wantError    string
		wantPlatform string
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrEmptyAuthorizationHeader.Error(),
		},
		{
			name:       "basic scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:       "bearer without token",
			header:     "Bearer ",
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:       "expired",
			header:     "Bearer " + expired.SignedString,
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrInvalidPlatformToken.Error(),
		},
		{
			name:       "foreign issuer",
			header:     "Bearer " + foreignIssuer.SignedString,
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrInvalidPlatformToken.Error(),
		},
		{
			name:       "foreign key",
			header:     "Bearer " + foreignKey.SignedString,
			wantStatus: http.StatusUnauthorized,
			wantError:  ErrInvalidPlatformToken.Error(),
		},
		{
			name:         "valid",
			header:       "Bearer " + platformToken(t, "app-7"),
			wantStatus:   http.StatusOK,
			wantPlatform: "app-7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPlatform string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPlatform = platformID(r)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req = injectLogger(req, zerolog.Nop())
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			newTestHandler().platformAuth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantPlatform, gotPlatform)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec))
			}
		})
	}
}

// ─────────────────────────────────────────────
// withTraceID
// ─────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	t.Run("reuses incoming id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(traceIDHeader, "my-custom-trace-id")

		newTestHandler().withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)

		assert.Equal(t, "my-custom-trace-id", rec.Header().Get(traceIDHeader))
	})

	t.Run("generates uuid", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestHandler().withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		_, err := uuid.Parse(rec.Header().Get(traceIDHeader))
		assert.NoError(t, err)
	})

	t.Run("request logger carries trace id", func(t *testing.T) {
		var buf bytes.Buffer
		h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(traceIDHeader, "trace-1")
		h.withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.FromRequest(r).Info().Msg("inside")
		})).ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, buf.String(), `"trace_id":"trace-1"`)
	})
}

// ─────────────────────────────────────────────
// withLogging
// ─────────────────────────────────────────────

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		path             string
		handlerStatus    int
		handlerResponse  string
		checkLogContains []string
	}{
		{
			name:            "POST 201",
			method:          http.MethodPost,
			path:            "/api/wallets",
			handlerStatus:   http.StatusCreated,
			handlerResponse: "Created",
			checkLogContains: []string{
				`"method":"POST"`,
				`"uri":"/api/wallets"`,
				`"status":201`,
				`"size":7`,
				`"duration":`,
			},
		},
		{
			name:          "no body",
			method:        http.MethodGet,
			path:          "/api/version",
			handlerStatus: http.StatusNoContent,
			checkLogContains: []string{
				`"status":204`,
				`"size":0`,
			},
		},
		{
			name:            "query string is not logged",
			method:          http.MethodGet,
			path:            "/api/wallets/balance?email=alice@example.com",
			handlerStatus:   http.StatusOK,
			handlerResponse: "{}",
			checkLogContains: []string{
				`"uri":"/api/wallets/balance"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				if tt.handlerResponse != "" {
					_, _ = w.Write([]byte(tt.handlerResponse))
				}
			})

			req := injectLogger(httptest.NewRequest(tt.method, tt.path, nil), zerolog.New(&buf))
			rec := httptest.NewRecorder()
			newTestHandler().withLogging(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.handlerStatus, rec.Code)
			for _, expected := range tt.checkLogContains {
				assert.Contains(t, buf.String(), expected)
			}
			assert.NotContains(t, buf.String(), "alice@example.com")
		})
	}
}

func TestWithLogging_NoStatusWritten(t *testing.T) {
	var buf bytes.Buffer
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := injectLogger(httptest.NewRequest(http.MethodGet, "/test", nil), zerolog.New(&buf))
	newTestHandler().withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"status":200`)
}

// ─────────────────────────────────────────────
// responseWriter
// ─────────────────────────────────────────────

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusCreated, w.statusCode())
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestResponseWriter_WriteAccumulatesSize(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	_, err := w.Write([]byte(strings.Repeat("a", 10)))
	require.NoError(t, err)
	_, err = w.Write([]byte("bcd"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.statusCode())
	assert.Equal(t, 13, w.size)
	assert.Equal(t, "aaaaaaaaaabcd", rec.Body.String())
	assert.Same(t, rec, w.Unwrap())
}
