package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDGeneratesWhenAbsent(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	CorrelationID(zerolog.Nop())(next).ServeHTTP(recorder, req)

	require.NotEmpty(t, seen)
	require.Equal(t, seen, recorder.Header().Get("X-Request-ID"))
}

func TestCorrelationIDHonorsIncomingHeader(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "from-proxy")
	recorder := httptest.NewRecorder()

	CorrelationID(zerolog.Nop())(next).ServeHTTP(recorder, req)

	require.Equal(t, "from-proxy", seen)
	require.Equal(t, "from-proxy", recorder.Header().Get("X-Request-ID"))
}

func TestRequestLoggingPreservesStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	RequestLogging(zerolog.Nop())(next).ServeHTTP(recorder, req)

	require.Equal(t, http.StatusTeapot, recorder.Code)
}
