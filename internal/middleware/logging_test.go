package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func Test_RequestLogger(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	core, logs := observer.New(zapcore.InfoLevel)
	handler := chimw.RequestID(RequestLogger(zap.New(core))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}),
	))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(entries, 1)
	assert.Equal(zapcore.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal("/missing", fields["path"])
	assert.EqualValues(http.StatusNotFound, fields["status"])
	assert.NotEmpty(fields["request_id"])
}
