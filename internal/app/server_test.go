package app

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orgball2608/insta-profile-sync/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type checkFunc func() error

func (f checkFunc) CheckWritable() error { return f() }

func TestHealthz(t *testing.T) {
	ok := func() error { return nil }
	down := stderrors.New("down")

	tests := []struct {
		name     string
		ping     error
		check    error
		wantCode int
		wantBody string
	}{
		{name: "healthy", wantCode: http.StatusOK, wantBody: "ok"},
		{name: "database down", ping: down, wantCode: http.StatusServiceUnavailable, wantBody: "database unavailable\n"},
		{name: "storage read-only", check: down, wantCode: http.StatusServiceUnavailable, wantBody: "download directory not writable\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := checkFunc(ok)
			if tt.check != nil {
				check = func() error { return tt.check }
			}
			h := NewHandler(logger.NewNop(), pingFunc(func(context.Context) error { return tt.ping }), check)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}
