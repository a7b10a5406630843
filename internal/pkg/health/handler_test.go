package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHandler(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, NewRootHandler()(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is running", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/plain")
}

func TestNewPingHandler(t *testing.T) {
	t.Setenv("GIT_COMMIT", "")
	t.Setenv("BUILD_TIME", "")

	t.Run("Default build info", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ping", nil), rec)

		require.NoError(t, NewPingHandler("mfs-users", "")(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var response BuildInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "mfs-users", response.ServiceName)
		assert.Equal(t, "development", response.Version)
		assert.Equal(t, "unknown", response.GitCommit)
		assert.Equal(t, runtime.Version(), response.GoVersion)
		assert.NotEmpty(t, response.Hostname)
		assert.False(t, response.ServerTime.IsZero())
	})

	t.Run("Version and build metadata", func(t *testing.T) {
		t.Setenv("GIT_COMMIT", "def456")
		t.Setenv("BUILD_TIME", "2026-06-01T12:00:00Z")

		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ping", nil), rec)

		require.NoError(t, NewPingHandler("mfs-users", "2.0.0")(c))

		var response BuildInfo
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "2.0.0", response.Version)
		assert.Equal(t, "def456", response.GitCommit)
		assert.Equal(t, "2026-06-01T12:00:00Z", response.BuildTime)
	})
}

func TestHealthService_CheckAllHealth(t *testing.T) {
	t.Run("No checkers is healthy", func(t *testing.T) {
		response := NewHealthService().CheckAllHealth(context.Background())
		assert.Equal(t, StatusHealthy, response.Status)
		assert.Empty(t, response.Dependencies)
	})

	t.Run("One failing dependency marks the service unhealthy", func(t *testing.T) {
		hs := NewHealthService()
		hs.AddChecker("users_store", CheckerFunc(func(ctx context.Context) error {
			return errors.New("connection refused")
		}))
		hs.AddChecker("other", CheckerFunc(func(ctx context.Context) error { return nil }))

		response := hs.CheckAllHealth(context.Background())
		assert.Equal(t, StatusUnhealthy, response.Status)
		assert.Equal(t, DependencyInfo{Status: StatusUnhealthy, Error: "connection refused"}, response.Dependencies["users_store"])
		assert.Equal(t, DependencyInfo{Status: StatusHealthy}, response.Dependencies["other"])
	})
}

func TestRegisterHealthEndpoints(t *testing.T) {
	storeErr := error(nil)
	hs := NewHealthService()
	hs.AddChecker("users_store", CheckerFunc(func(ctx context.Context) error { return storeErr }))

	e := echo.New()
	RegisterHealthEndpoints(e, "mfs-users", "1.0.0", hs)

	tests := []struct {
		name           string
		path           string
		storeErr       error
		expectedStatus int
		expectedBody   string
	}{
		{name: "root", path: "/", expectedStatus: http.StatusOK, expectedBody: "Server is running"},
		{name: "health", path: "/health", expectedStatus: http.StatusOK, expectedBody: "OK"},
		{name: "healthz", path: "/healthz", expectedStatus: http.StatusOK, expectedBody: "OK"},
		{name: "ping", path: "/ping", expectedStatus: http.StatusOK},
		{name: "ready", path: "/ready", expectedStatus: http.StatusOK},
		{name: "not ready", path: "/ready", storeErr: errors.New("down"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storeErr = tt.storeErr

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, rec.Body.String())
			}
		})
	}
}
