package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/mfs/internal/pkg/logger"
	"github.com/piresc/mfs/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *logger.ZapLogger {
	return &logger.ZapLogger{Logger: zap.NewNop()}
}

func TestNewGracefulServer(t *testing.T) {
	tests := []struct {
		name            string
		cfg             models.ServerConfig
		expectedAddr    string
		expectedTimeout time.Duration
	}{
		{name: "Port only", cfg: models.ServerConfig{Port: 5000}, expectedAddr: ":5000", expectedTimeout: 30 * time.Second},
		{name: "Host and timeout", cfg: models.ServerConfig{Host: "127.0.0.1", Port: 8080, ShutdownTimeout: 5}, expectedAddr: "127.0.0.1:8080", expectedTimeout: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := NewGracefulServer(echo.New(), testLogger(), tt.cfg, nil)
			assert.Equal(t, tt.expectedAddr, gs.Addr())
			assert.Equal(t, tt.expectedTimeout, gs.shutdownTimeout)
		})
	}
}

func TestGracefulServer_StartAndStop(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Server is running")
	})

	closed := false
	components := NewShutdownManager(testLogger())
	components.Register(func(ctx context.Context) error {
		closed = true
		return nil
	})

	gs := NewGracefulServer(e, testLogger(), models.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: 2}, components)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- gs.Start(ctx)
	}()

	require.Eventually(t, func() bool {
		return e.ListenerAddr() != nil
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + e.ListenerAddr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, closed)
}

func TestGracefulServer_ListenFailure(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	port := busy.Addr().(*net.TCPAddr).Port
	gs := NewGracefulServer(e, testLogger(), models.ServerConfig{Host: "127.0.0.1", Port: port}, nil)

	select {
	case err := <-startAsync(gs):
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("expected listen failure")
	}
}

func startAsync(gs *GracefulServer) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- gs.Start(context.Background())
	}()
	return done
}

func TestShutdownManager(t *testing.T) {
	t.Run("Runs functions in registration order", func(t *testing.T) {
		sm := NewShutdownManager(testLogger())
		var callOrder []int
		for i := 0; i < 3; i++ {
			index := i
			sm.Register(func(ctx context.Context) error {
				callOrder = append(callOrder, index)
				return nil
			})
		}

		assert.NoError(t, sm.Shutdown(context.Background()))
		assert.Equal(t, []int{0, 1, 2}, callOrder)
	})

	t.Run("Failing component does not stop the rest", func(t *testing.T) {
		sm := NewShutdownManager(testLogger())
		secondCalled := false
		sm.Register(func(ctx context.Context) error { return errors.New("close failed") })
		sm.Register(func(ctx context.Context) error {
			secondCalled = true
			return nil
		})

		assert.NoError(t, sm.Shutdown(context.Background()))
		assert.True(t, secondCalled)
	})

	t.Run("Concurrent registration", func(t *testing.T) {
		sm := NewShutdownManager(testLogger())
		var mu sync.Mutex
		calls := 0

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sm.Register(func(ctx context.Context) error {
					mu.Lock()
					calls++
					mu.Unlock()
					return nil
				})
			}()
		}
		wg.Wait()

		assert.NoError(t, sm.Shutdown(context.Background()))
		assert.Equal(t, 10, calls)
	})

	t.Run("Nil function is ignored", func(t *testing.T) {
		sm := NewShutdownManager(testLogger())
		assert.NotPanics(t, func() {
			sm.Register(nil)
			_ = sm.Shutdown(context.Background())
		})
	})
}
