package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/mfs/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDisabledApp(t *testing.T) *newrelic.Application {
	t.Helper()
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("mfs-test"),
		newrelic.ConfigLicense("0000000000000000000000000000000000000000"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)
	return app
}

func TestInitNewRelic_Disabled(t *testing.T) {
	cfg := &models.Config{}
	assert.Nil(t, InitNewRelic(cfg))

	cfg.NewRelic.Enabled = true
	assert.Nil(t, InitNewRelic(cfg), "missing license key keeps New Relic off")
}

func TestStartDatastoreSegment(t *testing.T) {
	t.Run("untraced context", func(t *testing.T) {
		seg := StartDatastoreSegment(context.Background(), ProductMongoDB, "users", "findOne")
		assert.Nil(t, seg)
		seg.End()
	})

	t.Run("traced context", func(t *testing.T) {
		txn := newDisabledApp(t).StartTransaction("register")
		defer txn.End()

		ctx := newrelic.NewContext(context.Background(), txn)
		seg := StartDatastoreSegment(ctx, ProductPostgres, "users", "INSERT")
		require.NotNil(t, seg)
		assert.Equal(t, "users", seg.Collection)
		assert.Equal(t, "INSERT", seg.Operation)
		seg.End()
	})
}

func TestWithSegmentAndReturn(t *testing.T) {
	got, err := WithSegmentAndReturn(context.Background(), "lookup", func() (string, error) {
		return "a@x.com", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got)

	wantErr := errors.New("boom")
	_, err = WithSegmentAndReturn(context.Background(), "lookup", func() (int, error) {
		return 0, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestTraceHandler(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	wantErr := errors.New("handler failed")
	err := TraceHandler("health", func(c echo.Context) error {
		return wantErr
	})(c)

	assert.ErrorIs(t, err, wantErr)
}
