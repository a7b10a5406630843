package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/piresc/mfs/internal/pkg/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// storeError wraps err with the failed action. Only failures to reach the
// store are marked models.ErrStoreUnavailable; anything else, such as a
// document the store rejects, stays a plain error.
func storeError(action string, err error, unavailable func(error) bool) error {
	if unavailable(err) {
		return fmt.Errorf("failed to %s: %w: %w", action, models.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func isContextOrNetError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func isMongoUnavailable(err error) bool {
	return mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		isContextOrNetError(err)
}

func isPostgresUnavailable(err error) bool {
	if isContextOrNetError(err) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) ||
		pgconn.Timeout(err) {
		return true
	}

	// class 08 connection_exception, 57P operator_intervention (shutdown, cannot connect now)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P")
	}
	return false
}
