package newrelic

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Datastore products reported on segments
const (
	ProductMongoDB  = newrelic.DatastoreMongoDB
	ProductPostgres = newrelic.DatastorePostgres
)

// StartDatastoreSegment opens a datastore segment on the request's transaction.
// The returned segment is nil when the request is not traced, and End on a nil
// *DatastoreSegment is a no-op.
func StartDatastoreSegment(ctx context.Context, product newrelic.DatastoreProduct, collection, operation string) *newrelic.DatastoreSegment {
	txn := FromContext(ctx)
	if txn == nil {
		return nil
	}

	return &newrelic.DatastoreSegment{
		StartTime:  txn.StartSegmentNow(),
		Product:    product,
		Collection: collection,
		Operation:  operation,
	}
}
