package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/mfs/internal/pkg/database"
	"github.com/piresc/mfs/internal/pkg/models"
	nr "github.com/piresc/mfs/internal/pkg/newrelic"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const emailIndexName = "email_unique"

// MongoUserRepo stores users as free-form documents in a MongoDB collection
type MongoUserRepo struct {
	client *database.MongoClient
	coll   *mongo.Collection
}

// NewMongoUserRepo creates a repository on the given collection of the client's database
func NewMongoUserRepo(client *database.MongoClient, collection string) *MongoUserRepo {
	return &MongoUserRepo{client: client, coll: client.Collection(collection)}
}

// FindByIdentifier returns the user whose email or number equals identifier
func (r *MongoUserRepo) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{models.FieldEmail: identifier},
		bson.M{models.FieldNumber: identifier},
	}}
	return r.findOne(ctx, filter)
}

// FindByEmail returns the user registered with email
func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{models.FieldEmail: email})
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	seg := nr.StartDatastoreSegment(ctx, nr.ProductMongoDB, r.coll.Name(), "findOne")
	defer seg.End()

	var doc bson.M
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find user", err, isMongoUnavailable)
	}

	return models.UserFromDocument(plainDocument(doc)), nil
}

// Insert stores user and returns the generated id in hex form
func (r *MongoUserRepo) Insert(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	seg := nr.StartDatastoreSegment(ctx, nr.ProductMongoDB, r.coll.Name(), "insertOne")
	defer seg.End()

	res, err := r.coll.InsertOne(ctx, bson.M(user.Document()))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrUserAlreadyExists
		}
		return nil, storeError("insert user", err, isMongoUnavailable)
	}

	user.ID = idString(res.InsertedID)

	return &models.InsertResult{Acknowledged: true, InsertedID: user.ID}, nil
}

// EnsureSchema creates the unique email index
func (r *MongoUserRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: models.FieldEmail, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(emailIndexName),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// Ping checks the primary is reachable
func (r *MongoUserRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

func idString(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}

// plainDocument converts driver specific values into types encoding/json renders naturally
func plainDocument(doc bson.M) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case bson.M:
		return plainDocument(val)
	case bson.D:
		return plainDocument(val.Map())
	case bson.A:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}
