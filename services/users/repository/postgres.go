package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/mfs/internal/pkg/database"
	"github.com/piresc/mfs/internal/pkg/models"
	nr "github.com/piresc/mfs/internal/pkg/newrelic"
)

// pgUniqueViolation is the SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

const createUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id         UUID PRIMARY KEY,
		email      TEXT NOT NULL UNIQUE,
		number     TEXT,
		doc        JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

const createNumberIndex = `CREATE INDEX IF NOT EXISTS users_number_idx ON users (number)`

// PostgresUserRepo stores each user document as JSONB next to its lookup columns
type PostgresUserRepo struct {
	client *database.PostgresClient
	db     *sqlx.DB
}

type userRow struct {
	ID  string `db:"id"`
	Doc []byte `db:"doc"`
}

// NewPostgresUserRepo creates a repository on the client's pool
func NewPostgresUserRepo(client *database.PostgresClient) *PostgresUserRepo {
	return &PostgresUserRepo{client: client, db: client.GetDB()}
}

// FindByIdentifier returns the user whose email or number equals identifier
func (r *PostgresUserRepo) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `
		SELECT id, doc
		FROM users
		WHERE email = $1 OR number = $1
		ORDER BY created_at
		LIMIT 1
	`
	return r.getUser(ctx, query, identifier)
}

// FindByEmail returns the user registered with email
func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, doc
		FROM users
		WHERE email = $1
	`
	return r.getUser(ctx, query, email)
}

func (r *PostgresUserRepo) getUser(ctx context.Context, query, value string) (*models.User, error) {
	seg := nr.StartDatastoreSegment(ctx, nr.ProductPostgres, "users", "SELECT")
	defer seg.End()

	var row userRow
	err := r.db.GetContext(ctx, &row, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("get user", err, isPostgresUnavailable)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(row.Doc, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode user document: %w", err)
	}
	doc[models.FieldID] = row.ID

	return models.UserFromDocument(doc), nil
}

// Insert stores user under a new UUID
func (r *PostgresUserRepo) Insert(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	seg := nr.StartDatastoreSegment(ctx, nr.ProductPostgres, "users", "INSERT")
	defer seg.End()

	doc, err := json.Marshal(user.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to encode user document: %w", err)
	}

	id := uuid.New().String()
	number := sql.NullString{String: user.Number, Valid: user.Number != ""}

	query := `
		INSERT INTO users (id, email, number, doc, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query, id, user.Email, number, doc, time.Now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, models.ErrUserAlreadyExists
		}
		return nil, storeError("insert user", err, isPostgresUnavailable)
	}

	user.ID = id

	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// EnsureSchema creates the users table and its indexes
func (r *PostgresUserRepo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createUsersTable, createNumberIndex} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to prepare users schema: %w", err)
		}
	}
	return nil
}

// Ping checks the database is reachable
func (r *PostgresUserRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
