package exercise

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// UserLogSchema represents the user_logs table in PostgreSQL. The log column
// holds the embedded entry sequence as a jsonb array so an append is a
// single atomic row update.
type UserLogSchema struct {
	bun.BaseModel `bun:"table:user_logs,alias:ul"`

	UUID      uuid.UUID  `bun:"uuid,pk,type:uuid" json:"uuid"`
	Username  string     `bun:"username,notnull,unique" json:"username"`
	Log       []Entry    `bun:"log,notnull,type:jsonb,default:'[]'" json:"log"`
	Revision  int        `bun:"revision,notnull,default:0" json:"revision"`
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations, the analogue of the legacy duplicate-key code.
const pgUniqueViolation = "23505"

// PostgresLogStore implements the LogStore interface on PostgreSQL.
type PostgresLogStore struct {
	db *bun.DB
}

// NewPostgresLogStore creates a new log store instance.
func NewPostgresLogStore(db *bun.DB) *PostgresLogStore {
	return &PostgresLogStore{db: db}
}

// OpenDB opens a bun database handle for the given DSN.
func OpenDB(dsn string, maxConnections int) *bun.DB {
	if maxConnections <= 0 {
		maxConnections = 10
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(maxConnections)
	sqldb.SetMaxIdleConns(maxConnections / 2)
	sqldb.SetConnMaxLifetime(time.Hour)

	return bun.NewDB(sqldb, pgdialect.New())
}

// CreateTables creates the user_logs table if it does not exist.
func CreateTables(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*UserLogSchema)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create user_logs table: %w", err)
	}
	return nil
}

// CreateUser persists a new user log with an empty entry sequence.
func (s *PostgresLogStore) CreateUser(ctx context.Context, username string) (*UserLog, error) {
	if username == "" {
		return nil, NewValidationError("username", "Error, username field cannot be empty!")
	}

	schema := UserLogSchema{
		UUID:      uuid.New(),
		Username:  username,
		Log:       []Entry{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err := s.db.NewInsert().
		Model(&schema).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, NewDuplicateUsernameError(username, err)
		}
		return nil, NewStorageQueryError("create user", err)
	}

	return schemaToUserLog(schema), nil
}

// ListUsers returns all user logs projected to id, username and revision.
func (s *PostgresLogStore) ListUsers(ctx context.Context) ([]UserSummary, error) {
	var schemas []UserLogSchema
	err := s.db.NewSelect().
		Model(&schemas).
		Column("uuid", "username", "revision").
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, NewStorageQueryError("list users", err)
	}

	summaries := make([]UserSummary, len(schemas))
	for i, schema := range schemas {
		summaries[i] = UserSummary{
			ID:       schema.UUID,
			Username: schema.Username,
			Revision: schema.Revision,
		}
	}
	return summaries, nil
}

// AppendEntry appends one entry to the user's log as a single atomic jsonb
// concatenation and bumps the revision counter. A userID that matches no
// row, including one that is not a well-formed id, reports a lookup failure.
func (s *PostgresLogStore) AppendEntry(ctx context.Context, userID string, entry Entry) (*UserLog, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, NewUserNotFoundError("append entry", userID)
	}

	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	payload, err := json.Marshal([]Entry{entry})
	if err != nil {
		return nil, NewStorageQueryError("append entry", err)
	}

	res, err := s.db.NewUpdate().
		Model((*UserLogSchema)(nil)).
		Set("log = log || ?::jsonb", string(payload)).
		Set("revision = revision + 1").
		Set("updated_at = ?", time.Now()).
		Where("uuid = ?", id).
		Where("deleted_at IS NULL").
		Exec(ctx)
	if err != nil {
		return nil, NewStorageQueryError("append entry", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, NewStorageQueryError("append entry", err)
	}
	if affected == 0 {
		return nil, NewUserNotFoundError("append entry", userID)
	}

	return s.getByID(ctx, id)
}

// GetUserLog looks up one user log by id.
func (s *PostgresLogStore) GetUserLog(ctx context.Context, userID string) (*UserLog, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, NewUserNotFoundError("get user log", userID)
	}
	return s.getByID(ctx, id)
}

func (s *PostgresLogStore) getByID(ctx context.Context, id uuid.UUID) (*UserLog, error) {
	var schema UserLogSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("uuid = ?", id).
		Where("deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewUserNotFoundError("get user log", id.String())
		}
		return nil, NewStorageQueryError("get user log", err)
	}
	return schemaToUserLog(schema), nil
}

// validateEntry enforces the schema-level entry constraints: description
// present and duration a positive integer.
func validateEntry(entry Entry) error {
	if entry.Description == "" {
		return NewValidationError("description", "Error, description field cannot be empty!")
	}
	if entry.Duration <= 0 {
		return NewValidationError("duration", "Error, duration must be a positive integer!")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

func schemaToUserLog(schema UserLogSchema) *UserLog {
	log := schema.Log
	if log == nil {
		log = []Entry{}
	}
	return &UserLog{
		ID:        schema.UUID,
		Username:  schema.Username,
		Revision:  schema.Revision,
		Log:       log,
		CreatedAt: schema.CreatedAt,
		UpdatedAt: schema.UpdatedAt,
		DeletedAt: schema.DeletedAt,
	}
}
