package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Saranya396/projectt/internal/domain/repositories"
	"github.com/Saranya396/projectt/internal/infrastructure/clients/postgres"
	apperrors "github.com/Saranya396/projectt/pkg/errors"
)

const slotsTable = "record_slots"

const createSlotsTable = `CREATE TABLE IF NOT EXISTS record_slots (
	key        TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore keeps each slot as one row of the record_slots table
type PostgresStore struct {
	client    *postgres.Client
	db        *goqu.Database
	keyPrefix string
}

// NewPostgresStore creates a PostgreSQL backed record store
func NewPostgresStore(client *postgres.Client, keyPrefix string) *PostgresStore {
	return &PostgresStore{
		client:    client,
		db:        goqu.New("postgres", client.DB()),
		keyPrefix: keyPrefix,
	}
}

var _ repositories.RecordStore = (*PostgresStore)(nil)

// EnsureSchema creates the slots table if it does not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.client.DB().ExecContext(ctx, createSlotsTable); err != nil {
		return apperrors.NewInternalError("failed to create record_slots table", err)
	}
	return nil
}

// Read fetches the slot payload
func (s *PostgresStore) Read(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.db.From(slotsTable).
		Select("payload").
		Where(goqu.Ex{"key": s.keyPrefix + key}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var payload []byte
	err = s.client.DB().QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read slot "+key, err)
	}
	return payload, nil
}

// Write upserts the slot payload
func (s *PostgresStore) Write(ctx context.Context, key string, payload []byte) error {
	query, args, err := s.db.Insert(slotsTable).
		Rows(goqu.Record{
			"key":        s.keyPrefix + key,
			"payload":    string(payload),
			"updated_at": goqu.L("NOW()"),
		}).
		OnConflict(goqu.DoUpdate("key", goqu.Record{
			"payload":    goqu.L("EXCLUDED.payload"),
			"updated_at": goqu.L("NOW()"),
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := s.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to write slot "+key, err)
	}
	return nil
}

// Keys lists slot keys under the configured prefix
func (s *PostgresStore) Keys(ctx context.Context) ([]string, error) {
	query, args, err := s.db.From(slotsTable).
		Select("key").
		Where(goqu.C("key").Like(s.keyPrefix + "%")).
		Order(goqu.C("key").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := s.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list slots", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, apperrors.NewInternalError("failed to scan slot key", err)
		}
		keys = append(keys, strings.TrimPrefix(key, s.keyPrefix))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to list slots", err)
	}
	return keys, nil
}
