package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/regform/pkg/pg"
)

// PgxConn is satisfied by *pgxpool.Pool and pgx.Tx.
type PgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pinger interface {
	Ping(ctx context.Context) error
}

// PostgresStorage stores records in the registrations table created by the
// migrations package.
type PostgresStorage struct {
	db PgxConn
}

func NewPostgresStorage(db PgxConn) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const insertRegistration = `
INSERT INTO registrations (id, full_name, email, password_hash, phone_number, age, country, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const selectRegistration = `
SELECT id, full_name, email, password_hash, phone_number, age, country, created_at
FROM registrations
WHERE id = $1`

func (s *PostgresStorage) Save(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx, insertRegistration,
		rec.ID, rec.FullName, rec.Email, rec.PasswordHash,
		rec.PhoneNumber, rec.Age, rec.Country, rec.CreatedAt,
	)
	if pg.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.ID)
	}
	if err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	return nil
}

func (s *PostgresStorage) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	var rec Record
	err := s.db.QueryRow(ctx, selectRegistration, id).Scan(
		&rec.ID, &rec.FullName, &rec.Email, &rec.PasswordHash,
		&rec.PhoneNumber, &rec.Age, &rec.Country, &rec.CreatedAt,
	)
	if pg.IsNotFoundError(err) {
		return Record{}, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return Record{}, errors.Join(ErrStorageUnavailable, err)
	}
	return rec, nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	p, ok := s.db.(pinger)
	if !ok {
		return nil
	}
	if err := p.Ping(ctx); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
