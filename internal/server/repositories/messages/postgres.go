package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/toldya/internal/common"
	"github.com/dmitrijs2005/toldya/internal/dbx"
	"github.com/dmitrijs2005/toldya/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PostgresRepository stores messages in the messages table over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, m *models.Message) error {
	query :=
		`INSERT INTO messages (message_id, name, subject, message, reveal_time, create_time)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Subject, m.Body, m.RevealTime, m.CreateTime)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("message %s: %w", m.ID, common.ErrorAlreadyExists)
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Message, error) {
	query :=
		`SELECT message_id, name, subject, message, reveal_time, create_time FROM messages
		 WHERE message_id = $1
		 `

	m := &models.Message{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.Subject, &m.Body, &m.RevealTime, &m.CreateTime)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}
