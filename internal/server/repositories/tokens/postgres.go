package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/dbx"
	"github.com/dmitrijs2005/habitauth/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.Token, error) {
	query := `
		SELECT user_id, token, expires_at
		FROM tokens
		WHERE user_id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.Token, error) {
	query := `
		SELECT user_id, token, expires_at
		FROM tokens
		WHERE token = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, token))
}

// Upsert relies on the primary key on user_id, so concurrent logins for the
// same user always leave exactly one row behind.
func (r *PostgresRepository) Upsert(ctx context.Context, token *models.Token) error {
	query := `
		INSERT INTO tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.ExecContext(ctx, query, token.UserID, token.Token, token.ExpiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM tokens
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM tokens
		WHERE expires_at <= $1
	`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Token, error) {
	t := &models.Token{}
	if err := row.Scan(&t.UserID, &t.Token, &t.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}
