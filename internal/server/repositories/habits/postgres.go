package habits

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/habitauth/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ResetPotential(ctx context.Context) (int64, error) {
	return r.exec(ctx, `
		UPDATE habits SET potential_completed = FALSE
		WHERE potential_completed
	`)
}

func (r *PostgresRepository) ResetDaily(ctx context.Context) (int64, error) {
	return r.exec(ctx, `
		UPDATE habits SET completed_today = FALSE, potential_completed = FALSE
		WHERE completed_today OR potential_completed
	`)
}

func (r *PostgresRepository) exec(ctx context.Context, query string) (int64, error) {
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
