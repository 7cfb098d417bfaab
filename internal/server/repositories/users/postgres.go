package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/dbx"
	"github.com/dmitrijs2005/habitauth/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the user and fills JoinedAt from the database clock.
// A duplicate username or email yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, username, email, hashed_password)
         VALUES ($1, $2, $3, $4)
		 RETURNING joined_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.UserName, user.Email, user.HashedPassword).Scan(&user.JoinedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query :=
		`SELECT id, username, email, hashed_password, joined_at, xp FROM users
		 WHERE username = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, userName))
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, username, email, hashed_password, joined_at, xp FROM users
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	query :=
		`SELECT id, username, email, hashed_password, joined_at, xp FROM users
		 WHERE username = $1 OR email = $2
		 LIMIT 1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, username, email))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.UserName, &user.Email, &user.HashedPassword, &user.JoinedAt, &user.XP)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
