package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/habitauth/internal/dbx"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/habits"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code path
// works against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Habits(db dbx.DBTX) habits.Repository
}
