package maintenance

import (
	"context"
	"time"

	"github.com/dmitrijs2005/habitauth/internal/dbx"
	"github.com/dmitrijs2005/habitauth/internal/logging"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/repomanager"
)

// TokenCleanup deletes every token record whose expiry is at or before now.
func TokenCleanup(db dbx.DBTX, m repomanager.RepositoryManager, now func() time.Time, log logging.Logger) Job {
	return Job{
		Name: "tokens-cleanup",
		Run: func(ctx context.Context) error {
			n, err := m.Tokens(db).DeleteExpired(ctx, now())
			if err != nil {
				return err
			}
			if n > 0 {
				log.Info(ctx, "expired tokens removed", "count", n)
			}
			return nil
		},
	}
}

// ResetPotentialHabits clears the transient potential_completed flags.
func ResetPotentialHabits(db dbx.DBTX, m repomanager.RepositoryManager, log logging.Logger) Job {
	return Job{
		Name: "reset-potential-habits",
		Run: func(ctx context.Context) error {
			n, err := m.Habits(db).ResetPotential(ctx)
			if err != nil {
				return err
			}
			log.Debug(ctx, "potential habits reset", "count", n)
			return nil
		},
	}
}

// ResetDailyHabits clears the per-day completion flags on all habits.
func ResetDailyHabits(db dbx.DBTX, m repomanager.RepositoryManager, log logging.Logger) Job {
	return Job{
		Name: "reset-daily-habits",
		Run: func(ctx context.Context) error {
			n, err := m.Habits(db).ResetDaily(ctx)
			if err != nil {
				return err
			}
			log.Info(ctx, "daily habits reset", "count", n)
			return nil
		},
	}
}
