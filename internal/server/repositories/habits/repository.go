// Package habits holds the periodic reset statements the maintenance jobs run
// against the habits table. Habit business logic lives elsewhere.
package habits

import "context"

type Repository interface {
	// ResetPotential clears the transient per-user potential_completed flags.
	ResetPotential(ctx context.Context) (int64, error)
	// ResetDaily clears completed_today on every habit.
	ResetDaily(ctx context.Context) (int64, error)
}
