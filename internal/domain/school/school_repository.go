package school

import (
	"context"

	"github.com/google/uuid"
)

// SchoolRepository defines persistence operations for the school aggregate
type SchoolRepository interface {
	Save(ctx context.Context, school *School) error
	Update(ctx context.Context, school *School) error
	FindByID(ctx context.Context, id uuid.UUID) (*School, error)
	FindAll(ctx context.Context) ([]School, error)
	ExistsByName(ctx context.Context, name string) (bool, error)

	// UpdateFields applies a whitelisted partial update
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// GetStats computes user, request, and vote aggregates for a school
	GetStats(ctx context.Context, schoolID uuid.UUID) (*Stats, error)
}
