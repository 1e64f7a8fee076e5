package identity

import (
	"context"

	"github.com/dormlife/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines persistence operations for the user aggregate.
//
// FindByID and FindByEmail exclude deactivated users and return (nil, nil)
// when no matching user exists; callers decide whether a miss is an error.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByVerificationToken(ctx context.Context, token string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	FindBySchool(ctx context.Context, schoolID uuid.UUID, filter shared.Filter) ([]User, int64, error)

	// UpdateFields applies a whitelisted partial update. The caller is
	// responsible for whitelisting; an empty field set is rejected with
	// ErrNoFieldsToUpdate.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// UpdateLastLogin stamps the last login time. Best-effort; callers log
	// failures without surfacing them.
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
