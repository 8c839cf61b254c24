package repositories

import (
	"context"

	"github.com/google/uuid"
	"team-management.backend/internal/domain/entities"
	"team-management.backend/pkg/utils"
)

// TeamMemberRepository persists team members.
// Create and Update return errors.ErrAlreadyExists when the email is taken,
// and lookups and writes on a missing id return errors.ErrNotFound.
type TeamMemberRepository interface {
	Create(ctx context.Context, member *entities.TeamMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamMember, error)
	GetByEmail(ctx context.Context, email string) (*entities.TeamMember, error)
	List(ctx context.Context, filter entities.TeamMemberFilter, pagination utils.PaginationParams) ([]*entities.TeamMember, int64, error)
	Update(ctx context.Context, member *entities.TeamMember) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context) ([]entities.RoleCount, error)
}
