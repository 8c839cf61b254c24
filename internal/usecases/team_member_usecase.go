package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"team-management.backend/internal/domain/entities"
	domainerrors "team-management.backend/internal/domain/errors"
	"team-management.backend/internal/domain/repositories"
	"team-management.backend/internal/domain/validation"
	"team-management.backend/pkg/logger"
	"team-management.backend/pkg/metrics"
	"team-management.backend/pkg/utils"
)

const (
	msgMemberNotFound = "team member not found"
	msgDuplicateEmail = "team member with this email already exists."
	msgEmptyPatch     = "at least one field is required"

	outcomeOK         = "ok"
	outcomeValidation = "validation_error"
	outcomeNotFound   = "not_found"
	outcomeConflict   = "conflict"
	outcomeError      = "error"
)

// ListTeamMembersParams holds list query options
type ListTeamMembersParams struct {
	Page   int
	Limit  int
	Search string
	Role   entities.Role
}

// TeamMemberList is one page of members with its pagination metadata
type TeamMemberList struct {
	Items []*entities.TeamMember `json:"items"`
	Meta  utils.PaginationMeta   `json:"meta"`
}

// TeamMemberUsecase handles team member business logic.
// Every write validates the full record before it reaches the repository.
type TeamMemberUsecase struct {
	repo    repositories.TeamMemberRepository
	uow     repositories.UnitOfWork
	metrics *metrics.Metrics
}

// NewTeamMemberUsecase creates a new team member usecase. m may be nil.
func NewTeamMemberUsecase(
	repo repositories.TeamMemberRepository,
	uow repositories.UnitOfWork,
	m *metrics.Metrics,
) *TeamMemberUsecase {
	return &TeamMemberUsecase{
		repo:    repo,
		uow:     uow,
		metrics: m,
	}
}

// Create validates and stores a new member
func (u *TeamMemberUsecase) Create(ctx context.Context, input *entities.TeamMemberInput) (*entities.TeamMember, error) {
	if input == nil {
		return nil, u.fail(ctx, "create", domainerrors.BadRequest("request body is required"))
	}
	input.Normalize()

	role := input.Role
	if role == "" {
		role = entities.TeamMemberSchema.DefaultRole
	}

	member := &entities.TeamMember{
		ID:          utils.GenerateUUIDv7(),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Role:        role,
	}
	if err := validation.ValidateTeamMember(member); err != nil {
		return nil, u.fail(ctx, "create", err)
	}

	if err := u.repo.Create(ctx, member); err != nil {
		return nil, u.fail(ctx, "create", mapWriteError(err))
	}

	u.succeed(ctx, "create", member.ID)
	return member, nil
}

// Get returns a member by id
func (u *TeamMemberUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.TeamMember, error) {
	member, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, u.fail(ctx, "get", mapWriteError(err))
	}
	u.metrics.RecordOperation("get", outcomeOK)
	return member, nil
}

// List returns a page of members ordered by creation time
func (u *TeamMemberUsecase) List(ctx context.Context, params ListTeamMembersParams) (*TeamMemberList, error) {
	if params.Role != "" && !params.Role.IsValid() {
		return nil, u.fail(ctx, "list", domainerrors.NewValidationError(
			entities.TeamMemberSchema.Role.Name,
			fmt.Sprintf(validation.MsgInvalidChoice, string(params.Role)),
		))
	}

	pagination := utils.GetPaginationParams(params.Page, params.Limit)
	filter := entities.TeamMemberFilter{Search: params.Search, Role: params.Role}

	items, total, err := u.repo.List(ctx, filter, pagination)
	if err != nil {
		return nil, u.fail(ctx, "list", err)
	}
	if items == nil {
		items = []*entities.TeamMember{}
	}

	u.metrics.RecordOperation("list", outcomeOK)
	return &TeamMemberList{
		Items: items,
		Meta:  utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	}, nil
}

// Update replaces every mutable field of a member. Role is optional and
// left unchanged when omitted.
func (u *TeamMemberUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.TeamMemberInput) (*entities.TeamMember, error) {
	if input == nil {
		return nil, u.fail(ctx, "update", domainerrors.BadRequest("request body is required"))
	}
	input.Normalize()

	var updated *entities.TeamMember
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		existing.FirstName = input.FirstName
		existing.LastName = input.LastName
		existing.PhoneNumber = input.PhoneNumber
		existing.Email = input.Email
		// an omitted role keeps the stored one
		if input.Role != "" {
			existing.Role = input.Role
		}

		if err := validation.ValidateTeamMember(existing); err != nil {
			return err
		}
		if err := u.repo.Update(txCtx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, u.fail(ctx, "update", mapWriteError(err))
	}

	u.succeed(ctx, "update", updated.ID)
	return updated, nil
}

// Patch changes only the supplied fields and re-validates the merged record
func (u *TeamMemberUsecase) Patch(ctx context.Context, id uuid.UUID, patch *entities.TeamMemberPatch) (*entities.TeamMember, error) {
	if patch == nil || patch.IsEmpty() {
		return nil, u.fail(ctx, "patch", domainerrors.BadRequest(msgEmptyPatch))
	}

	var updated *entities.TeamMember
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		patch.ApplyTo(existing)
		if err := validation.ValidateTeamMember(existing); err != nil {
			return err
		}
		if err := u.repo.Update(txCtx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, u.fail(ctx, "patch", mapWriteError(err))
	}

	u.succeed(ctx, "patch", updated.ID)
	return updated, nil
}

// Delete removes a member permanently
func (u *TeamMemberUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return u.fail(ctx, "delete", mapWriteError(err))
	}
	u.succeed(ctx, "delete", id)
	return nil
}

// CountByRole returns the number of members per role.
// Roles with no members are reported as zero.
func (u *TeamMemberUsecase) CountByRole(ctx context.Context) (map[entities.Role]int64, error) {
	counts, err := u.repo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[entities.Role]int64, len(entities.TeamMemberSchema.RoleChoices))
	for _, choice := range entities.TeamMemberSchema.RoleChoices {
		result[choice.Value] = 0
	}
	for _, rc := range counts {
		result[rc.Role] = rc.Count
	}
	return result, nil
}

func mapWriteError(err error) error {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(msgMemberNotFound)
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		appErr := domainerrors.Conflict(msgDuplicateEmail)
		appErr.Field = entities.TeamMemberSchema.Email.Name
		return appErr
	}
	return err
}

func (u *TeamMemberUsecase) succeed(ctx context.Context, op string, id uuid.UUID) {
	u.metrics.RecordOperation(op, outcomeOK)
	logger.Info(ctx, "team member "+op, zap.String("team_member_id", id.String()))
}

func (u *TeamMemberUsecase) fail(ctx context.Context, op string, err error) error {
	var validationErr *domainerrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		u.metrics.RecordOperation(op, outcomeValidation)
		u.metrics.RecordValidationFailure(validationErr.Field)
		logger.Debug(ctx, "team member rejected",
			zap.String("operation", op),
			zap.String("field", validationErr.Field),
			zap.String("reason", validationErr.Message),
		)
	case errors.Is(err, domainerrors.ErrNotFound):
		u.metrics.RecordOperation(op, outcomeNotFound)
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		u.metrics.RecordOperation(op, outcomeConflict)
	case errors.Is(err, domainerrors.ErrInvalidInput):
		u.metrics.RecordOperation(op, outcomeValidation)
	default:
		u.metrics.RecordOperation(op, outcomeError)
		logger.Error(ctx, "team member operation failed", zap.String("operation", op), zap.Error(err))
	}
	return err
}
