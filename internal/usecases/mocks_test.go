package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"team-management.backend/internal/domain/entities"
	"team-management.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	args := m.Called(ctx, f)
	if err := args.Error(0); err != nil {
		return err
	}
	return f(ctx)
}

// Mock TeamMemberRepository
type MockTeamMemberRepository struct {
	mock.Mock
}

func (m *MockTeamMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) GetByEmail(ctx context.Context, email string) (*entities.TeamMember, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) List(ctx context.Context, filter entities.TeamMemberFilter, pagination utils.PaginationParams) ([]*entities.TeamMember, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.TeamMember), args.Get(1).(int64), args.Error(2)
}

func (m *MockTeamMemberRepository) Update(ctx context.Context, member *entities.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTeamMemberRepository) CountByRole(ctx context.Context) ([]entities.RoleCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.RoleCount), args.Error(1)
}
