package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"team-management.backend/internal/domain/entities"
	domainerrors "team-management.backend/internal/domain/errors"
	"team-management.backend/internal/infrastructure/models"
	"team-management.backend/pkg/utils"
)

const pqUniqueViolation = "23505"

// likeEscaper makes LIKE wildcards in a search term match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

func (r *TeamMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	if member.ID == uuid.Nil {
		member.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(member)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	member.CreatedAt = m.CreatedAt
	member.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TeamMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamMember, error) {
	var m models.TeamMember
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamMemberRepository) GetByEmail(ctx context.Context, email string) (*entities.TeamMember, error) {
	var m models.TeamMember
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamMemberRepository) List(ctx context.Context, filter entities.TeamMemberFilter, pagination utils.PaginationParams) ([]*entities.TeamMember, int64, error) {
	var rows []models.TeamMember
	var total int64

	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.TeamMember{})
	if term := strings.ToLower(strings.TrimSpace(filter.Search)); term != "" {
		like := "%" + likeEscaper.Replace(term) + "%"
		query = query.Where(
			`LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR phone_number LIKE ? ESCAPE '\'`,
			like, like, like, like,
		)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.TeamMember, 0, len(rows))
	for i := range rows {
		items = append(items, r.toEntity(&rows[i]))
	}
	return items, total, nil
}

// Update replaces every mutable column. created_at is never written.
func (r *TeamMemberRepository) Update(ctx context.Context, member *entities.TeamMember) error {
	now := time.Now()
	updates := map[string]interface{}{
		"first_name":   member.FirstName,
		"last_name":    member.LastName,
		"phone_number": member.PhoneNumber,
		"email":        member.Email,
		"role":         string(member.Role),
		"updated_at":   now,
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("id = ?", member.ID).
		Updates(updates)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	member.UpdatedAt = now
	return nil
}

func (r *TeamMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.TeamMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamMemberRepository) CountByRole(ctx context.Context) ([]entities.RoleCount, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamMember{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Order("role ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]entities.RoleCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, entities.RoleCount{Role: entities.Role(row.Role), Count: row.Count})
	}
	return counts, nil
}

func (r *TeamMemberRepository) toEntity(m *models.TeamMember) *entities.TeamMember {
	return &entities.TeamMember{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		PhoneNumber: m.PhoneNumber,
		Email:       m.Email,
		Role:        entities.Role(m.Role),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *TeamMemberRepository) toModel(e *entities.TeamMember) *models.TeamMember {
	return &models.TeamMember{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		PhoneNumber: e.PhoneNumber,
		Email:       e.Email,
		Role:        string(e.Role),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// isUniqueViolation recognises duplicate-key failures from the gorm translator,
// lib/pq and drivers that only report a message.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
