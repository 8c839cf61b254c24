package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"team-management.backend/internal/domain/entities"
)

func TestUnitOfWork_DoCommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	createTeamMemberTable(t, db)
	u := NewUnitOfWork(db)
	repo := NewTeamMemberRepository(db)

	err := u.Do(context.Background(), func(ctx context.Context) error {
		return repo.Create(ctx, &entities.TeamMember{
			FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "5551234567",
			Email: "ada@example.com", Role: entities.RoleRegular,
		})
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("team_members").Count(&count).Error)
	require.Equal(t, int64(1), count)

	err = u.Do(context.Background(), func(ctx context.Context) error {
		if err := repo.Create(ctx, &entities.TeamMember{
			FirstName: "Grace", LastName: "Hopper", PhoneNumber: "5559876543",
			Email: "grace@example.com", Role: entities.RoleAdmin,
		}); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	require.Error(t, err)

	require.NoError(t, db.Table("team_members").Count(&count).Error)
	require.Equal(t, int64(1), count, "second insert must be rolled back")
}

func TestUnitOfWork_NestedDoReusesTransaction(t *testing.T) {
	db := newTestDB(t)
	createTeamMemberTable(t, db)
	u := NewUnitOfWork(db)

	err := u.Do(context.Background(), func(outer context.Context) error {
		outerTx := GetDB(outer, db)
		return u.Do(outer, func(inner context.Context) error {
			require.Same(t, outerTx, GetDB(inner, db))
			return nil
		})
	})
	require.NoError(t, err)
}

func TestGetDB_Fallback(t *testing.T) {
	db := newTestDB(t)
	require.Equal(t, db, GetDB(context.Background(), db))

	tx := db.Begin()
	txCtx := context.WithValue(context.Background(), txKey, tx)
	require.Equal(t, tx, GetDB(txCtx, db))
	tx.Rollback()
}

func TestUnitOfWork_DoBeginFailure(t *testing.T) {
	db := newTestDB(t)
	u := NewUnitOfWork(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = u.Do(context.Background(), func(ctx context.Context) error {
		_, _ = NewTeamMemberRepository(db).GetByID(ctx, uuid.New())
		return nil
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to begin transaction")
}
