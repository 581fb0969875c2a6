package usecase

import (
	"context"
	"testing"

	"timebank-service/src/internal/entity"
	"timebank-service/src/internal/model"
	"timebank-service/src/internal/repository"
	httpError "timebank-service/src/pkg/http-error"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSkillUseCase(t *testing.T) (*SkillUseCase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)
	uc := NewSkillUseCase(
		testLogger(),
		validator.New(),
		db,
		repository.NewSkillRepository(db),
	)
	return uc, mock
}

func TestCreateSkill(t *testing.T) {
	uc, mock := newSkillUseCase(t)

	mock.ExpectQuery(`SELECT id FROM skills WHERE LOWER\(name\)`).
		WithArgs("gardening").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO skills`).
		WithArgs("gardening", "weeding, watering, pruning").
		WillReturnResult(sqlmock.NewResult(3, 1))

	result := uc.CreateSkill(context.Background(), &model.CreateSkillRequest{
		Name:        "gardening",
		Description: "weeding, watering, pruning",
	})

	require.NoError(t, result.Error)
	skill, ok := result.Data.(*entity.Skill)
	require.True(t, ok)
	assert.Equal(t, uint64(3), skill.ID)
	assert.Equal(t, "gardening", skill.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Name matching is case-insensitive, "Gardening" and "gardening" are the
// same catalog entry.
func TestCreateSkillDuplicateNameIsConflict(t *testing.T) {
	uc, mock := newSkillUseCase(t)

	mock.ExpectQuery(`SELECT id FROM skills WHERE LOWER\(name\)`).
		WithArgs("Gardening").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	result := uc.CreateSkill(context.Background(), &model.CreateSkillRequest{Name: "Gardening"})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 409, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingSkillIsNotFound(t *testing.T) {
	uc, mock := newSkillUseCase(t)

	mock.ExpectExec(`DELETE FROM skills`).
		WithArgs(44).
		WillReturnResult(sqlmock.NewResult(0, 0))

	result := uc.DeleteSkill(context.Background(), &model.DeleteSkillRequest{SkillID: 44})

	require.Error(t, result.Error)
	commonErr, ok := result.Error.(*httpError.CommonError)
	require.True(t, ok)
	assert.Equal(t, 404, commonErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Setting skills is a wholesale replacement in one transaction: the old
// associations go, unknown names are created, known names are reused.
func TestSetUserSkillsReplacesExisting(t *testing.T) {
	uc, mock := newSkillUseCase(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT IGNORE INTO skills`).
		WithArgs("gardening").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec(`INSERT IGNORE INTO skills`).
		WithArgs("cooking").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT id FROM skills WHERE LOWER\(name\)`).
		WithArgs("cooking").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`DELETE FROM user_skills`).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO user_skills`).
		WithArgs(2, 3).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO user_skills`).
		WithArgs(2, 7).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	result := uc.SetUserSkills(context.Background(), &model.SetUserSkillsRequest{
		UserID: 2,
		Skills: []string{"gardening", "cooking"},
	})

	require.NoError(t, result.Error)
	skills, ok := result.Data.([]model.UserSkillResponse)
	require.True(t, ok)
	require.Len(t, skills, 2)
	assert.Equal(t, uint64(3), skills[0].ID)
	assert.Equal(t, uint64(7), skills[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUserSkills(t *testing.T) {
	uc, mock := newSkillUseCase(t)

	mock.ExpectQuery(`FROM user_skills us`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(7, "cooking").
			AddRow(3, "gardening"))

	result := uc.ListUserSkills(context.Background(), &model.GetUserRequest{ID: 2})

	require.NoError(t, result.Error)
	skills, ok := result.Data.([]entity.UserSkill)
	require.True(t, ok)
	require.Len(t, skills, 2)
	assert.Equal(t, "cooking", skills[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
