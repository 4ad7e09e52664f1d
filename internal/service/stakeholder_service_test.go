package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/apperror"
)

func newStakeholders(db *gorm.DB) StakeholderService {
	return NewStakeholderService(repository.NewStakeholderRepo(db), zerolog.Nop())
}

func validStakeholder(email string) *model.Stakeholder {
	return &model.Stakeholder{
		UserID:     uuid.New(),
		BusinessID: "biz-1",
		Name:       "Acme Supplies",
		Email:      email,
		Phone:      "+1-555-0100",
		Address:    "1 Industrial Way",
		Role:       model.RoleVendor,
	}
}

func TestCreateStakeholder(t *testing.T) {
	db := newTestDB(t)
	svc := newStakeholders(db)

	created, err := svc.Create(validStakeholder("acme@example.com"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme@example.com", got.Email)
	assert.Equal(t, model.RoleVendor, got.Role)
}

func TestCreateStakeholderDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newStakeholders(db)

	_, err := svc.Create(validStakeholder("acme@example.com"))
	require.NoError(t, err)

	_, err = svc.Create(validStakeholder("acme@example.com"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))
}

func TestCreateStakeholderValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newStakeholders(db)

	s := validStakeholder("not-an-email")
	_, err := svc.Create(s)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	s = validStakeholder("acme@example.com")
	s.Role = "supplier"
	_, err = svc.Create(s)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	s = validStakeholder("acme@example.com")
	s.UserID = uuid.Nil
	_, err = svc.Create(s)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestUpdateStakeholderRequiresFields(t *testing.T) {
	db := newTestDB(t)
	svc := newStakeholders(db)

	created, err := svc.Create(validStakeholder("acme@example.com"))
	require.NoError(t, err)

	_, err = svc.Update(created.ID, &StakeholderUpdate{})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	assert.Contains(t, err.Error(), "at least one field")
}

func TestUpdateStakeholderMerges(t *testing.T) {
	db := newTestDB(t)
	svc := newStakeholders(db)

	created, err := svc.Create(validStakeholder("acme@example.com"))
	require.NoError(t, err)

	role := model.RoleBoth
	phone := "+1-555-0199"
	updated, err := svc.Update(created.ID, &StakeholderUpdate{Role: &role, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, model.RoleBoth, updated.Role)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "acme@example.com", updated.Email)

	bad := "not-an-email"
	_, err = svc.Update(created.ID, &StakeholderUpdate{Email: &bad})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestDeleteStakeholder(t *testing.T) {
	db := newTestDB(t)
	svc := newStakeholders(db)

	created, err := svc.Create(validStakeholder("acme@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	_, err = svc.Get(created.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))

	err = svc.Delete(created.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}

func TestSearchStakeholders(t *testing.T) {
	db := newTestDB(t)
	svc := newStakeholders(db)

	_, err := svc.Create(validStakeholder("acme@example.com"))
	require.NoError(t, err)

	other := validStakeholder("globex@example.com")
	other.Name = "Globex Corp"
	_, err = svc.Create(other)
	require.NoError(t, err)

	results, err := svc.Search("GLOBEX")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Globex Corp", results[0].Name)

	_, err = svc.Search("")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}
