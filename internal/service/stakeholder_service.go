package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/apperror"
	"go-stockledger/pkg/validator"
)

// StakeholderUpdate carries a partial stakeholder edit; at least one field
// must be present.
type StakeholderUpdate struct {
	Name    *string                `json:"name"`
	Email   *string                `json:"email"`
	Phone   *string                `json:"phone"`
	Address *string                `json:"address"`
	Role    *model.StakeholderRole `json:"role"`
}

func (u *StakeholderUpdate) empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Address == nil && u.Role == nil
}

type StakeholderService interface {
	Create(s *model.Stakeholder) (*model.Stakeholder, error)
	Update(id uuid.UUID, upd *StakeholderUpdate) (*model.Stakeholder, error)
	Delete(id uuid.UUID) error
	Get(id uuid.UUID) (*model.Stakeholder, error)
	GetAll() ([]model.Stakeholder, error)
	Search(query string) ([]model.Stakeholder, error)
}

type stakeholderService struct {
	repo repository.StakeholderRepository
	log  zerolog.Logger
}

func NewStakeholderService(repo repository.StakeholderRepository, log zerolog.Logger) StakeholderService {
	return &stakeholderService{repo: repo, log: log}
}

func (s *stakeholderService) Create(stakeholder *model.Stakeholder) (*model.Stakeholder, error) {
	if fields := validator.ValidateStruct(stakeholder); len(fields) > 0 {
		return nil, apperror.Validation(fields...)
	}

	if existing, err := s.repo.FindByEmail(stakeholder.Email); err == nil && existing != nil {
		return nil, apperror.Newf(apperror.CodeConflict, "stakeholder with email '%s' already exists", stakeholder.Email)
	}

	if err := s.repo.Create(stakeholder); err != nil {
		s.log.Error().Err(err).Str("email", stakeholder.Email).Msg("create stakeholder failed")
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not create stakeholder")
	}

	s.log.Info().Str("stakeholder_id", stakeholder.ID.String()).Msg("stakeholder created")
	return stakeholder, nil
}

func (s *stakeholderService) Update(id uuid.UUID, upd *StakeholderUpdate) (*model.Stakeholder, error) {
	if upd.empty() {
		return nil, apperror.Validation(apperror.FieldError{
			Field:   "body",
			Message: "at least one field must be provided for update",
		})
	}

	stakeholder, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.CodeNotFound, "stakeholder not found")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not load stakeholder")
	}

	if upd.Name != nil {
		stakeholder.Name = *upd.Name
	}
	if upd.Email != nil {
		stakeholder.Email = *upd.Email
	}
	if upd.Phone != nil {
		stakeholder.Phone = *upd.Phone
	}
	if upd.Address != nil {
		stakeholder.Address = *upd.Address
	}
	if upd.Role != nil {
		stakeholder.Role = *upd.Role
	}

	if fields := validator.ValidateStruct(stakeholder); len(fields) > 0 {
		return nil, apperror.Validation(fields...)
	}

	if err := s.repo.Update(stakeholder); err != nil {
		s.log.Error().Err(err).Str("stakeholder_id", id.String()).Msg("update stakeholder failed")
		return nil, apperror.Wrap(apperror.CodeInternal, err, "could not update stakeholder")
	}
	return stakeholder, nil
}

func (s *stakeholderService) Delete(id uuid.UUID) error {
	err := s.repo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.New(apperror.CodeNotFound, "stakeholder not found")
	}
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err, "could not delete stakeholder")
	}
	return nil
}

func (s *stakeholderService) Get(id uuid.UUID) (*model.Stakeholder, error) {
	stakeholder, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.CodeNotFound, "stakeholder not found")
	}
	return stakeholder, err
}

func (s *stakeholderService) GetAll() ([]model.Stakeholder, error) {
	return s.repo.FindAll()
}

func (s *stakeholderService) Search(query string) ([]model.Stakeholder, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.Validation(apperror.FieldError{Field: "query", Message: "query is required"})
	}
	return s.repo.Search(query)
}
