package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
	"github.com/jwalitptl/bizmanager-api/pkg/validator"
)

type AccountServicer interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Account, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateAccountRequest) (*model.Account, error)
}

type Service struct {
	repo      repository.AccountRepository
	validator *validator.Validator
}

func NewService(repo repository.AccountRepository, v *validator.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Account, error) {
	account, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateAccountRequest) (*model.Account, error) {
	if errs := s.validator.Struct(req); errs != nil {
		return nil, errors.Validation(errs)
	}

	account, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	req.Apply(account)
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	log.Debug().Str("account_id", account.ID.String()).Msg("Account profile updated")
	return account, nil
}
