package client

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
	"github.com/jwalitptl/bizmanager-api/pkg/validator"
)

type ClientServicer interface {
	CreateClient(ctx context.Context, ownerID uuid.UUID, in *model.ClientInput) (*model.Client, error)
	GetClient(ctx context.Context, ownerID, id uuid.UUID) (*model.Client, error)
	ListClients(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Client, error)
	UpdateClient(ctx context.Context, ownerID, id uuid.UUID, in *model.ClientInput) (*model.Client, error)
	DeleteClient(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo      repository.ClientRepository
	validator *validator.Validator
}

func NewService(repo repository.ClientRepository, v *validator.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

func (s *Service) CreateClient(ctx context.Context, ownerID uuid.UUID, in *model.ClientInput) (*model.Client, error) {
	client := &model.Client{OwnerID: ownerID}
	in.Apply(client)

	errs := errors.FieldErrors{}
	errs.Fill(s.validator.Required(in))
	errs.Fill(s.validator.Struct(client))
	if err := s.checkEmail(ctx, client, errs); err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, errors.Validation(errs)
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("client_id", client.ID.String()).
		Msg("Client created")
	return client, nil
}

func (s *Service) GetClient(ctx context.Context, ownerID, id uuid.UUID) (*model.Client, error) {
	client, err := s.repo.Find(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *Service) ListClients(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Client, error) {
	clients, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *Service) UpdateClient(ctx context.Context, ownerID, id uuid.UUID, in *model.ClientInput) (*model.Client, error) {
	client, err := s.repo.Find(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	in.Apply(client)

	errs := errors.FieldErrors{}
	errs.Fill(s.validator.Struct(client))
	if err := s.checkEmail(ctx, client, errs); err != nil {
		return nil, err
	}
	if !errs.Empty() {
		return nil, errors.Validation(errs)
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("client_id", client.ID.String()).
		Msg("Client updated")
	return client, nil
}

func (s *Service) DeleteClient(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, ownerID, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("client_id", id.String()).
		Msg("Client deleted")
	return nil
}

// checkEmail reports an email already used by another live client of the
// same owner. Invalid addresses are left to field validation.
func (s *Service) checkEmail(ctx context.Context, client *model.Client, errs errors.FieldErrors) error {
	if _, invalid := errs["email"]; invalid {
		return nil
	}

	taken, err := s.repo.EmailTaken(ctx, client.OwnerID, client.Email, client.ID)
	if err != nil {
		return fmt.Errorf("failed to check client email: %w", err)
	}
	if taken {
		errs.Add(errors.MessageKey, model.MsgClientEmailTaken)
	}
	return nil
}
