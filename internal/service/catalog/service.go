// Package catalog manages services together with the products they consume.
// A service and its usage set are always written in one transaction.
package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
	"github.com/jwalitptl/bizmanager-api/pkg/validator"
)

const productsField = "products"

type CatalogServicer interface {
	CreateService(ctx context.Context, ownerID uuid.UUID, in *model.ServiceInput) (*model.Service, error)
	GetService(ctx context.Context, ownerID, id uuid.UUID) (*model.Service, error)
	ListServices(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Service, error)
	UpdateService(ctx context.Context, ownerID, id uuid.UUID, in *model.ServiceInput) (*model.Service, error)
	DeleteService(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo      repository.ServiceRepository
	validator *validator.Validator
}

func NewService(repo repository.ServiceRepository, v *validator.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

func (s *Service) CreateService(ctx context.Context, ownerID uuid.UUID, in *model.ServiceInput) (*model.Service, error) {
	service := &model.Service{OwnerID: ownerID}
	in.Apply(service)

	errs := errors.FieldErrors{}
	errs.Fill(s.validator.Struct(in))
	errs.Fill(s.validator.Required(in))
	errs.Fill(s.validator.Struct(service))
	usages := s.usages(in, errs)
	if !errs.Empty() {
		return nil, errors.Validation(errs)
	}
	service.Products = usages

	if err := s.repo.Create(ctx, service); err != nil {
		return nil, mapErr("create", err)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("service_id", service.ID.String()).
		Int("products", len(service.Products)).
		Msg("Service created")
	return service, nil
}

func (s *Service) GetService(ctx context.Context, ownerID, id uuid.UUID) (*model.Service, error) {
	service, err := s.repo.Find(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

func (s *Service) ListServices(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Service, error) {
	services, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// UpdateService overlays the supplied fields. When products is present the
// usage set is replaced as a whole; when absent it is left as is.
func (s *Service) UpdateService(ctx context.Context, ownerID, id uuid.UUID, in *model.ServiceInput) (*model.Service, error) {
	service, err := s.repo.Find(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	in.Apply(service)

	errs := errors.FieldErrors{}
	errs.Fill(s.validator.Struct(in))
	errs.Fill(s.validator.Struct(service))
	usages := s.usages(in, errs)
	if !errs.Empty() {
		return nil, errors.Validation(errs)
	}

	replace := in.Products != nil
	if replace {
		service.Products = usages
	}

	if err := s.repo.Update(ctx, service, replace); err != nil {
		return nil, mapErr("update", err)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("service_id", id.String()).
		Bool("products_replaced", replace).
		Msg("Service updated")
	return service, nil
}

// DeleteService hides the service. Its usage rows are kept.
func (s *Service) DeleteService(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, ownerID, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("service_id", id.String()).
		Msg("Service deleted")
	return nil
}

// usages converts the usage inputs once they passed field validation and
// reports a product listed more than once.
func (s *Service) usages(in *model.ServiceInput, errs errors.FieldErrors) []model.ServiceProduct {
	if in.Products == nil {
		return []model.ServiceProduct{}
	}
	if _, invalid := errs[productsField]; invalid {
		return nil
	}

	usages := in.Usages()
	if len(model.ProductIDs(usages)) != len(usages) {
		errs.Add(productsField, model.MsgProductsDuplicate)
		return nil
	}
	return usages
}

func mapErr(action string, err error) error {
	if stderrors.Is(err, repository.ErrUnknownProducts) {
		return errors.ValidationMessage(productsField, model.MsgProductsMissing)
	}
	return fmt.Errorf("failed to %s service: %w", action, err)
}
