package product

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

type ProductServicer interface {
	CreateProduct(ctx context.Context, ownerID uuid.UUID, in *model.ProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Product, error)
	UpdateProduct(ctx context.Context, ownerID, id uuid.UUID, in *model.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo      repository.ProductRepository
	validator *validator.Validator
}

func NewService(repo repository.ProductRepository, v *validator.Validator) *Service {
	return &Service{repo: repo, validator: v}
}

func (s *Service) CreateProduct(ctx context.Context, ownerID uuid.UUID, in *model.ProductInput) (*model.Product, error) {
	product := model.NewProduct(ownerID)
	in.Apply(product)

	errs := errors.FieldErrors{}
	errs.Fill(s.validator.Struct(in))
	errs.Fill(s.validator.Required(in))
	errs.Fill(s.validator.Struct(product))
	if !errs.Empty() {
		return nil, errors.Validation(errs)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("product_id", product.ID.String()).
		Msg("Product created")
	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error) {
	product, err := s.repo.Find(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Product, error) {
	products, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *Service) UpdateProduct(ctx context.Context, ownerID, id uuid.UUID, in *model.ProductInput) (*model.Product, error) {
	product, err := s.repo.Find(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	in.Apply(product)

	errs := errors.FieldErrors{}
	errs.Fill(s.validator.Struct(in))
	errs.Fill(s.validator.Struct(product))
	if !errs.Empty() {
		return nil, errors.Validation(errs)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("product_id", id.String()).
		Msg("Product updated")
	return product, nil
}

// DeleteProduct hides the product. Services that already consume it keep
// their usage rows.
func (s *Service) DeleteProduct(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, ownerID, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("product_id", id.String()).
		Msg("Product deleted")
	return nil
}
