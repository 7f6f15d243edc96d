package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/bizmanager-api/internal/model"
)

// ErrUnknownProducts is returned when a usage set references a product the
// owner cannot see. Nothing has been written when it is returned.
var ErrUnknownProducts = errors.New("one or more products do not exist")

// All repository interfaces in one file. Every lookup that takes an owner
// only matches non-deleted rows of that owner, and a row that fails the
// filter is reported exactly like a row that does not exist.
type (
	UserRepository interface {
		// CreateWithAccount stores the identity and its empty account in one
		// transaction.
		CreateWithAccount(ctx context.Context, user *model.User, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
		UsernameExists(ctx context.Context, username string) (bool, error)
	}

	AccountRepository interface {
		GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Account, error)
		Update(ctx context.Context, account *model.Account) error
	}

	ClientRepository interface {
		Create(ctx context.Context, client *model.Client) error
		Find(ctx context.Context, ownerID, id uuid.UUID) (*model.Client, error)
		List(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Client, error)
		Update(ctx context.Context, client *model.Client) error
		SoftDelete(ctx context.Context, ownerID, id uuid.UUID, at time.Time) error
		// EmailTaken ignores case, deleted clients and the client with id exclude.
		EmailTaken(ctx context.Context, ownerID uuid.UUID, email string, exclude uuid.UUID) (bool, error)
	}

	ProductRepository interface {
		Create(ctx context.Context, product *model.Product) error
		Find(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error)
		List(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Product, error)
		Update(ctx context.Context, product *model.Product) error
		SoftDelete(ctx context.Context, ownerID, id uuid.UUID, at time.Time) error
	}

	ServiceRepository interface {
		// Create resolves the referenced products, then inserts the service and
		// its usages, all in one transaction.
		Create(ctx context.Context, service *model.Service) error
		Find(ctx context.Context, ownerID, id uuid.UUID) (*model.Service, error)
		List(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Service, error)
		// Update writes the scalar fields and, when replaceUsages is set, swaps
		// the whole usage set for service.Products in the same transaction.
		Update(ctx context.Context, service *model.Service, replaceUsages bool) error
		SoftDelete(ctx context.Context, ownerID, id uuid.UUID, at time.Time) error
	}
)
