// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
)

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.AccountRepository = (*AccountRepository)(nil)
	_ repository.ClientRepository  = (*ClientRepository)(nil)
	_ repository.ProductRepository = (*ProductRepository)(nil)
	_ repository.ServiceRepository = (*ServiceRepository)(nil)
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateWithAccount(ctx context.Context, user *model.User, account *model.Account) error {
	return m.Called(ctx, user, account).Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, userID)
	account, _ := args.Get(0).(*model.Account)
	return account, args.Error(1)
}

func (m *AccountRepository) Update(ctx context.Context, account *model.Account) error {
	return m.Called(ctx, account).Error(0)
}

type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *ClientRepository) Find(ctx context.Context, ownerID, id uuid.UUID) (*model.Client, error) {
	args := m.Called(ctx, ownerID, id)
	client, _ := args.Get(0).(*model.Client)
	return client, args.Error(1)
}

func (m *ClientRepository) List(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Client, error) {
	args := m.Called(ctx, ownerID, filter)
	clients, _ := args.Get(0).([]*model.Client)
	return clients, args.Error(1)
}

func (m *ClientRepository) Update(ctx context.Context, client *model.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *ClientRepository) SoftDelete(ctx context.Context, ownerID, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, ownerID, id, at).Error(0)
}

func (m *ClientRepository) EmailTaken(ctx context.Context, ownerID uuid.UUID, email string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, email, exclude)
	return args.Bool(0), args.Error(1)
}

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) Find(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, ownerID, id)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *ProductRepository) List(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Product, error) {
	args := m.Called(ctx, ownerID, filter)
	products, _ := args.Get(0).([]*model.Product)
	return products, args.Error(1)
}

func (m *ProductRepository) Update(ctx context.Context, product *model.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) SoftDelete(ctx context.Context, ownerID, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, ownerID, id, at).Error(0)
}

type ServiceRepository struct {
	mock.Mock
}

func (m *ServiceRepository) Create(ctx context.Context, service *model.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *ServiceRepository) Find(ctx context.Context, ownerID, id uuid.UUID) (*model.Service, error) {
	args := m.Called(ctx, ownerID, id)
	service, _ := args.Get(0).(*model.Service)
	return service, args.Error(1)
}

func (m *ServiceRepository) List(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Service, error) {
	args := m.Called(ctx, ownerID, filter)
	services, _ := args.Get(0).([]*model.Service)
	return services, args.Error(1)
}

func (m *ServiceRepository) Update(ctx context.Context, service *model.Service, replaceUsages bool) error {
	return m.Called(ctx, service, replaceUsages).Error(0)
}

func (m *ServiceRepository) SoftDelete(ctx context.Context, ownerID, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, ownerID, id, at).Error(0)
}
