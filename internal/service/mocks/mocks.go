// Package mocks holds testify mocks of the service interfaces used by the
// HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/service/account"
	"github.com/jwalitptl/bizmanager-api/internal/service/auth"
	"github.com/jwalitptl/bizmanager-api/internal/service/catalog"
	"github.com/jwalitptl/bizmanager-api/internal/service/client"
	"github.com/jwalitptl/bizmanager-api/internal/service/product"
	"github.com/jwalitptl/bizmanager-api/pkg/session"
)

var (
	_ client.ClientServicer   = (*ClientService)(nil)
	_ product.ProductServicer = (*ProductService)(nil)
	_ catalog.CatalogServicer = (*CatalogService)(nil)
	_ auth.AuthServicer       = (*AuthService)(nil)
	_ account.AccountServicer = (*AccountService)(nil)
)

type ClientService struct {
	mock.Mock
}

func (m *ClientService) CreateClient(ctx context.Context, ownerID uuid.UUID, in *model.ClientInput) (*model.Client, error) {
	args := m.Called(ctx, ownerID, in)
	c, _ := args.Get(0).(*model.Client)
	return c, args.Error(1)
}

func (m *ClientService) GetClient(ctx context.Context, ownerID, id uuid.UUID) (*model.Client, error) {
	args := m.Called(ctx, ownerID, id)
	c, _ := args.Get(0).(*model.Client)
	return c, args.Error(1)
}

func (m *ClientService) ListClients(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Client, error) {
	args := m.Called(ctx, ownerID, filter)
	cs, _ := args.Get(0).([]*model.Client)
	return cs, args.Error(1)
}

func (m *ClientService) UpdateClient(ctx context.Context, ownerID, id uuid.UUID, in *model.ClientInput) (*model.Client, error) {
	args := m.Called(ctx, ownerID, id, in)
	c, _ := args.Get(0).(*model.Client)
	return c, args.Error(1)
}

func (m *ClientService) DeleteClient(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type ProductService struct {
	mock.Mock
}

func (m *ProductService) CreateProduct(ctx context.Context, ownerID uuid.UUID, in *model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, ownerID, in)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *ProductService) GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, ownerID, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *ProductService) ListProducts(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Product, error) {
	args := m.Called(ctx, ownerID, filter)
	ps, _ := args.Get(0).([]*model.Product)
	return ps, args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, ownerID, id uuid.UUID, in *model.ProductInput) (*model.Product, error) {
	args := m.Called(ctx, ownerID, id, in)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *ProductService) DeleteProduct(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) CreateService(ctx context.Context, ownerID uuid.UUID, in *model.ServiceInput) (*model.Service, error) {
	args := m.Called(ctx, ownerID, in)
	s, _ := args.Get(0).(*model.Service)
	return s, args.Error(1)
}

func (m *CatalogService) GetService(ctx context.Context, ownerID, id uuid.UUID) (*model.Service, error) {
	args := m.Called(ctx, ownerID, id)
	s, _ := args.Get(0).(*model.Service)
	return s, args.Error(1)
}

func (m *CatalogService) ListServices(ctx context.Context, ownerID uuid.UUID, filter model.ListFilter) ([]*model.Service, error) {
	args := m.Called(ctx, ownerID, filter)
	ss, _ := args.Get(0).([]*model.Service)
	return ss, args.Error(1)
}

func (m *CatalogService) UpdateService(ctx context.Context, ownerID, id uuid.UUID, in *model.ServiceInput) (*model.Service, error) {
	args := m.Called(ctx, ownerID, id, in)
	s, _ := args.Get(0).(*model.Service)
	return s, args.Error(1)
}

func (m *CatalogService) DeleteService(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.UserSummary, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*model.UserSummary)
	return u, args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.UserSummary, *session.Session, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*model.UserSummary)
	s, _ := args.Get(1).(*session.Session)
	return u, s, args.Error(2)
}

func (m *AuthService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *AuthService) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	args := m.Called(ctx, token)
	p, _ := args.Get(0).(*auth.Principal)
	return p, args.Error(1)
}

type AccountService struct {
	mock.Mock
}

func (m *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*model.Account)
	return a, args.Error(1)
}

func (m *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *model.UpdateAccountRequest) (*model.Account, error) {
	args := m.Called(ctx, userID, req)
	a, _ := args.Get(0).(*model.Account)
	return a, args.Error(1)
}
