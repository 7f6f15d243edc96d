package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository"
	"github.com/jwalitptl/bizmanager-api/internal/repository/mocks"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
	"github.com/jwalitptl/bizmanager-api/pkg/validator"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validInput(usages ...model.UsageInput) *model.ServiceInput {
	in := &model.ServiceInput{
		Name:          strPtr("Manicure"),
		Description:   strPtr("Basic manicure service"),
		PricingType:   strPtr(model.PricingTypeFixed),
		BasePrice:     dec("50.00"),
		EstimatedTime: intPtr(60),
	}
	if usages != nil {
		in.Products = &usages
	}
	return in
}

func usage(id uuid.UUID, qty string) model.UsageInput {
	return model.UsageInput{Product: id.String(), Quantity: dec(qty)}
}

func setup() (*Service, *mocks.ServiceRepository) {
	repo := &mocks.ServiceRepository{}
	return NewService(repo, validator.New()), repo
}

func TestCreateServiceWithProducts(t *testing.T) {
	svc, repo := setup()
	owner, p := uuid.New(), uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Service) bool {
		return s.OwnerID == owner && len(s.Products) == 1 && s.Products[0].ProductID == p
	})).Return(nil)

	service, err := svc.CreateService(context.Background(), owner, validInput(usage(p, "2.0")))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2").Equal(service.Products[0].Quantity))
	repo.AssertExpectations(t)
}

func TestCreateServiceUnknownProduct(t *testing.T) {
	svc, repo := setup()

	repo.On("Create", mock.Anything, mock.Anything).
		Return(fmt.Errorf("failed to create service: %w", repository.ErrUnknownProducts))

	_, err := svc.CreateService(context.Background(), uuid.New(), validInput(usage(uuid.New(), "1")))
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)
	assert.Equal(t, errors.FieldErrors{"products": {model.MsgProductsMissing}}, appErr.Fields)
}

func TestCreateServiceInvalidUsageReportedUnderProducts(t *testing.T) {
	svc, repo := setup()

	in := validInput(usage(uuid.New(), "0"), model.UsageInput{Quantity: dec("1")})

	_, err := svc.CreateService(context.Background(), uuid.New(), in)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Len(t, appErr.Fields["products"], 2)
	assert.Contains(t, appErr.Fields["products"], "[0].quantity: Ensure this value is greater than 0.")
	assert.Contains(t, appErr.Fields["products"], "[1].product: This field is required.")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateServiceQuantityBelowCentIsRejected(t *testing.T) {
	svc, repo := setup()

	_, err := svc.CreateService(context.Background(), uuid.New(), validInput(usage(uuid.New(), "0.004")))
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)
	assert.Equal(t, []string{"[0].quantity: Ensure that there are no more than 2 decimal places."}, appErr.Fields["products"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateServiceOutOfRangeValues(t *testing.T) {
	svc, repo := setup()

	in := validInput(usage(uuid.New(), "100000000"))
	in.BasePrice = dec("100000000")
	in.EstimatedTime = intPtr(1 << 31)

	_, err := svc.CreateService(context.Background(), uuid.New(), in)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Ensure this value is less than or equal to 99999999.99."}, appErr.Fields["base_price"])
	assert.Equal(t, []string{"Ensure this value is less than or equal to 2147483647."}, appErr.Fields["estimated_time"])
	assert.Equal(t, []string{"[0].quantity: Ensure this value is less than or equal to 99999999.99."}, appErr.Fields["products"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateServiceRejectsExtraPlacesInPrice(t *testing.T) {
	svc, repo := setup()
	owner, id := uuid.New(), uuid.New()
	repo.On("Find", mock.Anything, owner, id).Return(&model.Service{
		Base: model.Base{ID: id}, OwnerID: owner, Name: "Manicure", Description: "Basic",
		PricingType: model.PricingTypeFixed, BasePrice: decimal.RequireFromString("50"),
		Products: []model.ServiceProduct{},
	}, nil)

	_, err := svc.UpdateService(context.Background(), owner, id, &model.ServiceInput{BasePrice: dec("49.999")})
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Ensure that there are no more than 2 decimal places."}, appErr.Fields["base_price"])
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateServiceDuplicateProduct(t *testing.T) {
	svc, repo := setup()
	p := uuid.New()

	_, err := svc.CreateService(context.Background(), uuid.New(), validInput(usage(p, "1"), usage(p, "2")))
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{model.MsgProductsDuplicate}, appErr.Fields["products"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateServiceScalarErrorsAccumulate(t *testing.T) {
	svc, _ := setup()

	in := validInput()
	in.BasePrice = dec("0")
	in.PricingType = strPtr("monthly")
	in.Name = nil

	_, err := svc.CreateService(context.Background(), uuid.New(), in)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Ensure this value is greater than 0."}, appErr.Fields["base_price"])
	assert.Equal(t, []string{`"monthly" is not a valid choice.`}, appErr.Fields["pricing_type"])
	assert.Equal(t, []string{"This field is required."}, appErr.Fields["name"])
}

func TestCreateServiceWithoutProducts(t *testing.T) {
	svc, repo := setup()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Service) bool {
		return s.Products != nil && len(s.Products) == 0
	})).Return(nil)

	_, err := svc.CreateService(context.Background(), uuid.New(), validInput())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func existingService(owner, id uuid.UUID, products ...uuid.UUID) *model.Service {
	s := &model.Service{
		Base:          model.Base{ID: id},
		OwnerID:       owner,
		Name:          "Manicure",
		Description:   "Basic",
		PricingType:   model.PricingTypeFixed,
		BasePrice:     decimal.RequireFromString("50"),
		EstimatedTime: 60,
	}
	for _, p := range products {
		s.Products = append(s.Products, model.ServiceProduct{ProductID: p, Quantity: decimal.RequireFromString("1")})
	}
	return s
}

func TestUpdateServiceReplacesProducts(t *testing.T) {
	svc, repo := setup()
	owner, id, p1, p2, p3 := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()

	repo.On("Find", mock.Anything, owner, id).Return(existingService(owner, id, p1, p2), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *model.Service) bool {
		return len(s.Products) == 1 && s.Products[0].ProductID == p3
	}), true).Return(nil)

	in := &model.ServiceInput{Products: &[]model.UsageInput{usage(p3, "3")}}
	service, err := svc.UpdateService(context.Background(), owner, id, in)
	require.NoError(t, err)
	require.Len(t, service.Products, 1)
	assert.Equal(t, p3, service.Products[0].ProductID)
	repo.AssertExpectations(t)
}

func TestUpdateServiceEmptyProductsClearsUsages(t *testing.T) {
	svc, repo := setup()
	owner, id := uuid.New(), uuid.New()

	repo.On("Find", mock.Anything, owner, id).Return(existingService(owner, id, uuid.New()), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *model.Service) bool {
		return len(s.Products) == 0
	}), true).Return(nil)

	_, err := svc.UpdateService(context.Background(), owner, id, &model.ServiceInput{Products: &[]model.UsageInput{}})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateServiceWithoutProductsKeepsUsages(t *testing.T) {
	svc, repo := setup()
	owner, id, p1 := uuid.New(), uuid.New(), uuid.New()

	repo.On("Find", mock.Anything, owner, id).Return(existingService(owner, id, p1), nil)
	repo.On("Update", mock.Anything, mock.Anything, false).Return(nil)

	service, err := svc.UpdateService(context.Background(), owner, id, &model.ServiceInput{Name: strPtr("Pedicure")})
	require.NoError(t, err)
	assert.Equal(t, "Pedicure", service.Name)
	require.Len(t, service.Products, 1)
	assert.Equal(t, p1, service.Products[0].ProductID)
	repo.AssertExpectations(t)
}

func TestUpdateServiceUnknownProduct(t *testing.T) {
	svc, repo := setup()
	owner, id := uuid.New(), uuid.New()

	repo.On("Find", mock.Anything, owner, id).Return(existingService(owner, id), nil)
	repo.On("Update", mock.Anything, mock.Anything, true).Return(repository.ErrUnknownProducts)

	_, err := svc.UpdateService(context.Background(), owner, id, validInput(usage(uuid.New(), "1")))
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{model.MsgProductsMissing}, appErr.Fields["products"])
}

func TestGetServiceOfOtherOwner(t *testing.T) {
	svc, repo := setup()
	owner, id := uuid.New(), uuid.New()

	repo.On("Find", mock.Anything, owner, id).Return(nil, errors.NotFound("service", nil))

	_, err := svc.GetService(context.Background(), owner, id)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
