package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/bizmanager-api/internal/model"
	"github.com/jwalitptl/bizmanager-api/internal/repository/mocks"
	"github.com/jwalitptl/bizmanager-api/pkg/errors"
	"github.com/jwalitptl/bizmanager-api/pkg/validator"
)

func strPtr(s string) *string { return &s }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validInput() *model.ProductInput {
	return &model.ProductInput{
		Name:              strPtr("Nail Polish"),
		Description:       strPtr("Red nail polish"),
		UnitType:          strPtr(model.UnitTypeML),
		ProductType:       strPtr(model.ProductTypeSupply),
		LastPurchasePrice: dec("10.50"),
		SalePrice:         dec("15.00"),
		StockQuantity:     dec("100.00"),
	}
}

func TestCreateProductDefaultsStockControl(t *testing.T) {
	repo := &mocks.ProductRepository{}
	svc := NewService(repo, validator.New())
	owner := uuid.New()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

	product, err := svc.CreateProduct(context.Background(), owner, validInput())
	require.NoError(t, err)
	assert.True(t, product.StockControlEnabled)
	assert.Equal(t, owner, product.OwnerID)
	assert.True(t, decimal.RequireFromString("10.5").Equal(product.LastPurchasePrice))
}

func TestCreateProductRejectsNegativesAndBadChoices(t *testing.T) {
	repo := &mocks.ProductRepository{}
	svc := NewService(repo, validator.New())

	in := validInput()
	in.SalePrice = dec("-1")
	in.StockQuantity = dec("-0.5")
	in.UnitType = strPtr("litre")

	_, err := svc.CreateProduct(context.Background(), uuid.New(), in)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)
	assert.Contains(t, appErr.Fields, "sale_price")
	assert.Contains(t, appErr.Fields, "stock_quantity")
	assert.Contains(t, appErr.Fields, "unit_type")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProductRejectsPrecisionAndOverflow(t *testing.T) {
	repo := &mocks.ProductRepository{}
	svc := NewService(repo, validator.New())

	in := validInput()
	in.SalePrice = dec("1.005")
	in.StockQuantity = dec("100000000")

	_, err := svc.CreateProduct(context.Background(), uuid.New(), in)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Ensure that there are no more than 2 decimal places."}, appErr.Fields["sale_price"])
	assert.Equal(t, []string{"Ensure this value is less than or equal to 99999999.99."}, appErr.Fields["stock_quantity"])
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProductMissingPriceIsRequired(t *testing.T) {
	svc := NewService(&mocks.ProductRepository{}, validator.New())

	in := validInput()
	in.SalePrice = nil

	_, err := svc.CreateProduct(context.Background(), uuid.New(), in)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"This field is required."}, appErr.Fields["sale_price"])
}

func TestUpdateProductPartial(t *testing.T) {
	repo := &mocks.ProductRepository{}
	svc := NewService(repo, validator.New())
	owner, id := uuid.New(), uuid.New()

	existing := model.NewProduct(owner)
	existing.ID = id
	validInput().Apply(existing)

	repo.On("Find", mock.Anything, owner, id).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	product, err := svc.UpdateProduct(context.Background(), owner, id, &model.ProductInput{SalePrice: dec("20")})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("20").Equal(product.SalePrice))
	assert.Equal(t, "Nail Polish", product.Name)
	repo.AssertExpectations(t)
}

func TestDeleteProductNotFound(t *testing.T) {
	repo := &mocks.ProductRepository{}
	svc := NewService(repo, validator.New())
	owner, id := uuid.New(), uuid.New()

	repo.On("SoftDelete", mock.Anything, owner, id, mock.AnythingOfType("time.Time")).
		Return(errors.NotFound("product", nil))

	err := svc.DeleteProduct(context.Background(), owner, id)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
