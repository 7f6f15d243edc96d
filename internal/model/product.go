package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	UnitTypeML   = "ml"
	UnitTypeUnit = "unit"

	ProductTypeSupply    = "supply"
	ProductTypeAccessory = "accessory"
)

type Product struct {
	Base
	SoftDelete
	OwnerID             uuid.UUID       `json:"user" db:"owner_id"`
	Name                string          `json:"name" db:"name" validate:"notblank,max=255"`
	Description         string          `json:"description" db:"description" validate:"notblank"`
	UnitType            string          `json:"unit_type" db:"unit_type" validate:"oneof=ml unit"`
	ProductType         string          `json:"product_type" db:"product_type" validate:"oneof=supply accessory"`
	LastPurchasePrice   decimal.Decimal `json:"last_purchase_price" db:"last_purchase_price" validate:"gte=0,lte=99999999.99"`
	SalePrice           decimal.Decimal `json:"sale_price" db:"sale_price" validate:"gte=0,lte=99999999.99"`
	StockQuantity       decimal.Decimal `json:"stock_quantity" db:"stock_quantity" validate:"gte=0,lte=99999999.99"`
	StockControlEnabled bool            `json:"stock_control_enabled" db:"stock_control_enabled"`
}

// NewProduct returns a product carrying the column defaults.
func NewProduct(owner uuid.UUID) *Product {
	return &Product{OwnerID: owner, StockControlEnabled: true}
}

type ProductInput struct {
	Name                *string          `json:"name" create:"required"`
	Description         *string          `json:"description" create:"required"`
	UnitType            *string          `json:"unit_type" create:"required"`
	ProductType         *string          `json:"product_type" create:"required"`
	LastPurchasePrice   *decimal.Decimal `json:"last_purchase_price" create:"required" validate:"omitempty,places=2"`
	SalePrice           *decimal.Decimal `json:"sale_price" create:"required" validate:"omitempty,places=2"`
	StockQuantity       *decimal.Decimal `json:"stock_quantity" create:"required" validate:"omitempty,places=2"`
	StockControlEnabled *bool            `json:"stock_control_enabled"`
}

func (in *ProductInput) Apply(p *Product) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.UnitType != nil {
		p.UnitType = *in.UnitType
	}
	if in.ProductType != nil {
		p.ProductType = *in.ProductType
	}
	if in.LastPurchasePrice != nil {
		p.LastPurchasePrice = in.LastPurchasePrice.Round(2)
	}
	if in.SalePrice != nil {
		p.SalePrice = in.SalePrice.Round(2)
	}
	if in.StockQuantity != nil {
		p.StockQuantity = in.StockQuantity.Round(2)
	}
	if in.StockControlEnabled != nil {
		p.StockControlEnabled = *in.StockControlEnabled
	}
}
