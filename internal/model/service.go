package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PricingTypeFixed  = "fixed"
	PricingTypeHourly = "hourly"
	PricingTypeBonus  = "bonus"
)

// Service is sold to clients and consumes products. It owns its usage set.
type Service struct {
	Base
	SoftDelete
	OwnerID       uuid.UUID        `json:"user" db:"owner_id"`
	Name          string           `json:"name" db:"name" validate:"notblank,max=255"`
	Description   string           `json:"description" db:"description" validate:"notblank"`
	PricingType   string           `json:"pricing_type" db:"pricing_type" validate:"oneof=fixed hourly bonus"`
	BasePrice     decimal.Decimal  `json:"base_price" db:"base_price" validate:"gt=0,lte=99999999.99"`
	EstimatedTime int              `json:"estimated_time" db:"estimated_time" validate:"gte=0,lte=2147483647"`
	Products      []ServiceProduct `json:"products" db:"-"`
}

// ServiceProduct records how much of a product one service consumes.
type ServiceProduct struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	ServiceID uuid.UUID       `json:"-" db:"service_id"`
	ProductID uuid.UUID       `json:"product" db:"product_id"`
	OwnerID   uuid.UUID       `json:"-" db:"owner_id"`
	Quantity  decimal.Decimal `json:"quantity" db:"quantity"`
}

type ServiceInput struct {
	Name          *string          `json:"name" create:"required"`
	Description   *string          `json:"description" create:"required"`
	PricingType   *string          `json:"pricing_type" create:"required"`
	BasePrice     *decimal.Decimal `json:"base_price" create:"required" validate:"omitempty,places=2"`
	EstimatedTime *int             `json:"estimated_time" create:"required"`
	// Products replaces the whole usage set when present.
	Products *[]UsageInput `json:"products" validate:"omitempty,dive"`
}

type UsageInput struct {
	Product  string           `json:"product" validate:"required,uuid"`
	Quantity *decimal.Decimal `json:"quantity" validate:"required,places=2,gt=0,lte=99999999.99"`
}

func (in *ServiceInput) Apply(s *Service) {
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.PricingType != nil {
		s.PricingType = *in.PricingType
	}
	if in.BasePrice != nil {
		s.BasePrice = in.BasePrice.Round(2)
	}
	if in.EstimatedTime != nil {
		s.EstimatedTime = *in.EstimatedTime
	}
}

// Usages converts the validated usage inputs. It must only be called after
// the inputs passed validation.
func (in *ServiceInput) Usages() []ServiceProduct {
	if in.Products == nil {
		return nil
	}
	out := make([]ServiceProduct, 0, len(*in.Products))
	for _, u := range *in.Products {
		out = append(out, ServiceProduct{
			ProductID: uuid.MustParse(u.Product),
			Quantity:  u.Quantity.Round(2),
		})
	}
	return out
}

// ProductIDs lists the distinct products referenced by the usage set.
func ProductIDs(usages []ServiceProduct) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(usages))
	ids := make([]uuid.UUID, 0, len(usages))
	for _, u := range usages {
		if _, ok := seen[u.ProductID]; ok {
			continue
		}
		seen[u.ProductID] = struct{}{}
		ids = append(ids, u.ProductID)
	}
	return ids
}

const (
	MsgProductsMissing   = "One or more products do not exist."
	MsgProductsDuplicate = "Each product may only be listed once."
)
