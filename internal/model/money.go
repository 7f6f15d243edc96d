package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale of every NUMERIC(10,2) column.
const MoneyPlaces = 2

func fixed(d decimal.Decimal) string {
	return d.StringFixed(MoneyPlaces)
}

// MarshalJSON renders amounts with two decimal places ("250.00").
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		LastPurchasePrice string `json:"last_purchase_price"`
		SalePrice         string `json:"sale_price"`
		StockQuantity     string `json:"stock_quantity"`
	}{
		product:           product(p),
		LastPurchasePrice: fixed(p.LastPurchasePrice),
		SalePrice:         fixed(p.SalePrice),
		StockQuantity:     fixed(p.StockQuantity),
	})
}

func (s Service) MarshalJSON() ([]byte, error) {
	type service Service
	return json.Marshal(struct {
		service
		BasePrice string `json:"base_price"`
	}{
		service:   service(s),
		BasePrice: fixed(s.BasePrice),
	})
}

func (u ServiceProduct) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProductID string `json:"product"`
		Quantity  string `json:"quantity"`
	}{
		ProductID: u.ProductID.String(),
		Quantity:  fixed(u.Quantity),
	})
}
