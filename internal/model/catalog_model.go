package model

import "github.com/shopspring/decimal"

type Shop struct {
	ShopID int64   `json:"shopid"`
	Name   string  `json:"name"`
	URL    *string `json:"url,omitempty"`
}

type Category struct {
	CategoryID int64  `json:"categoryid"`
	Name       string `json:"name"`
}

type Product struct {
	ProductID  int64  `json:"productid"`
	Name       string `json:"name"`
	CategoryID int64  `json:"categoryid"`
}

type Parameter struct {
	ParameterID int64  `json:"parameterid"`
	Name        string `json:"name"`
}

// ProductInfo is one shop's offer for a product: its stock and price.
type ProductInfo struct {
	ProductInfoID int64           `json:"productinfoid"`
	ProductID     int64           `json:"productid"`
	ShopID        int64           `json:"shopid"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	PriceRRC      decimal.Decimal `json:"price_rrc"`
}

type ProductParameter struct {
	ProductInfoID int64  `json:"productinfoid"`
	ParameterID   int64  `json:"parameterid"`
	Value         string `json:"value"`
}

// ParameterValue is what the API exposes for a product's parameters
// (joined with parameters.name).
type ParameterValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductInfoView is returned by GET /api/products and /api/products/:id
type ProductInfoView struct {
	ProductInfoID int64            `json:"id"`
	Product       string           `json:"product"`
	Category      string           `json:"category"`
	Shop          string           `json:"shop"`
	Price         decimal.Decimal  `json:"price"`
	Quantity      int              `json:"quantity"`
	Parameters    []ParameterValue `json:"parameters"`
}
