package models

import "github.com/shopspring/decimal"

type Package struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Credits      int64  `json:"credits"`
	DurationDays int    `json:"duration_days"`
}

type Upsell struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Credits int64  `json:"credits"`
}

type CreditBundle struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Credits int64           `json:"credits"`
	Price   decimal.Decimal `json:"price"`
}

type Catalog struct {
	Packages []Package      `json:"packages"`
	Upsells  []Upsell       `json:"upsells"`
	Bundles  []CreditBundle `json:"bundles"`
}
