package model

import "github.com/shopspring/decimal"

// Order statuses form a linear workflow. Non-admin roles may only move
// an order one step forward, see service.Access.
const (
	StatusPlaced         = "placed"
	StatusAwaitingSupply = "awaiting supply"
	StatusAssembly       = "assembly"
	StatusDelivery       = "delivery"
	StatusCompleted      = "completed"

	// StatusAll is the pseudo-status used by the listing endpoint to
	// request orders regardless of status.
	StatusAll = "all"
)

type Order struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Date         string `json:"date"`
	Channel      string `json:"channel"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Messenger    string `json:"messenger"`
	Address      string `json:"address"`
	Logistics    string `json:"logistics"`

	// Financial fields are filled in later by the back office and kept
	// as opaque strings in the sheet.
	Percent    string `json:"percent"`
	ExtraCosts string `json:"extra_costs"`
	Profit     string `json:"profit"`
	Accruals   string `json:"accruals"`

	Items []Item `json:"items"`

	// TotalSum is derived at read time from the item order sums; it is
	// never written back to the sheet.
	TotalSum decimal.Decimal `json:"total_sum"`
}

type Item struct {
	SKU         string `json:"sku"`
	Supplier    string `json:"supplier"`
	Photo       string `json:"photo"`
	Quantity    string `json:"quantity"`
	OrderSum    string `json:"order_sum"`
	PurchaseSum string `json:"purchase_sum"`
	Comment     string `json:"comment"`
}
