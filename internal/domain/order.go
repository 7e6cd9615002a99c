package domain

import "time"

// OrderLine is a snapshot of a cart line at checkout time. Name and price
// are copied from the catalog so later catalog changes never touch a
// committed order.
type OrderLine struct {
	ProductName string `json:"product_name"`
	UnitPrice   Money  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

func (l OrderLine) Subtotal() Money {
	return l.UnitPrice.Mul(l.Quantity)
}

type Order struct {
	ID    int64
	Total Money
	Lines []OrderLine

	CreatedAt time.Time
}
