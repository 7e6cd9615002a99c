package domain

import "time"

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       Money
	ImageURL    string

	CreatedAt time.Time
}
