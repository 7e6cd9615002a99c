package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is an amount in the smallest unit of its currency (cents for USD).
// All pricing arithmetic stays on int64; decimal is used for display only.
type Money struct {
	Amount   int64
	Currency currency.Unit
}

func (m Money) Mul(quantity int) Money {
	return Money{
		Amount:   m.Amount * int64(quantity),
		Currency: m.Currency,
	}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}

	return Money{
		Amount:   m.Amount + other.Amount,
		Currency: m.Currency,
	}, nil
}

// Display renders the amount in major units, e.g. 1999 -> "19.99 USD".
func (m Money) Display() string {
	scale, _ := currency.Cash.Rounding(m.Currency)

	d := decimal.New(m.Amount, -int32(scale))
	return fmt.Sprintf("%s %s", d.StringFixed(int32(scale)), m.Currency)
}

type moneyJSON struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:   m.Amount,
		Currency: m.Currency.String(),
	})
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	parsedCurrency, err := currency.ParseISO(raw.Currency)
	if err != nil {
		return fmt.Errorf("currency[%s] is not valid: %w", raw.Currency, err)
	}

	m.Amount = raw.Amount
	m.Currency = parsedCurrency
	return nil
}
