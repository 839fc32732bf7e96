package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CloudSKU identifies a product in the cloud warehouse system, e.g. "WS007-192-12".
// It is the canonical identity of every summary record.
type CloudSKU string

// PlatformSKU identifies a product in the CG platform system, e.g. "WS007-30-KING".
type PlatformSKU string

// Quantity is a stock quantity. Spreadsheet exports carry counts such as "5.0",
// so quantities are exact decimals rather than integers.
type Quantity decimal.Decimal

// NewQuantity creates a Quantity from an integer count
func NewQuantity(n int64) Quantity {
	return Quantity(decimal.NewFromInt(n))
}

// NewQuantityFromString parses a decimal string such as "12.5"
func NewQuantityFromString(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return Quantity(d), nil
}

// QuantityFromDecimal wraps a decimal value
func QuantityFromDecimal(d decimal.Decimal) Quantity {
	return Quantity(d)
}

// Decimal returns the underlying decimal value
func (q Quantity) Decimal() decimal.Decimal {
	return decimal.Decimal(q)
}

// Add returns q + other
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity(q.Decimal().Add(other.Decimal()))
}

// Sub returns q - other
func (q Quantity) Sub(other Quantity) Quantity {
	return Quantity(q.Decimal().Sub(other.Decimal()))
}

// Equal compares numeric values, so 5 and 5.0 are equal.
func (q Quantity) Equal(other Quantity) bool {
	return q.Decimal().Equal(other.Decimal())
}

// IsZero reports whether the quantity is zero
func (q Quantity) IsZero() bool {
	return q.Decimal().IsZero()
}

func (q Quantity) String() string {
	return q.Decimal().String()
}

// MarshalJSON encodes the quantity as a bare JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.Decimal().String()), nil
}

// UnmarshalJSON accepts both quoted and bare numbers.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*q = Quantity(d)
	return nil
}

// SumQuantities adds up all given quantities
func SumQuantities(quantities ...Quantity) Quantity {
	total := decimal.Zero
	for _, q := range quantities {
		total = total.Add(q.Decimal())
	}
	return Quantity(total)
}
