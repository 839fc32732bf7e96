package services

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
)

const (
	// maxScale bounds the decimal exponent in either direction.
	maxScale = 18
	// maxIntegerDigits bounds the digits left of the decimal point.
	maxIntegerDigits = 18
)

var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// CoerceNumeric is the lenient numeric policy applied to spreadsheet cells.
//
// Surrounding whitespace is ignored and thousands separators are accepted
// when correctly grouped, so "1,234" and " 5.0 " parse. Blank cells are zero.
// Anything else ("N/A", "-", "12 pcs", "12,5", "1e400") is also zero, with
// malformed set so callers can count it.
func CoerceNumeric(raw string) (q entities.Quantity, malformed bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return entities.Quantity{}, false
	}
	if groupedNumber.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !inRange(d) {
		return entities.Quantity{}, true
	}
	return entities.QuantityFromDecimal(d), false
}

// inRange rejects values whose exponent would make arithmetic on them
// rescale to an enormous coefficient.
func inRange(d decimal.Decimal) bool {
	exp := int(d.Exponent())
	if exp < -maxScale || exp > maxScale {
		return false
	}
	if d.IsZero() {
		return true
	}
	return d.NumDigits()+exp <= maxIntegerDigits
}
