package services

import (
	"testing"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
)

func TestCoerceNumeric(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		expected      string
		wantMalformed bool
	}{
		{"integer", "5", "5", false},
		{"float_formatted", "5.0", "5", false},
		{"fraction", "2.5", "2.5", false},
		{"surrounding_spaces", "  12 ", "12", false},
		{"thousands_separator", "1,234", "1234", false},
		{"exponent", "1e3", "1000", false},
		{"negative", "-3", "-3", false},
		{"blank", "", "0", false},
		{"whitespace_only", "   ", "0", false},
		{"not_available", "N/A", "0", true},
		{"dash", "-", "0", true},
		{"unit_suffix", "12 pcs", "0", true},
		{"grouped_with_fraction", "1,234.5", "1234.5", false},
		{"grouped_negative", "-1,234,567", "-1234567", false},
		{"misplaced_commas", "1,2,3", "0", true},
		{"decimal_comma", "12,5", "0", true},
		{"leading_commas", ",,7", "0", true},
		{"trailing_comma", "1,234,", "0", true},
		{"huge_exponent", "1e400000000", "0", true},
		{"tiny_exponent", "1e-400000000", "0", true},
		{"zero_huge_exponent", "0e999999", "0", true},
		{"too_many_digits", "1234567890123456789012", "0", true},
		{"largest_accepted", "999999999999999999", "999999999999999999", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, malformed := CoerceNumeric(tt.raw)
			if q.String() != tt.expected {
				t.Errorf("CoerceNumeric(%q) = %s, expected %s", tt.raw, q, tt.expected)
			}
			if malformed != tt.wantMalformed {
				t.Errorf("CoerceNumeric(%q) malformed = %v, expected %v", tt.raw, malformed, tt.wantMalformed)
			}
		})
	}
}

func TestCoerceNumeric_ResultIsCheapToAdd(t *testing.T) {
	q, malformed := CoerceNumeric("1e18")
	if !malformed {
		t.Fatalf("Expected 1e18 to be out of range, got %s", q)
	}

	q, malformed = CoerceNumeric("1e17")
	if malformed {
		t.Fatalf("Expected 1e17 to parse")
	}
	if got := q.Add(entities.NewQuantity(5)).String(); got != "100000000000000005" {
		t.Errorf("Expected 100000000000000005, got %s", got)
	}
}
