// Package money holds monetary values as integer minor units so that sums
// never go through binary floating point.
package money

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Exponent is the number of minor-unit digits of the store currency.
const Exponent = 2

// Amount is a monetary value in minor units (cents for USD).
type Amount int64

// FromDecimal converts d to minor units, truncating digits beyond Exponent.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Shift(Exponent).Truncate(0).IntPart())
}

// Parse reads a decimal string such as "25.50".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// MinorUnits returns the integer amount the payment gateway expects.
func (a Amount) MinorUnits() int64 {
	return int64(a)
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Exponent)
}

func (a Amount) String() string {
	return a.Decimal().StringFixed(Exponent)
}

// Sum adds amounts in minor units.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}

// MarshalJSON writes the amount as a JSON number with a fixed scale, e.g. 35.50.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and decimal strings.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*a = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
