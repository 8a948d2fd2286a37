package model

import (
	"fmt"
	"math"
	"strings"
)

// Money is a monetary amount in integer minor units (cents).
// All arithmetic inside the application happens on Money; floating-point
// values exist only at presentation and parsing boundaries.
type Money int64

// MoneyFromFloat converts a major-unit float to Money, rounding half away
// from zero. Non-finite inputs become zero.
func MoneyFromFloat(f float64) Money {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Money(math.Round(f * 100))
}

// Float64 returns the amount in major units.
func (m Money) Float64() float64 {
	return float64(m) / 100
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// String formats the amount with two decimals, e.g. "1234.56" or "-0.05".
func (m Money) String() string {
	sign := ""
	v := m
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ParseMoney parses a monetary string into Money. It tolerates currency
// symbols, thousands separators, and both "." and "," as the decimal
// separator: "1234.56", "1.234,56", "1,234.56", "R$ 45,00" all parse.
func ParseMoney(s string) (Money, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		default:
			return -1
		}
	}, s)

	if cleaned == "" || cleaned == "-" {
		return 0, fmt.Errorf("invalid monetary value %q", s)
	}

	// Whichever separator appears last is the decimal point; the other is
	// a thousands separator and is dropped.
	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")
	decimal := "."
	if lastComma > lastDot {
		decimal = ","
	}
	other := ","
	if decimal == "," {
		other = "."
	}
	cleaned = strings.ReplaceAll(cleaned, other, "")

	intPart := cleaned
	fracPart := ""
	if idx := strings.LastIndex(cleaned, decimal); idx >= 0 {
		if strings.Count(cleaned, decimal) > 1 {
			// Multiple occurrences mean it was a thousands separator after all.
			intPart = strings.ReplaceAll(cleaned, decimal, "")
		} else {
			intPart = cleaned[:idx]
			fracPart = cleaned[idx+1:]
		}
	}

	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	if intPart == "" {
		intPart = "0"
	}

	var units int64
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid monetary value %q", s)
		}
		units = units*10 + int64(r-'0')
	}

	// Normalize the fraction to exactly two digits, rounding on the third.
	var cents int64
	switch {
	case len(fracPart) == 0:
		cents = 0
	case len(fracPart) == 1:
		cents = int64(fracPart[0]-'0') * 10
	default:
		for _, r := range fracPart {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid monetary value %q", s)
			}
		}
		cents = int64(fracPart[0]-'0')*10 + int64(fracPart[1]-'0')
		if len(fracPart) > 2 && fracPart[2] >= '5' {
			cents++
		}
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	return Money(total), nil
}
