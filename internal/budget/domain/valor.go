package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Valor is a monetary amount stored as an exact count of centavos.
// All arithmetic over amounts happens on int64 so report sums never
// touch floating point.
type Valor int64

var ErrValorInvalido = errors.New("invalid amount: must be a decimal number with at most 2 decimal places")

// ParseValor converts a decimal string such as "1234.56" into centavos.
// Inputs with more than two fractional digits are rejected, not rounded:
// the API promises the persisted amount equals the submitted amount exactly.
func ParseValor(s string) (Valor, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrValorInvalido
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrValorInvalido
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, ErrValorInvalido
	}

	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, ErrValorInvalido
		}
	}
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, ErrValorInvalido
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrValorInvalido
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
		}
	}

	const maxInt64 = 1<<63 - 1
	if iv > maxInt64/100 || (iv == maxInt64/100 && fracCents > maxInt64%100) {
		return 0, ErrValorInvalido
	}

	return Valor(iv*100 + fracCents), nil
}

// Positive reports whether the amount is strictly greater than zero.
// Both the structural validation stage and the final pre-persist check
// go through this predicate.
func (v Valor) Positive() bool {
	return v > 0
}

func (v Valor) String() string {
	cents := int64(v)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON renders the amount as a plain JSON number with two decimals.
func (v Valor) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Valor) UnmarshalJSON(b []byte) error {
	parsed, err := ParseValor(unquote(string(b)))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ValorInput captures the raw wire token for an amount so that a malformed
// value becomes a field-level validation message instead of failing the
// whole body decode. Both JSON numbers and quoted strings are accepted.
type ValorInput string

func (v *ValorInput) UnmarshalJSON(b []byte) error {
	*v = ValorInput(unquote(string(b)))
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
