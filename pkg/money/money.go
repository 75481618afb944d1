package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// Symbol returns the display prefix, or the code followed by a space when
// the currency has no symbol.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c.code]; ok {
		return s
	}
	return c.code + " "
}

// String returns the currency code.
func (c Currency) String() string {
	return c.code
}

// USD is the currency payouts are quoted in.
var USD = MustCurrency("USD")

// Money represents an immutable monetary amount with currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// New creates a Money value from a decimal amount and currency.
func New(amount decimal.Decimal, currency Currency) Money {
	return Money{amount: amount, currency: currency}
}

// NewFromInt creates a whole-unit Money value.
func NewFromInt(amount int64, currency Currency) Money {
	return Money{amount: decimal.NewFromInt(amount), currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equal returns true if both the amount and currency of m and other are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String formats the Money value as "<amount> <currency>", for example "100.0000 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(4), m.currency.Code())
}

// Display formats the amount for people, for example "$250" or "-$12.5".
func (m Money) Display() string {
	if m.amount.IsNegative() {
		return "-" + m.currency.Symbol() + m.amount.Neg().String()
	}
	return m.currency.Symbol() + m.amount.String()
}
