package valueobject

import "fmt"

// Country is the growing country of a season.
type Country struct {
	value string
}

var (
	CountryKenya    = Country{value: "Kenya"}
	CountryEthiopia = Country{value: "Ethiopia"}
	CountryUganda   = Country{value: "Uganda"}
	CountryZambia   = Country{value: "Zambia"}
	CountryTanzania = Country{value: "Tanzania"}
	CountryMalawi   = Country{value: "Malawi"}
)

// Countries returns the selectable countries in form order.
func Countries() []Country {
	return []Country{CountryKenya, CountryEthiopia, CountryUganda, CountryZambia, CountryTanzania, CountryMalawi}
}

// EncodedCountries returns the countries that own an indicator column, in
// column order. Ethiopia is the baseline category and has no column.
func EncodedCountries() []Country {
	return []Country{CountryKenya, CountryMalawi, CountryTanzania, CountryUganda, CountryZambia}
}

// CountryFromString parses a country name.
func CountryFromString(s string) (Country, error) {
	for _, c := range Countries() {
		if c.value == s {
			return c, nil
		}
	}
	return Country{}, fmt.Errorf("invalid country: %q", s)
}

// String returns the string representation.
func (c Country) String() string {
	return c.value
}

// IsBaseline reports whether the country encodes as an all-zero indicator block.
func (c Country) IsBaseline() bool {
	return c.value == CountryEthiopia.value
}

// IsZero returns true if the Country has not been set.
func (c Country) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another Country.
func (c Country) Equal(other Country) bool {
	return c.value == other.value
}
