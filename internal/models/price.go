package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Price is an amount with exactly two decimals ("12.50"). numeric(10,2)
// comes back as text from postgres and as a float from sqlite, so Scan
// reformats whatever the driver hands over.
type Price string

// NewPrice formats s with two decimals. Unparseable input is kept as is.
func NewPrice(s string) Price {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Price(s)
	}
	return formatPrice(v)
}

func formatPrice(v float64) Price {
	return Price(strconv.FormatFloat(v, 'f', 2, 64))
}

// Value implements driver.Valuer.
func (p Price) Value() (driver.Value, error) {
	return string(NewPrice(string(p))), nil
}

// Scan implements sql.Scanner.
func (p *Price) Scan(src any) error {
	switch v := src.(type) {
	case float64:
		*p = formatPrice(v)
	case int64:
		*p = formatPrice(float64(v))
	case []byte:
		*p = NewPrice(string(v))
	case string:
		*p = NewPrice(v)
	case nil:
		*p = DefaultEventPrice
	default:
		return fmt.Errorf("price: cannot scan %T", src)
	}
	return nil
}
