package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	DefaultSymbol  = "BTC"
	DefaultConvert = "USD"
)

var (
	ErrInvalidAmount = errors.New("amount must be a number greater than zero")
	ErrNoResult      = errors.New("response carries no converted amount")
)

// ID is a currency identifier the service may send as a number or a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "invalid currency id")
	}
	*id = ID(n.String())
	return nil
}

type Currency struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type Request struct {
	Symbol  string `json:"symbol"`
	Amount  string `json:"amount"`
	Convert string `json:"convert"`
}

type Result struct {
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
}

// UnmarshalJSON rejects a missing or null convertedAmount instead of reading
// it as zero.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw struct {
		ConvertedAmount decimal.NullDecimal `json:"convertedAmount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.ConvertedAmount.Valid {
		return ErrNoResult
	}
	r.ConvertedAmount = raw.ConvertedAmount.Decimal
	return nil
}

func (r Result) String() string {
	return r.ConvertedAmount.String()
}

type CurrencyLister interface {
	TopCryptos(ctx context.Context) ([]Currency, error)
}

type Converter interface {
	ConvertCurrency(ctx context.Context, req Request) (Result, error)
}

type Client interface {
	CurrencyLister
	Converter
}

// ParseAmount parses user input and reports whether it is usable for a
// conversion: non-empty and strictly positive.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrap(ErrInvalidAmount, err.Error())
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

func ValidAmount(raw string) bool {
	_, err := ParseAmount(raw)
	return err == nil
}

func (r Request) Validate() error {
	switch {
	case strings.TrimSpace(r.Symbol) == "":
		return errors.New("symbol cannot be empty")
	case strings.TrimSpace(r.Convert) == "":
		return errors.New("convert cannot be empty")
	}
	_, err := ParseAmount(r.Amount)
	return err
}
