package route

import (
	"strings"

	"farewatch/internal/pkg/errs"
)

var (
	ErrInvalidAirportCode = errs.New("invalid airport code")
	ErrSameEndpoints      = errs.New("origin and destination must differ")
)

// AirportCode is a three-letter IATA airport code, stored uppercase.
type AirportCode struct {
	value string
}

func NewAirportCode(code string) (AirportCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return AirportCode{}, ErrInvalidAirportCode
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return AirportCode{}, ErrInvalidAirportCode
		}
	}
	return AirportCode{value: code}, nil
}

func (c AirportCode) String() string {
	return c.value
}

func (c AirportCode) IsZero() bool {
	return c.value == ""
}
