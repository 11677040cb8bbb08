package provider

import (
	"context"
	"time"
)

// Source is an interface for getting data from a central bank rate sheet. Source takes care of building
// the resource address for a date, receiving the sheet and giving back the USD exchange rate
//
//go:generate mockgen -source source.go -destination mock_source.go -package provider
type Source interface {
	// FetchRate obtains the USD exchange rate published for the date. The zero Date means today's sheet
	FetchRate(ctx context.Context, date Date) (ExchangeRate, error)

	// Symbol declares the local currency the source quotes USD against
	Symbol() Symbol
}

// ExchangeRate represents the exchange rate of a particular currency pair
type ExchangeRate interface {
	// Time - date printed on the rate sheet
	Time() time.Time
	// From USD to TRY => 1USD ~ 43.0TRY
	From() Symbol
	To() Symbol
	Rate() float64
}
