package cbr

import (
	"time"

	"github.com/robotomize/kurlar/provider"
)

var _ provider.ExchangeRate = (*ExchangeRate)(nil)

type ExchangeRate struct {
	time time.Time
	rate float64
}

func (e ExchangeRate) Time() time.Time {
	return e.time
}

func (e ExchangeRate) From() provider.Symbol {
	return provider.USD
}

func (e ExchangeRate) To() provider.Symbol {
	return provider.RUB
}

// Rate is the official rate for a single unit, Value / Nominal
func (e ExchangeRate) Rate() float64 {
	return e.rate
}
