package provider

import (
	"context"
	"time"

	"github.com/samuu/verter/label"
)

// Source delivers exchange rates quoted against the peso. A source decides where the numbers
// come from, the converter only keeps the pairs it can offer
//
//go:generate mockgen -source source.go -destination mock_source.go -package provider
type Source interface {
	// FetchLatest returns the current rate table
	FetchLatest(ctx context.Context) ([]ExchangeRate, error)

	// GetExchangeable declares the currencies this source can quote
	GetExchangeable() []label.Symbol
}

// ExchangeRate represents the exchange rate of a particular currency pair
type ExchangeRate interface {
	// Time - date on which the exchange rate was issued
	Time() time.Time
	// From MXN to USD => 1MXN ~ 0.05714USD
	From() label.Currency
	To() label.Currency
	Rate() float64
}
