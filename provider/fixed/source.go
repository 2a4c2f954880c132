package fixed

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
	"github.com/samuu/verter/label"
	"github.com/samuu/verter/provider"
)

var (
	ErrEmptyTable      = errors.New("rate table is empty")
	errUnknownCurrency = errors.New("currency is not known")
	errRateNotValid    = errors.New("rate must be positive and finite")
	errDuplicatePair   = errors.New("duplicate currency pair")
)

// Row is a single peso quote: one MXN buys Rate units of To
type Row struct {
	To   label.Symbol
	Rate float64
}

// DefaultTable holds the hardcoded pesos rates
var DefaultTable = []Row{
	{To: label.USD, Rate: 0.05714},
	{To: label.EUR, Rate: 0.05208},
	{To: label.JPY, Rate: 8.33333},
}

var _ provider.Source = (*source)(nil)

type Option func(*source)

// WithTable replaces the default rate table
func WithTable(rows []Row) Option {
	return func(s *source) {
		s.rows = rows
	}
}

func NewSource(opts ...Option) *source {
	s := &source{rows: DefaultTable}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type source struct {
	rows []Row
}

func (s *source) GetExchangeable() []label.Symbol {
	symbols := make([]label.Symbol, 0, len(s.rows))
	for _, r := range s.rows {
		symbols = append(symbols, r.To)
	}

	return symbols
}

func (s *source) FetchLatest(ctx context.Context) ([]provider.ExchangeRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ctx cancelled: %w", err)
	}

	if err := Validate(s.rows); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	base := label.Currencies[label.MXN]
	list := make([]provider.ExchangeRate, 0, len(s.rows))
	for _, r := range s.rows {
		list = append(list, ExchangeRate{
			from: base,
			to:   label.Currencies[r.To],
			rate: r.Rate,
		})
	}

	return list, nil
}

// Validate reports every broken row of the table, not only the first one
func Validate(rows []Row) error {
	if len(rows) == 0 {
		return ErrEmptyTable
	}

	var result *multierror.Error
	seen := make(map[label.Symbol]struct{}, len(rows))

	for _, r := range rows {
		if _, ok := label.Currencies[r.To]; !ok || r.To == label.MXN {
			result = multierror.Append(result, fmt.Errorf("%w: %s", errUnknownCurrency, r.To))
		}

		if r.Rate <= 0 || math.IsNaN(r.Rate) || math.IsInf(r.Rate, 0) {
			result = multierror.Append(result, fmt.Errorf("%w: %s %v", errRateNotValid, r.To, r.Rate))
		}

		if _, ok := seen[r.To]; ok {
			result = multierror.Append(result, fmt.Errorf("%w: MXN/%s", errDuplicatePair, r.To))
		}
		seen[r.To] = struct{}{}
	}

	return result.ErrorOrNil()
}
