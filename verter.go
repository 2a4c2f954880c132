package verter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/samuu/verter/internal/logging"
	"github.com/samuu/verter/label"
	"github.com/samuu/verter/provider"
	"github.com/samuu/verter/provider/fixed"
	"github.com/sethvargo/go-retry"
)

var (
	ErrCurrencyNotFound = errors.New("currency symbol is not supported")
	ErrNoRates          = errors.New("source returned no usable rates")
)

const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultRetryNum       = 1
	DefaultRetryDuration  = 500 * time.Millisecond
)

// Base is the currency every amount is entered in
const Base = label.MXN

// fallbackSign is shown for codes without a rate, the amount then passes through as is
const fallbackSign = "$"

type Option func(*Converter)

type Options struct {
	RetryNum       uint64
	RetryDuration  time.Duration
	RequestTimeout time.Duration
}

// WithSource set the source the rate table is loaded from
func WithSource(s provider.Source) Option {
	return func(c *Converter) {
		c.source = s
	}
}

// WithRetryNum set number of repeated requests for data retrieval errors from the source
func WithRetryNum(n uint64) Option {
	return func(c *Converter) {
		c.opts.RetryNum = n
	}
}

// WithRetryDuration constant retry backoff
func WithRetryDuration(t time.Duration) Option {
	return func(c *Converter) {
		c.opts.RetryDuration = t
	}
}

// WithRequestTimeout set a timeout for loading the rate table
func WithRequestTimeout(t time.Duration) Option {
	return func(c *Converter) {
		c.opts.RequestTimeout = t
	}
}

type rate struct {
	to    label.Currency
	value float64
}

// Converter turns peso amounts into foreign currency. It is immutable once built
// and can be shared between goroutines
type Converter struct {
	opts         Options
	source       provider.Source
	rates        map[label.Symbol]rate
	exchangeable []label.Symbol
}

// New loads the rate table and returns a ready converter. Without WithSource the hardcoded table is used
func New(ctx context.Context, opts ...Option) (*Converter, error) {
	c := &Converter{
		opts: Options{
			RetryNum:       DefaultRetryNum,
			RetryDuration:  DefaultRetryDuration,
			RequestTimeout: DefaultRequestTimeout,
		},
		source: fixed.NewSource(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.load(ctx); err != nil {
		return nil, fmt.Errorf("load rates: %w", err)
	}

	return c, nil
}

func (c *Converter) load(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	b, err := retry.NewConstant(c.opts.RetryDuration)
	if err != nil {
		return fmt.Errorf("retry backoff: %w", err)
	}
	b = retry.WithMaxRetries(c.opts.RetryNum, b)

	var latest []provider.ExchangeRate
	if err := retry.Do(ctx, b, func(ctx context.Context) error {
		rates, err := c.source.FetchLatest(ctx)
		if err != nil {
			logger.WithError(err).Warn("fetch latest rates")
			return retry.RetryableError(fmt.Errorf("fetch latest: %w", err))
		}

		latest = rates
		return nil
	}); err != nil {
		return err
	}

	offered := make(map[label.Symbol]struct{})
	for _, sym := range c.source.GetExchangeable() {
		offered[sym] = struct{}{}
	}

	c.rates = make(map[label.Symbol]rate, len(latest))
	for _, r := range latest {
		if r.From().Symbol != Base {
			continue
		}

		to := r.To().Symbol
		if _, ok := offered[to]; !ok {
			continue
		}

		ccy, ok := label.Currencies[to]
		if !ok {
			continue
		}

		c.rates[to] = rate{to: ccy, value: r.Rate()}
	}

	if len(c.rates) == 0 {
		return ErrNoRates
	}

	c.exchangeable = make([]label.Symbol, 0, len(c.rates))
	for _, sym := range c.source.GetExchangeable() {
		if _, ok := c.rates[sym]; ok && !containsSymbol(c.exchangeable, sym) {
			c.exchangeable = append(c.exchangeable, sym)
		}
	}

	logger.Debugf("loaded %d rates for %s", len(c.rates), Base)

	return nil
}

// Convert converts a peso amount into the currency named by code and rounds the result up to a whole unit.
// Only the exact codes of the rate table are recognized. Any other code never fails: the amount passes
// through unconverted with the dollar sign, and the code is kept as given
func (c *Converter) Convert(code string, amount float64) Result {
	sym := label.Symbol(code)

	r, ok := c.rates[sym]
	if !ok {
		return Result{Code: sym, Sign: fallbackSign, Value: amount}
	}

	return Result{Code: sym, Sign: r.to.Sign, Value: math.Ceil(amount * r.value)}
}

// ConvertStrict is Convert without the passthrough fallback
func (c *Converter) ConvertStrict(code string, amount float64) (Result, error) {
	if _, ok := c.rates[label.Symbol(code)]; !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrCurrencyNotFound, code)
	}

	return c.Convert(code, amount), nil
}

// ConvertText coerces raw amount text with ParseAmount before converting
func (c *Converter) ConvertText(code, text string) Result {
	return c.Convert(code, ParseAmount(text))
}

// Rate returns the multiplier applied to a peso amount for the currency
func (c *Converter) Rate(code string) (float64, bool) {
	r, ok := c.rates[label.Symbol(code)]
	return r.value, ok
}

// Exchangeable returns the selectable currencies in display order
func (c *Converter) Exchangeable() []label.Symbol {
	list := make([]label.Symbol, len(c.exchangeable))
	copy(list, c.exchangeable)

	return list
}

// IsExchangeable reports whether the code has a rate
func (c *Converter) IsExchangeable(code string) bool {
	_, ok := c.rates[label.Symbol(code)]
	return ok
}

func containsSymbol(list []label.Symbol, sym label.Symbol) bool {
	for _, s := range list {
		if s == sym {
			return true
		}
	}

	return false
}
