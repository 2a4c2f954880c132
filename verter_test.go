package verter

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/samuu/verter/label"
	"github.com/samuu/verter/provider"
)

type testRate struct {
	from, to label.Symbol
	rate     float64
}

func (r testRate) Time() time.Time { return time.Time{} }
func (r testRate) From() label.Currency { return label.Currencies[r.from] }
func (r testRate) To() label.Currency { return label.Currencies[r.to] }
func (r testRate) Rate() float64 { return r.rate }

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()

	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("new converter: %v", err)
	}

	return c
}

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t)

	testCases := []struct {
		name   string
		code   string
		amount float64
		want   Result
	}{
		{
			name:   "test_usd_zero",
			code:   "USD",
			amount: 0,
			want:   Result{Code: label.USD, Sign: "$", Value: 0},
		},
		{
			name:   "test_eur_hundred",
			code:   "EUR",
			amount: 100,
			want:   Result{Code: label.EUR, Sign: "€", Value: 6},
		},
		{
			name:   "test_jpy_ten",
			code:   "JPY",
			amount: 10,
			want:   Result{Code: label.JPY, Sign: "¥", Value: 84},
		},
		{
			name:   "test_usd_rounds_up",
			code:   "USD",
			amount: 1000,
			want:   Result{Code: label.USD, Sign: "$", Value: 58},
		},
		{
			name:   "test_padded_code_passthrough",
			code:   " eur ",
			amount: 100,
			want:   Result{Code: " eur ", Sign: "$", Value: 100},
		},
		{
			name:   "test_lower_case_code_passthrough",
			code:   "usd",
			amount: 100,
			want:   Result{Code: "usd", Sign: "$", Value: 100},
		},
		{
			name:   "test_code_with_digit_passthrough",
			code:   "USD1",
			amount: 100,
			want:   Result{Code: "USD1", Sign: "$", Value: 100},
		},
		{
			name:   "test_leading_digit_passthrough",
			code:   "1JPY",
			amount: 100,
			want:   Result{Code: "1JPY", Sign: "$", Value: 100},
		},
		{
			name:   "test_punctuated_code_passthrough",
			code:   "U.S.D",
			amount: 100,
			want:   Result{Code: "U.S.D", Sign: "$", Value: 100},
		},
		{
			name:   "test_non_ascii_code_kept",
			code:   "€UR",
			amount: 100,
			want:   Result{Code: "€UR", Sign: "$", Value: 100},
		},
		{
			name:   "test_unknown_passthrough",
			code:   "GBP",
			amount: 50,
			want:   Result{Code: "GBP", Sign: "$", Value: 50},
		},
		{
			name:   "test_base_passthrough",
			code:   "MXN",
			amount: 12.5,
			want:   Result{Code: label.MXN, Sign: "$", Value: 12.5},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := c.Convert(tc.code, tc.amount)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestConverter_ConvertRoundsUp(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t)
	rates := map[string]float64{"USD": 0.05714, "EUR": 0.05208, "JPY": 8.33333}

	for code, r := range rates {
		for amount := 0.0; amount <= 5000; amount += 7.25 {
			got := c.Convert(code, amount).Value
			if got != math.Ceil(amount*r) {
				t.Fatalf("%s %v: got %v, want %v", code, amount, got, math.Ceil(amount*r))
			}

			if got < 0 || got != math.Trunc(got) {
				t.Fatalf("%s %v: value %v is not a non-negative whole number", code, amount, got)
			}
		}
	}
}

func TestConverter_SelectionChangeKeepsAmount(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t)
	const amount = 250.0

	for _, sym := range c.Exchangeable() {
		got := c.Convert(sym.String(), amount)
		r, _ := c.Rate(sym.String())
		want := Result{Code: sym, Sign: label.Currencies[sym].Sign, Value: math.Ceil(amount * r)}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch for %s (-want, +got):\n%s", sym, diff)
		}
	}
}

func TestConverter_ConvertStrict(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t)

	got, err := c.ConvertStrict("JPY", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(Result{Code: label.JPY, Sign: "¥", Value: 84}, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}

	for _, code := range []string{"GBP", "jpy", " JPY", "JPY1"} {
		if _, err := c.ConvertStrict(code, 50); !errors.Is(err, ErrCurrencyNotFound) {
			t.Errorf("%q: expected ErrCurrencyNotFound, got %v", code, err)
		}
	}
}

func TestConverter_ConvertText(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t)

	for _, code := range []string{"USD", "EUR", "JPY", "GBP"} {
		for _, text := range []string{"", "abc", "12abc", "-5", "NaN", "Inf"} {
			got := c.ConvertText(code, text)
			if diff := cmp.Diff(c.Convert(code, 0), got); diff != "" {
				t.Errorf("%s %q mismatch (-want, +got):\n%s", code, text, diff)
			}
		}
	}

	if diff := cmp.Diff(Result{Code: label.EUR, Sign: "€", Value: 6}, c.ConvertText("EUR", " 100 ")); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestConverter_Exchangeable(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t)
	want := []label.Symbol{label.USD, label.EUR, label.JPY}
	if diff := cmp.Diff(want, c.Exchangeable()); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}

	list := c.Exchangeable()
	list[0] = label.MXN
	if diff := cmp.Diff(want, c.Exchangeable()); diff != "" {
		t.Errorf("exchangeable list was modified through a copy (-want, +got):\n%s", diff)
	}

	if c.IsExchangeable("MXN") {
		t.Errorf("base currency must not be exchangeable")
	}

	for _, code := range []string{"usd", " USD", "USD1"} {
		if c.IsExchangeable(code) {
			t.Errorf("%q must not be exchangeable", code)
		}

		if _, ok := c.Rate(code); ok {
			t.Errorf("%q must not have a rate", code)
		}
	}
}

func TestNew_RetriesSource(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := provider.NewMockSource(ctrl)
	gomock.InOrder(
		source.EXPECT().FetchLatest(gomock.Any()).Return(nil, errors.New("unavailable")),
		source.EXPECT().FetchLatest(gomock.Any()).Return([]provider.ExchangeRate{
			testRate{from: label.MXN, to: label.USD, rate: 0.05},
		}, nil),
	)
	source.EXPECT().GetExchangeable().Return([]label.Symbol{label.USD}).AnyTimes()

	c := newTestConverter(t, WithSource(source), WithRetryNum(2), WithRetryDuration(time.Millisecond))

	if diff := cmp.Diff(Result{Code: label.USD, Sign: "$", Value: 5}, c.Convert("USD", 100)); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestNew_SourceFailure(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("unavailable")

	ctrl := gomock.NewController(t)
	source := provider.NewMockSource(ctrl)
	source.EXPECT().FetchLatest(gomock.Any()).Return(nil, fetchErr).Times(2)

	_, err := New(context.Background(), WithSource(source), WithRetryNum(1), WithRetryDuration(time.Millisecond))
	if !errors.Is(err, fetchErr) {
		t.Errorf("expected fetch error, got %v", err)
	}
}

func TestNew_FiltersRates(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		rates        []provider.ExchangeRate
		exchangeable []label.Symbol
		want         []label.Symbol
		wantErr      error
	}{
		{
			name: "test_foreign_base_dropped",
			rates: []provider.ExchangeRate{
				testRate{from: label.USD, to: label.EUR, rate: 0.9},
				testRate{from: label.MXN, to: label.EUR, rate: 0.05},
			},
			exchangeable: []label.Symbol{label.EUR},
			want:         []label.Symbol{label.EUR},
		},
		{
			name: "test_not_offered_dropped",
			rates: []provider.ExchangeRate{
				testRate{from: label.MXN, to: label.EUR, rate: 0.05},
				testRate{from: label.MXN, to: label.JPY, rate: 8},
			},
			exchangeable: []label.Symbol{label.JPY},
			want:         []label.Symbol{label.JPY},
		},
		{
			name: "test_display_order_follows_source",
			rates: []provider.ExchangeRate{
				testRate{from: label.MXN, to: label.JPY, rate: 8},
				testRate{from: label.MXN, to: label.USD, rate: 0.05},
			},
			exchangeable: []label.Symbol{label.USD, label.JPY, label.USD},
			want:         []label.Symbol{label.USD, label.JPY},
		},
		{
			name: "test_no_usable_rates",
			rates: []provider.ExchangeRate{
				testRate{from: label.USD, to: label.EUR, rate: 0.9},
			},
			exchangeable: []label.Symbol{label.EUR},
			wantErr:      ErrNoRates,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			source := provider.NewMockSource(ctrl)
			source.EXPECT().FetchLatest(gomock.Any()).Return(tc.rates, nil)
			source.EXPECT().GetExchangeable().Return(tc.exchangeable).AnyTimes()

			c, err := New(context.Background(), WithSource(source))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("new converter: %v", err)
			}

			if diff := cmp.Diff(tc.want, c.Exchangeable()); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}
