package screen

import (
	"fmt"
	"io"
	"strings"

	"github.com/samuu/verter"
	"github.com/samuu/verter/internal/strutil"
	"github.com/samuu/verter/label"
	"github.com/samuu/verter/locale"
)

// QuitCommand ends an interactive session
const QuitCommand = ":q"

// Converter is the part of verter.Converter the screen depends on
type Converter interface {
	ConvertText(code, text string) verter.Result
	Exchangeable() []label.Symbol
	IsExchangeable(code string) bool
}

// Choice is one entry of the currency selector
type Choice struct {
	Code     label.Symbol
	Selected bool
}

// View is everything drawn for one state of the screen
type View struct {
	Title         string
	Welcome       string
	QuantityLabel string
	Amount        string
	Output        string
	ConvertTo     string
	Choices       []Choice
}

type Option func(*Screen)

// WithCurrency preselects a currency
func WithCurrency(code label.Symbol) Option {
	return func(s *Screen) {
		s.currency = code
	}
}

// WithAmount prefills the amount field
func WithAmount(text string) Option {
	return func(s *Screen) {
		s.amount = text
	}
}

// Screen holds the two pieces of user state, the selected currency and the amount text, and
// recomputes the whole view after every change
type Screen struct {
	conv     Converter
	bundle   locale.Bundle
	currency label.Symbol
	amount   string
}

// New returns a screen with nothing selected. Until the user picks a currency the output shows
// the pesos unconverted
func New(conv Converter, bundle locale.Bundle, opts ...Option) *Screen {
	s := &Screen{
		conv:     conv,
		bundle:   bundle,
		currency: verter.Base,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetAmount replaces the amount text
func (s *Screen) SetAmount(text string) View {
	s.amount = text
	return s.View()
}

// Select changes the target currency. Input is read leniently (" eur " picks EUR), codes the
// converter cannot offer are ignored
func (s *Screen) Select(code string) View {
	if sym := strutil.NormalizeCode(code); s.conv.IsExchangeable(sym) {
		s.currency = label.Symbol(sym)
	}

	return s.View()
}

// Handle applies one line of user input. It reports false when the user asked to quit
func (s *Screen) Handle(input string) (View, bool) {
	input = strutil.TrimControl(input)
	if input == QuitCommand {
		return s.View(), false
	}

	if sym := strutil.NormalizeCode(input); sym == strings.ToUpper(input) && s.conv.IsExchangeable(sym) {
		return s.Select(input), true
	}

	return s.SetAmount(input), true
}

func (s *Screen) Currency() label.Symbol {
	return s.currency
}

func (s *Screen) Amount() string {
	return s.amount
}

func (s *Screen) View() View {
	symbols := s.conv.Exchangeable()
	choices := make([]Choice, 0, len(symbols))
	for _, sym := range symbols {
		choices = append(choices, Choice{Code: sym, Selected: sym == s.currency})
	}

	return View{
		Title:         s.bundle.AppName,
		Welcome:       s.bundle.Welcome,
		QuantityLabel: s.bundle.Quantity,
		Amount:        s.amount,
		Output:        s.conv.ConvertText(s.currency.String(), s.amount).String(),
		ConvertTo:     s.bundle.ConvertTo,
		Choices:       choices,
	}
}

// Render writes the view as plain text
func Render(w io.Writer, v View) error {
	choices := make([]string, 0, len(v.Choices))
	for _, c := range v.Choices {
		mark := " "
		if c.Selected {
			mark = "*"
		}
		choices = append(choices, fmt.Sprintf("(%s) %s", mark, c.Code))
	}

	if _, err := fmt.Fprintf(
		w,
		"== %s ==\n%s\n\n%s: %s\n%s\n\n%s\n%s\n",
		v.Title,
		v.Welcome,
		v.QuantityLabel,
		v.Amount,
		v.Output,
		v.ConvertTo,
		strings.Join(choices, "  "),
	); err != nil {
		return fmt.Errorf("render view: %w", err)
	}

	return nil
}
