package verter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/samuu/verter/internal/strutil"
	"github.com/samuu/verter/label"
)

// Result is a converted amount ready to be displayed
type Result struct {
	Code  label.Symbol
	Sign  string
	Value float64
}

// String renders the output label, e.g. "EUR : € 6.0"
func (r Result) String() string {
	return fmt.Sprintf("%s : %s %s", r.Code, r.Sign, FormatValue(r.Value))
}

// FormatValue prints whole numbers with a single decimal place and keeps every other value as short as possible
func FormatValue(v float64) string {
	if !math.IsInf(v, 0) && v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseAmount reads the amount typed by the user. Empty, non-numeric, negative and non-finite input is 0
func ParseAmount(text string) float64 {
	v, err := strconv.ParseFloat(strutil.TrimControl(text), 64)
	if err != nil {
		return 0
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}

	return v
}
