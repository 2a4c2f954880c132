package label

// Symbol is the ISO 4217 alphabetic code of a currency
type Symbol string

func (s Symbol) String() string {
	return string(s)
}

const (
	MXN Symbol = "MXN"
	USD Symbol = "USD"
	EUR Symbol = "EUR"
	JPY Symbol = "JPY"
)

// Currency describes a currency known to the converter
type Currency struct {
	Number       int
	MinRateUnits int
	Name         string
	Symbol       Symbol
	Sign         string
}

var Currencies = map[Symbol]Currency{
	MXN: {Number: 484, MinRateUnits: 2, Name: "Mexican Peso", Symbol: MXN, Sign: "$"},
	USD: {Number: 840, MinRateUnits: 2, Name: "US Dollar", Symbol: USD, Sign: "$"},
	EUR: {Number: 978, MinRateUnits: 2, Name: "Euro", Symbol: EUR, Sign: "€"},
	JPY: {Number: 392, MinRateUnits: 0, Name: "Japanese Yen", Symbol: JPY, Sign: "¥"},
}

// Lookup returns the currency for the symbol
func Lookup(s Symbol) (Currency, bool) {
	c, ok := Currencies[s]
	return c, ok
}
