package currency

import (
	"sort"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCode is always available and cannot be removed.
const DefaultCode = "USD"

// Info describes one supported currency.
type Info struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
}

var currencies = map[string]Info{
	"USD": {"USD", "$", "US Dollar", "en-US"},
	"JPY": {"JPY", "¥", "Japanese Yen", "ja-JP"},
	"EUR": {"EUR", "€", "Euro", "de-DE"},
	"GBP": {"GBP", "£", "British Pound", "en-GB"},
	"CAD": {"CAD", "C$", "Canadian Dollar", "en-CA"},
	"AUD": {"AUD", "A$", "Australian Dollar", "en-AU"},
	"CNY": {"CNY", "¥", "Chinese Yuan", "zh-CN"},
	"INR": {"INR", "₹", "Indian Rupee", "en-IN"},
	"KRW": {"KRW", "₩", "South Korean Won", "ko-KR"},
	"BRL": {"BRL", "R$", "Brazilian Real", "pt-BR"},
	"MXN": {"MXN", "MX$", "Mexican Peso", "es-MX"},
	"CHF": {"CHF", "CHF", "Swiss Franc", "de-CH"},
	"SGD": {"SGD", "S$", "Singapore Dollar", "en-SG"},
	"HKD": {"HKD", "HK$", "Hong Kong Dollar", "zh-HK"},
	"NZD": {"NZD", "NZ$", "New Zealand Dollar", "en-NZ"},
	"SEK": {"SEK", "kr", "Swedish Krona", "sv-SE"},
	"NOK": {"NOK", "kr", "Norwegian Krone", "nb-NO"},
	"DKK": {"DKK", "kr", "Danish Krone", "da-DK"},
	"PLN": {"PLN", "zł", "Polish Złoty", "pl-PL"},
	"THB": {"THB", "฿", "Thai Baht", "th-TH"},
	"ZAR": {"ZAR", "R", "South African Rand", "en-ZA"},
	"BDT": {"BDT", "৳", "Bangladeshi Taka", "bn-BD"},
}

// Currencies with no conventional fractional unit in display.
var zeroFraction = map[string]bool{
	"JPY": true,
	"KRW": true,
}

// Lookup returns the Info for a currency code and whether it is known.
func Lookup(code string) (Info, bool) {
	info, ok := currencies[code]
	return info, ok
}

// All returns every supported currency, sorted by code.
func All() []Info {
	infos := make([]Info, 0, len(currencies))
	for _, info := range currencies {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}

// Format renders an amount in the given currency using the currency's
// conventional locale and fractional digit count (zero for JPY/KRW, two
// otherwise). Unrecognized codes fall back to a plain symbol + two
// decimals rendering. Format is total: it never fails, for any finite
// amount and any code.
func Format(amount float64, code string) string {
	info, ok := currencies[code]
	if !ok {
		return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
	}

	digits := 2
	if zeroFraction[code] {
		digits = 0
	}

	tag, err := language.Parse(info.Locale)
	if err != nil {
		return info.Symbol + strconv.FormatFloat(amount, 'f', digits, 64)
	}

	p := message.NewPrinter(tag)
	return p.Sprintf("%s%v", info.Symbol, number.Decimal(amount,
		number.MinFractionDigits(digits),
		number.MaxFractionDigits(digits),
	))
}
