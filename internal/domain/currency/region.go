package currency

import "context"

// Detector resolves the user's region for currency auto-detection.
// Implementations live at the platform boundary (geolocation HTTP
// client in production, fakes in tests); every failure path falls back
// to the US region.
type Detector interface {
	DetectRegion(ctx context.Context) (string, error)
}

var countryToCurrency = map[string]string{
	"US": "USD",
	"JP": "JPY",
	"DE": "EUR",
	"FR": "EUR",
	"IT": "EUR",
	"ES": "EUR",
	"NL": "EUR",
	"BE": "EUR",
	"AT": "EUR",
	"PT": "EUR",
	"IE": "EUR",
	"GB": "GBP",
	"CA": "CAD",
	"AU": "AUD",
	"CN": "CNY",
	"IN": "INR",
	"KR": "KRW",
	"BR": "BRL",
	"MX": "MXN",
	"CH": "CHF",
	"SG": "SGD",
	"HK": "HKD",
	"NZ": "NZD",
	"SE": "SEK",
	"NO": "NOK",
	"DK": "DKK",
	"PL": "PLN",
	"TH": "THB",
	"ZA": "ZAR",
	"BD": "BDT",
}

// ForCountry maps an ISO country code to its currency, defaulting to
// USD for unknown countries.
func ForCountry(countryCode string) string {
	if code, ok := countryToCurrency[countryCode]; ok {
		return code
	}
	return DefaultCode
}

// Detect resolves the user's currency from their region. Any detector
// failure yields the default.
func Detect(ctx context.Context, d Detector) string {
	if d == nil {
		return DefaultCode
	}
	country, err := d.DetectRegion(ctx)
	if err != nil {
		return DefaultCode
	}
	return ForCountry(country)
}
