package card

import "strings"

// Network identifies a card's payment network brand.
type Network string

const (
	NetworkVisa       Network = "visa"
	NetworkMastercard Network = "mastercard"
	NetworkAmex       Network = "amex"
	NetworkDiscover   Network = "discover"
	NetworkJCB        Network = "jcb"
	NetworkDiners     Network = "diners"
	NetworkUnknown    Network = "unknown"
)

// DetectNetwork classifies a card number (or its leading digits) into a
// network brand via issuer prefix ranges:
//
//	Visa        4
//	Mastercard  51-55, 2221-2720
//	Amex        34, 37
//	Discover    6011, 622126-622925, 644-649, 65
//	JCB         2131, 1800, 35
//	Diners      300-305, 36, 38
//
// Separators (spaces, dashes and anything else non-numeric) are
// stripped before matching, so formatted input like "4111-1111" still
// classifies. Input with no digits at all yields NetworkUnknown.
// Detection is pure and stable; it is used only for cosmetic badge
// selection, so no length or checksum validation happens here.
func DetectNetwork(number string) Network {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if digits == "" {
		return NetworkUnknown
	}

	switch {
	case hasPrefix(digits, "4"):
		return NetworkVisa
	case inRange(digits, 2, 51, 55), inRange(digits, 4, 2221, 2720):
		return NetworkMastercard
	case hasPrefix(digits, "34", "37"):
		return NetworkAmex
	case hasPrefix(digits, "6011", "65"),
		inRange(digits, 6, 622126, 622925),
		inRange(digits, 3, 644, 649):
		return NetworkDiscover
	case hasPrefix(digits, "2131", "1800", "35"):
		return NetworkJCB
	case inRange(digits, 3, 300, 305), hasPrefix(digits, "36", "38"):
		return NetworkDiners
	default:
		return NetworkUnknown
	}
}

func hasPrefix(digits string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(digits, p) {
			return true
		}
	}
	return false
}

// inRange reports whether the first width digits form a number within
// [lo, hi]. Numbers shorter than width never match.
func inRange(digits string, width, lo, hi int) bool {
	if len(digits) < width {
		return false
	}
	n := 0
	for _, r := range digits[:width] {
		n = n*10 + int(r-'0')
	}
	return n >= lo && n <= hi
}
