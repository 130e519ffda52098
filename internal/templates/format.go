package templates

import (
	"fmt"
	"strings"
)

// Price formats amounts (in minor units) with the given ISO currency code.
func Price(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	major, minor := amount/100, amount%100

	switch code := strings.ToUpper(strings.TrimSpace(currency)); code {
	case "SEK", "NOK", "DKK":
		return fmt.Sprintf("%s%d,%02d kr", sign, major, minor)
	case "EUR":
		return fmt.Sprintf("%s€%d.%02d", sign, major, minor)
	case "USD":
		return fmt.Sprintf("%s$%d.%02d", sign, major, minor)
	case "":
		return fmt.Sprintf("%s%d.%02d", sign, major, minor)
	default:
		return fmt.Sprintf("%s%s %d.%02d", sign, code, major, minor)
	}
}
