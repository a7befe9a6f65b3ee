package payroll

import (
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders a currency amount for display. NPR gets a literal
// "Rs." prefix with digit grouping, the primary deployment convention,
// instead of the generic international formatter. Other codes go through
// the ISO currency tables; an unknown code falls back to the bare number
// rather than failing the render.
func FormatAmount(code string, value float64) string {
	grouped := printer.Sprintf("%v", number.Decimal(value,
		number.MaxFractionDigits(2), number.MinFractionDigits(2)))

	if strings.EqualFold(strings.TrimSpace(code), "NPR") {
		return "Rs. " + grouped
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return strconv.FormatFloat(value, 'f', 2, 64)
	}
	return printer.Sprintf("%v", currency.Symbol(unit.Amount(value)))
}
