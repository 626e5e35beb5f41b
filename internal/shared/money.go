package shared

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var kesPrinter = message.NewPrinter(language.MustParse("en-KE"))

// FormatKES renders an amount as a KES display string with thousands
// separators. Whole amounts drop the decimal part.
func FormatKES(amount float64) string {
	if amount == math.Trunc(amount) {
		return kesPrinter.Sprintf("KES %d", int64(amount))
	}
	return kesPrinter.Sprintf("KES %.2f", amount)
}
