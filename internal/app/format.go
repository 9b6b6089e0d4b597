package app

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders a USD amount with digit grouping, e.g. 1800 -> "$1,800".
func FormatPrice(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return "$" + printer.Sprintf("%d", int64(v))
	}
	return "$" + printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// FormatRating renders the rating as stored: 4.8 -> "4.8", 0 -> "0".
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
