package display

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Coins renders an amount with digit grouping, e.g. "1,250 coins".
func Coins(n int) string {
	if n == 1 || n == -1 {
		return printer.Sprintf("%d coin", n)
	}
	return printer.Sprintf("%d coins", n)
}

// Percent renders a 0-1 ratio as a whole percentage.
func Percent(ratio float64) string {
	return printer.Sprintf("%d%%", int(math.Round(ratio*100)))
}

// Seconds renders a remaining duration rounded up to whole seconds.
func Seconds(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	secs := int(math.Ceil(d.Seconds()))
	if secs == 1 {
		return "1 second"
	}
	return printer.Sprintf("%d seconds", secs)
}
