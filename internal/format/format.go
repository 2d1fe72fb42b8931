// Package format renders computation results for display. Rounding
// happens here and nowhere else: the core returns full-precision
// fractions, presentation trims them.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/HarshMaht02004/wacc-backend/pkg/config"
)

// Formatter renders rates and currency amounts using a configured
// locale for digit grouping.
type Formatter struct {
	printer *message.Printer
	scale   float64
}

// New creates a Formatter from display config. An unparseable locale
// tag falls back to en-IN.
func New(cfg config.DisplayConfig) *Formatter {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.MustParse("en-IN")
	}

	scale := cfg.CurrencyScale
	if scale <= 0 {
		scale = 1e7
	}

	return &Formatter{
		printer: message.NewPrinter(tag),
		scale:   scale,
	}
}

// Percent renders a decimal fraction as a percentage with 2 decimal
// places: 0.1035 -> "10.35%".
func (f *Formatter) Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// Currency renders a base-unit amount with locale-aware thousands
// separators and no decimal places.
func (f *Formatter) Currency(v float64) string {
	return f.printer.Sprint(number.Decimal(v,
		number.MaxFractionDigits(0),
	))
}

// Crore renders a base-unit amount in the large display unit with up
// to 2 decimal places: 2_000_000_000 -> "200 cr".
func (f *Formatter) Crore(v float64) string {
	return f.printer.Sprint(number.Decimal(v/f.scale,
		number.MaxFractionDigits(2),
	)) + " cr"
}
