// Package format renders prices and per-unit price breakdowns for display.
package format

import (
	"fmt"
	"strings"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Position places the currency symbol relative to the amount.
type Position string

const (
	PositionLeft       Position = "left"
	PositionRight      Position = "right"
	PositionLeftSpace  Position = "left_space"
	PositionRightSpace Position = "right_space"
)

// LineSeparator joins breakdown lines in markup.
const LineSeparator = "<br />"

// Options configures a Formatter.
type Options struct {
	Symbol            string
	Position          Position
	Decimals          int32
	ThousandSeparator string
	DecimalSeparator  string
}

// DefaultOptions renders "$1,234.50".
func DefaultOptions() Options {
	return Options{
		Symbol:            "$",
		Position:          PositionLeft,
		Decimals:          2,
		ThousandSeparator: ",",
		DecimalSeparator:  ".",
	}
}

// Formatter renders currency amounts. The zero value is not usable; use New.
type Formatter struct {
	opts Options
}

// New validates opts and returns a Formatter.
func New(opts Options) (*Formatter, error) {
	switch opts.Position {
	case "":
		opts.Position = PositionLeft
	case PositionLeft, PositionRight, PositionLeftSpace, PositionRightSpace:
	default:
		return nil, &model.ConfigurationError{Field: "currency_position", Message: fmt.Sprintf("unsupported position %q", opts.Position)}
	}
	if opts.Decimals < 0 {
		return nil, &model.ConfigurationError{Field: "price_decimals", Message: "must not be negative"}
	}
	if opts.DecimalSeparator == "" {
		opts.DecimalSeparator = "."
	}
	return &Formatter{opts: opts}, nil
}

// Format renders amount rounded half away from zero to the configured decimals.
func (f *Formatter) Format(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(f.opts.Decimals)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if neg && !amount.Round(f.opts.Decimals).IsZero() {
		b.WriteByte('-')
	}

	number := groupThousands(intPart, f.opts.ThousandSeparator)
	if fracPart != "" {
		number += f.opts.DecimalSeparator + fracPart
	}

	switch f.opts.Position {
	case PositionRight:
		b.WriteString(number + f.opts.Symbol)
	case PositionLeftSpace:
		b.WriteString(f.opts.Symbol + " " + number)
	case PositionRightSpace:
		b.WriteString(number + " " + f.opts.Symbol)
	default:
		b.WriteString(f.opts.Symbol + number)
	}
	return b.String()
}

func groupThousands(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// BreakdownLine is one "price × count" entry.
type BreakdownLine struct {
	Price decimal.Decimal `json:"price" swaggertype:"string"`
	Count int             `json:"count"`
}

// Breakdown groups an adjusted item's discounted units by distinct price, in the
// order each price first appears, followed by the full-priced remainder.
// Items without discounted units yield nil.
func Breakdown(item model.PricedItem) []BreakdownLine {
	if !item.Adjusted || item.DiscountedUnits == 0 {
		return nil
	}

	var lines []BreakdownLine
	for _, p := range item.AdjustedPrices[:item.DiscountedUnits] {
		found := false
		for i := range lines {
			if lines[i].Price.Equal(p) {
				lines[i].Count++
				found = true
				break
			}
		}
		if !found {
			lines = append(lines, BreakdownLine{Price: p, Count: 1})
		}
	}

	if remaining := item.RemainingUnits(); remaining > 0 {
		lines = append(lines, BreakdownLine{Price: item.BasePrice, Count: remaining})
	}
	return lines
}

// Breakdown renders each breakdown line as "price × count".
func (f *Formatter) Breakdown(item model.PricedItem) []string {
	lines := Breakdown(item)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s × %d", f.Format(l.Price), l.Count)
	}
	return out
}

// BreakdownHTML joins the rendered breakdown with LineSeparator.
func (f *Formatter) BreakdownHTML(item model.PricedItem) string {
	return strings.Join(f.Breakdown(item), LineSeparator)
}
