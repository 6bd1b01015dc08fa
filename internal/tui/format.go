package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// moneyFormatter renders amounts with thousands grouping and two decimals.
type moneyFormatter struct {
	symbol  string
	printer *message.Printer
}

func newMoneyFormatter(symbol string) moneyFormatter {
	return moneyFormatter{symbol: symbol, printer: message.NewPrinter(language.English)}
}

func (f moneyFormatter) format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + f.symbol + f.group(whole) + "." + frac
}

// group inserts thousands separators into a run of digits.
func (f moneyFormatter) group(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return f.printer.Sprint(number.Decimal(n))
	}
	// wider than int64
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// cell fits s into exactly width columns.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// cellRight is cell with the text pushed to the right edge.
func cellRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s = strings.Repeat(" ", width-w) + s
	}
	return s
}
