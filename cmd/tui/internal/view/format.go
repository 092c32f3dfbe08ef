package view

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/report"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders a signed amount as -$12.50 or $1000.00.
func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}

	return "$" + d.StringFixed(2)
}

// FormatDate formats a calendar date as "Jan 2, 2006".
func FormatDate(d civil.Date) string {
	return d.In(time.UTC).Format("Jan 2, 2006")
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func toneColor(t report.Tone) lipgloss.Color {
	switch t {
	case report.ToneGood:
		return lipgloss.Color("46")
	case report.ToneInfo:
		return lipgloss.Color("39")
	case report.ToneWarn:
		return lipgloss.Color("214")
	case report.ToneBad:
		return lipgloss.Color("196")
	default:
		return lipgloss.Color("245")
	}
}
