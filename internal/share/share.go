// Package share renders notes as plain text for hand-off to a platform share
// mechanism (clipboard, share sheet, chat).
package share

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/matrixview/internal/calculator"
	"github.com/mmynk/matrixview/internal/models"
)

// DefaultCurrency is the symbol prefixed to amounts.
const DefaultCurrency = "₹"

// Formatter renders notes with a currency symbol and time zone.
type Formatter struct {
	Currency string
	Location *time.Location
}

// NewFormatter creates a Formatter. An empty currency falls back to
// DefaultCurrency and a nil location to the local time zone.
func NewFormatter(currency string, loc *time.Location) *Formatter {
	if currency == "" {
		currency = DefaultCurrency
	}
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{Currency: currency, Location: loc}
}

// Note renders the full note:
//
//	Lunch
//	1/2/2024 01:30 PM
//
//	Pizza: ₹12.50
//	Drinks: ₹7.50
//
//	Total: ₹20.00
//	Split between 2 people: ₹10.00 each
//
// Rows are listed as typed; rows with neither item nor amount are skipped.
func (f *Formatter) Note(note models.Note) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", note.Title, f.DateTime(note))
	for _, row := range note.Table {
		if row.Item == "" && row.Amount == "" {
			continue
		}
		item := row.Item
		if item == "" {
			item = "Item"
		}
		amount := row.Amount
		if amount == "" {
			amount = "0.00"
		}
		fmt.Fprintf(&b, "%s: %s%s\n", item, f.Currency, amount)
	}

	fmt.Fprintf(&b, "\nTotal: %s", f.Money(note.Total))
	if note.Split != nil {
		fmt.Fprintf(&b, "\nSplit between %d people: %s each", note.Split.People, f.Money(note.Split.PerPerson))
	}

	return b.String()
}

// TotalOnly renders just the total and, if present, the per-person split.
func (f *Formatter) TotalOnly(note models.Note) string {
	text := "Total: " + f.Money(note.Total)
	if note.Split != nil {
		text += fmt.Sprintf("\nPer person: %s (%d people)", f.Money(note.Split.PerPerson), note.Split.People)
	}
	return text
}

// Summary renders the short listing form of a note.
func (f *Formatter) Summary(note models.Note) string {
	title := note.Title
	if title == "" {
		title = "Untitled Note"
	}

	text := fmt.Sprintf("%s  %s\n%s", title, f.Money(note.Total), f.DateTime(note))
	if note.Split != nil {
		text += fmt.Sprintf("\nSplit: %s each (%d people)", f.Money(note.Split.PerPerson), note.Split.People)
	}
	return text
}

// Money renders v with the currency symbol and two decimals.
func (f *Formatter) Money(v float64) string {
	return f.Currency + calculator.FormatCurrency(v)
}

// DateTime renders the note's creation time in the formatter's time zone.
func (f *Formatter) DateTime(note models.Note) string {
	return calculator.FormatDateTime(note.CreatedAt.Time, f.Location)
}
