// Package draft holds the transient editing state of a note before it is
// saved: the rows being typed, the selected calculation and the split.
package draft

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/matrixview/internal/calculator"
	"github.com/mmynk/matrixview/internal/models"
)

// DefaultRows is the number of blank rows a new draft starts with.
const DefaultRows = 10

var (
	ErrMissingTitle = errors.New("please enter a title for your note")
	ErrEmptyTable   = errors.New("please add at least one item to save the note")
	ErrLastRow      = errors.New("at least one row is required")
	ErrRowNotFound  = errors.New("row not found")
)

// Draft is a note being edited. It always holds at least one row.
type Draft struct {
	Title       string
	CreatedAt   time.Time
	Calculation models.CalculationConfig
	People      int

	rows []models.TableRow
}

// New creates a draft with DefaultRows blank rows and the sum calculation.
func New(now time.Time) *Draft {
	d := &Draft{CreatedAt: now}
	d.Clear()
	return d
}

// FromRows creates a draft holding the given rows. Rows without an ID get one.
// An empty rows slice yields a single blank row.
func FromRows(now time.Time, rows []models.TableRow) *Draft {
	d := &Draft{
		CreatedAt:   now,
		Calculation: models.CalculationConfig{Type: models.CalculationSum},
	}
	for _, row := range rows {
		if row.ID == "" {
			row.ID = calculator.GenerateID()
		}
		d.rows = append(d.rows, row)
	}
	if len(d.rows) == 0 {
		d.rows = append(d.rows, blankRow())
	}
	return d
}

// Rows returns a copy of the current rows.
func (d *Draft) Rows() []models.TableRow {
	rows := make([]models.TableRow, len(d.rows))
	copy(rows, d.rows)
	return rows
}

// AddRow appends a blank row and returns it.
func (d *Draft) AddRow() models.TableRow {
	row := blankRow()
	d.rows = append(d.rows, row)
	return row
}

// SetItem replaces the item text of the row with the given ID.
func (d *Draft) SetItem(rowID, item string) error {
	i, err := d.index(rowID)
	if err != nil {
		return err
	}
	d.rows[i].Item = item
	return nil
}

// SetAmount replaces the amount text of the row with the given ID.
func (d *Draft) SetAmount(rowID, amount string) error {
	i, err := d.index(rowID)
	if err != nil {
		return err
	}
	d.rows[i].Amount = amount
	return nil
}

// DeleteRow removes the row with the given ID. Deleting the last remaining
// row is rejected with ErrLastRow.
func (d *Draft) DeleteRow(rowID string) error {
	i, err := d.index(rowID)
	if err != nil {
		return err
	}
	if len(d.rows) <= 1 {
		return ErrLastRow
	}
	d.rows = append(d.rows[:i], d.rows[i+1:]...)
	return nil
}

// Clear resets the title, rows, calculation and split.
func (d *Draft) Clear() {
	d.Title = ""
	d.People = 0
	d.Calculation = models.CalculationConfig{Type: models.CalculationSum}
	d.rows = make([]models.TableRow, 0, DefaultRows)
	for i := 0; i < DefaultRows; i++ {
		d.rows = append(d.rows, blankRow())
	}
}

// Total is the live result of the calculation over the current rows.
func (d *Draft) Total() float64 {
	return calculator.Aggregate(d.rows, d.Calculation)
}

// Split returns the per-person split of the live total, or nil when no
// people count was given.
func (d *Draft) Split() *models.Split {
	return splitFor(d.Total(), d.People)
}

// Build validates the draft and turns it into a note.
//
// The title is trimmed and must not be empty. Rows whose item and amount are
// both blank are dropped, and at least one row must remain. The total is
// computed over the remaining rows with the current calculation.
func (d *Draft) Build() (models.Note, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return models.Note{}, ErrMissingTitle
	}

	table := FilterBlank(d.rows)
	if len(table) == 0 {
		return models.Note{}, ErrEmptyTable
	}

	total := calculator.Aggregate(table, d.Calculation)
	return models.Note{
		ID:        calculator.GenerateID(),
		Title:     title,
		CreatedAt: models.NewTimestamp(d.CreatedAt),
		Table:     table,
		Total:     total,
		Split:     splitFor(total, d.People),
	}, nil
}

// FilterBlank returns the rows whose item or amount has non-space text.
func FilterBlank(rows []models.TableRow) []models.TableRow {
	filtered := make([]models.TableRow, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Item) != "" || strings.TrimSpace(row.Amount) != "" {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func (d *Draft) index(rowID string) (int, error) {
	for i, row := range d.rows {
		if row.ID == rowID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrRowNotFound, rowID)
}

func splitFor(total float64, people int) *models.Split {
	if people <= 0 {
		return nil
	}
	return &models.Split{
		People:    people,
		PerPerson: calculator.SplitPerPerson(total, people),
	}
}

func blankRow() models.TableRow {
	return models.TableRow{ID: calculator.GenerateID()}
}
