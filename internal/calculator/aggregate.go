// Package calculator implements the aggregation engine: it turns a table of
// free-text rows and a calculation config into a single derived value.
//
// Every function here is pure and safe for concurrent use.
package calculator

import (
	"github.com/mmynk/matrixview/internal/models"
)

// Share represents one row's part of the table sum, used to render the
// percentage breakdown.
type Share struct {
	RowID   string
	Item    string
	Amount  float64
	Percent float64
}

// Aggregate computes the derived value of rows under config.
//
// Amounts that parse to 0 (including unparsable text) are dropped before
// aggregating, so they count towards neither the sum, the average nor the
// count. An empty result set yields 0 for every type.
//
//   - sum, percentage: sum of the amounts
//   - subtract: config baseline minus the sum
//   - average: mean of the amounts, rounded to cents
//   - count: number of amounts
//
// Unknown types are treated as sum.
func Aggregate(rows []models.TableRow, config models.CalculationConfig) float64 {
	amounts := nonZeroAmounts(rows)
	if len(amounts) == 0 {
		return 0
	}

	switch config.Type {
	case models.CalculationSubtract:
		return config.Baseline() - sum(amounts)
	case models.CalculationAverage:
		return RoundCents(sum(amounts) / float64(len(amounts)))
	case models.CalculationCount:
		return float64(len(amounts))
	default:
		// percentage is a display mode; its value is the plain sum
		return sum(amounts)
	}
}

// Total is the plain sum of all row amounts.
func Total(rows []models.TableRow) float64 {
	return sum(nonZeroAmounts(rows))
}

// PercentageBreakdown returns each non-zero row's share of the sum in percent,
// rounded to cents. Shares are 0 when the amounts cancel out.
func PercentageBreakdown(rows []models.TableRow) []Share {
	total := Total(rows)

	var shares []Share
	for _, row := range rows {
		amount := ParseAmount(row.Amount)
		if amount == 0 {
			continue
		}

		share := Share{
			RowID:  row.ID,
			Item:   row.Item,
			Amount: amount,
		}
		if total != 0 {
			share.Percent = RoundCents(amount / total * 100)
		}
		shares = append(shares, share)
	}
	return shares
}

func nonZeroAmounts(rows []models.TableRow) []float64 {
	amounts := make([]float64, 0, len(rows))
	for _, row := range rows {
		if amount := ParseAmount(row.Amount); amount != 0 {
			amounts = append(amounts, amount)
		}
	}
	return amounts
}

func sum(amounts []float64) float64 {
	total := 0.0
	for _, amount := range amounts {
		total += amount
	}
	return total
}
