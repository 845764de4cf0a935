// Package models defines the core domain models for MatrixView.
//
// # Models
//
//   - TableRow: one item/amount line of an editable table
//   - CalculationConfig: the aggregation mode applied to a table
//   - Note: a saved table with its frozen total and optional split
//   - Split: even division of a note's total across people
//
// # Design Principles
//
// 1. **Text amounts**: TableRow.Amount stays a string so partial input
// survives editing; it is parsed on demand by the calculator package
// 2. **Frozen results**: Note.Total and Note.Split are snapshots taken at
// save time and never recomputed
// 3. **Stable wire shape**: JSON field names match the persisted collection
// (`id`, `title`, `createdAt`, `table`, `total`, `split`)
package models
