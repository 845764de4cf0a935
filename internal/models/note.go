package models

import "slices"

// TableRow represents one line of the editable table.
type TableRow struct {
	// ID is the opaque identifier of the row. It never changes once assigned.
	ID string `json:"id"`

	// Item is the free-text label of the row. May be empty.
	Item string `json:"item"`

	// Amount is the raw text of the amount field. It is kept as typed
	// (possibly partial or invalid) and parsed when aggregated.
	Amount string `json:"amount"`
}

// Note represents a saved table.
type Note struct {
	// ID is the unique identifier assigned at save time.
	ID string `json:"id"`

	// Title is the display name. Never empty for notes created by a Draft.
	Title string `json:"title"`

	// CreatedAt is when the note was first started. Never mutated.
	CreatedAt Timestamp `json:"createdAt"`

	// Table holds the non-blank rows at save time.
	Table []TableRow `json:"table"`

	// Total is the result of the calculation applied to Table at save time.
	Total float64 `json:"total"`

	// Split is present only when a people count above zero was given.
	Split *Split `json:"split,omitempty"`
}

// Split represents an even division of a total.
type Split struct {
	People    int     `json:"people"`
	PerPerson float64 `json:"perPerson"`
}

// SortNewestFirst orders notes by CreatedAt, newest first. Notes created at
// the same instant keep their relative order.
func SortNewestFirst(notes []Note) {
	slices.SortStableFunc(notes, func(a, b Note) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})
}
