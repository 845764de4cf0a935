// Package api defines the NoteService RPC surface: procedure names, message
// types, the JSON codec, the handler constructor and a typed client.
package api

import "github.com/mmynk/matrixview/internal/models"

// CalculateTotalRequest is a live-total request for an unsaved table.
type CalculateTotalRequest struct {
	Rows        []models.TableRow        `json:"rows"`
	Calculation models.CalculationConfig `json:"calculation"`
	People      int                      `json:"people,omitempty"`
}

// CalculateTotalResponse carries the derived value of a table.
type CalculateTotalResponse struct {
	Total     float64       `json:"total"`
	Formatted string        `json:"formatted"`
	Label     string        `json:"label"`
	Split     *models.Split `json:"split,omitempty"`

	// Breakdown is filled for the percentage calculation only.
	Breakdown []Share `json:"breakdown,omitempty"`
}

// Share is one row's part of the table sum.
type Share struct {
	RowID   string  `json:"rowId"`
	Item    string  `json:"item"`
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

type CreateNoteRequest struct {
	Title       string                   `json:"title"`
	Rows        []models.TableRow        `json:"rows"`
	Calculation models.CalculationConfig `json:"calculation"`
	People      int                      `json:"people,omitempty"`
}

type CreateNoteResponse struct {
	Note models.Note `json:"note"`
}

type GetNoteRequest struct {
	ID string `json:"id"`
}

type GetNoteResponse struct {
	Note models.Note `json:"note"`
}

type ListNotesRequest struct{}

// ListNotesResponse lists notes newest first.
type ListNotesResponse struct {
	Notes []models.Note `json:"notes"`
}

type DeleteNoteRequest struct {
	ID string `json:"id"`
}

type DeleteNoteResponse struct{}

type ShareNoteRequest struct {
	ID        string `json:"id"`
	TotalOnly bool   `json:"totalOnly,omitempty"`
}

type ShareNoteResponse struct {
	Text string `json:"text"`
}

// NoteID returns the note the request targets.
func (r *GetNoteRequest) NoteID() string { return r.ID }

// NoteID returns the note the request targets.
func (r *DeleteNoteRequest) NoteID() string { return r.ID }

// NoteID returns the note the request targets.
func (r *ShareNoteRequest) NoteID() string { return r.ID }
