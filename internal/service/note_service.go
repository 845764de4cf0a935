package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/matrixview/internal/api"
	"github.com/mmynk/matrixview/internal/calculator"
	"github.com/mmynk/matrixview/internal/draft"
	"github.com/mmynk/matrixview/internal/models"
	"github.com/mmynk/matrixview/internal/repository"
	"github.com/mmynk/matrixview/internal/share"
)

var _ api.NoteServiceHandler = (*NoteService)(nil)

// NoteService implements the Connect NoteService
type NoteService struct {
	repo      *repository.Repository
	formatter *share.Formatter
	now       func() time.Time
}

// NewNoteService creates a new NoteService over the given repository.
func NewNoteService(repo *repository.Repository, formatter *share.Formatter) *NoteService {
	return &NoteService{
		repo:      repo,
		formatter: formatter,
		now:       time.Now,
	}
}

// CalculateTotal computes the live total of an unsaved table.
func (s *NoteService) CalculateTotal(ctx context.Context, req *connect.Request[api.CalculateTotalRequest]) (*connect.Response[api.CalculateTotalResponse], error) {
	d := draft.FromRows(s.now(), req.Msg.Rows)
	d.Calculation = req.Msg.Calculation
	d.People = req.Msg.People

	total := d.Total()
	resp := &api.CalculateTotalResponse{
		Total:     total,
		Formatted: calculator.FormatCurrency(total),
		Label:     d.Calculation.Type.Label(),
		Split:     d.Split(),
	}

	if d.Calculation.Type == models.CalculationPercentage {
		for _, part := range calculator.PercentageBreakdown(d.Rows()) {
			resp.Breakdown = append(resp.Breakdown, api.Share{
				RowID:   part.RowID,
				Item:    part.Item,
				Amount:  part.Amount,
				Percent: part.Percent,
			})
		}
	}

	slog.Debug("Calculated total",
		"type", d.Calculation.Type,
		"rows", len(req.Msg.Rows),
		"total", total,
	)

	return connect.NewResponse(resp), nil
}

// CreateNote validates a table, freezes its total and split, and saves it
// in front of the existing notes.
func (s *NoteService) CreateNote(ctx context.Context, req *connect.Request[api.CreateNoteRequest]) (*connect.Response[api.CreateNoteResponse], error) {
	d := draft.FromRows(s.now(), req.Msg.Rows)
	d.Title = req.Msg.Title
	d.Calculation = req.Msg.Calculation
	d.People = req.Msg.People

	note, err := d.Build()
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.repo.Add(ctx, note); err != nil {
		slog.Error("CreateNote failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Note created", "note_id", note.ID, "rows", len(note.Table), "total", note.Total)

	return connect.NewResponse(&api.CreateNoteResponse{Note: note}), nil
}

// GetNote retrieves a note by ID.
func (s *NoteService) GetNote(ctx context.Context, req *connect.Request[api.GetNoteRequest]) (*connect.Response[api.GetNoteResponse], error) {
	note, err := s.lookup(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetNoteResponse{Note: note}), nil
}

// ListNotes returns every saved note, newest first. An unreadable store
// lists as empty.
func (s *NoteService) ListNotes(ctx context.Context, req *connect.Request[api.ListNotesRequest]) (*connect.Response[api.ListNotesResponse], error) {
	notes := s.repo.LoadAll(ctx)
	models.SortNewestFirst(notes)

	return connect.NewResponse(&api.ListNotesResponse{Notes: notes}), nil
}

// DeleteNote removes a note. Deleting an unknown ID succeeds.
func (s *NoteService) DeleteNote(ctx context.Context, req *connect.Request[api.DeleteNoteRequest]) (*connect.Response[api.DeleteNoteResponse], error) {
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("id required"))
	}

	if err := s.repo.Delete(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteNote failed", "note_id", req.Msg.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.DeleteNoteResponse{}), nil
}

// ShareNote renders a note as shareable text.
func (s *NoteService) ShareNote(ctx context.Context, req *connect.Request[api.ShareNoteRequest]) (*connect.Response[api.ShareNoteResponse], error) {
	note, err := s.lookup(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}

	text := s.formatter.Note(note)
	if req.Msg.TotalOnly {
		text = s.formatter.TotalOnly(note)
	}

	return connect.NewResponse(&api.ShareNoteResponse{Text: text}), nil
}

func (s *NoteService) lookup(ctx context.Context, noteID string) (models.Note, error) {
	if noteID == "" {
		return models.Note{}, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("id required"))
	}

	note, err := s.repo.Get(ctx, noteID)
	if errors.Is(err, repository.ErrNoteNotFound) {
		return models.Note{}, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		slog.Error("Note lookup failed", "note_id", noteID, "error", err)
		return models.Note{}, connect.NewError(connect.CodeInternal, err)
	}
	return note, nil
}
