package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// NoteServiceName is the fully-qualified name of the NoteService.
const NoteServiceName = "matrixview.v1.NoteService"

// Procedure paths of the NoteService.
const (
	CalculateTotalProcedure = "/" + NoteServiceName + "/CalculateTotal"
	CreateNoteProcedure     = "/" + NoteServiceName + "/CreateNote"
	GetNoteProcedure        = "/" + NoteServiceName + "/GetNote"
	ListNotesProcedure      = "/" + NoteServiceName + "/ListNotes"
	DeleteNoteProcedure     = "/" + NoteServiceName + "/DeleteNote"
	ShareNoteProcedure      = "/" + NoteServiceName + "/ShareNote"
)

// NoteServiceHandler is implemented by the note service.
type NoteServiceHandler interface {
	CalculateTotal(context.Context, *connect.Request[CalculateTotalRequest]) (*connect.Response[CalculateTotalResponse], error)
	CreateNote(context.Context, *connect.Request[CreateNoteRequest]) (*connect.Response[CreateNoteResponse], error)
	GetNote(context.Context, *connect.Request[GetNoteRequest]) (*connect.Response[GetNoteResponse], error)
	ListNotes(context.Context, *connect.Request[ListNotesRequest]) (*connect.Response[ListNotesResponse], error)
	DeleteNote(context.Context, *connect.Request[DeleteNoteRequest]) (*connect.Response[DeleteNoteResponse], error)
	ShareNote(context.Context, *connect.Request[ShareNoteRequest]) (*connect.Response[ShareNoteResponse], error)
}

// NewNoteServiceHandler builds an HTTP handler serving every NoteService
// procedure. It returns the path prefix to mount the handler on.
func NewNoteServiceHandler(svc NoteServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(CalculateTotalProcedure, connect.NewUnaryHandler(CalculateTotalProcedure, svc.CalculateTotal, opts...))
	mux.Handle(CreateNoteProcedure, connect.NewUnaryHandler(CreateNoteProcedure, svc.CreateNote, opts...))
	mux.Handle(GetNoteProcedure, connect.NewUnaryHandler(GetNoteProcedure, svc.GetNote, opts...))
	mux.Handle(ListNotesProcedure, connect.NewUnaryHandler(ListNotesProcedure, svc.ListNotes, opts...))
	mux.Handle(DeleteNoteProcedure, connect.NewUnaryHandler(DeleteNoteProcedure, svc.DeleteNote, opts...))
	mux.Handle(ShareNoteProcedure, connect.NewUnaryHandler(ShareNoteProcedure, svc.ShareNote, opts...))

	return "/" + NoteServiceName + "/", mux
}
