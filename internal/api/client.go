package api

import (
	"context"

	"connectrpc.com/connect"
)

// Client calls a remote NoteService.
type Client struct {
	calculateTotal *connect.Client[CalculateTotalRequest, CalculateTotalResponse]
	createNote     *connect.Client[CreateNoteRequest, CreateNoteResponse]
	getNote        *connect.Client[GetNoteRequest, GetNoteResponse]
	listNotes      *connect.Client[ListNotesRequest, ListNotesResponse]
	deleteNote     *connect.Client[DeleteNoteRequest, DeleteNoteResponse]
	shareNote      *connect.Client[ShareNoteRequest, ShareNoteResponse]
}

// NewClient creates a client for the NoteService at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)

	return &Client{
		calculateTotal: connect.NewClient[CalculateTotalRequest, CalculateTotalResponse](httpClient, baseURL+CalculateTotalProcedure, opts...),
		createNote:     connect.NewClient[CreateNoteRequest, CreateNoteResponse](httpClient, baseURL+CreateNoteProcedure, opts...),
		getNote:        connect.NewClient[GetNoteRequest, GetNoteResponse](httpClient, baseURL+GetNoteProcedure, opts...),
		listNotes:      connect.NewClient[ListNotesRequest, ListNotesResponse](httpClient, baseURL+ListNotesProcedure, opts...),
		deleteNote:     connect.NewClient[DeleteNoteRequest, DeleteNoteResponse](httpClient, baseURL+DeleteNoteProcedure, opts...),
		shareNote:      connect.NewClient[ShareNoteRequest, ShareNoteResponse](httpClient, baseURL+ShareNoteProcedure, opts...),
	}
}

// WithToken adds a bearer token to every call.
func WithToken(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(
		func(next connect.UnaryFunc) connect.UnaryFunc {
			return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				req.Header().Set("Authorization", "Bearer "+token)
				return next(ctx, req)
			}
		},
	))
}

func (c *Client) CalculateTotal(ctx context.Context, req *CalculateTotalRequest) (*CalculateTotalResponse, error) {
	return call(ctx, c.calculateTotal, req)
}

func (c *Client) CreateNote(ctx context.Context, req *CreateNoteRequest) (*CreateNoteResponse, error) {
	return call(ctx, c.createNote, req)
}

func (c *Client) GetNote(ctx context.Context, req *GetNoteRequest) (*GetNoteResponse, error) {
	return call(ctx, c.getNote, req)
}

func (c *Client) ListNotes(ctx context.Context, req *ListNotesRequest) (*ListNotesResponse, error) {
	return call(ctx, c.listNotes, req)
}

func (c *Client) DeleteNote(ctx context.Context, req *DeleteNoteRequest) (*DeleteNoteResponse, error) {
	return call(ctx, c.deleteNote, req)
}

func (c *Client) ShareNote(ctx context.Context, req *ShareNoteRequest) (*ShareNoteResponse, error) {
	return call(ctx, c.shareNote, req)
}

func call[Req, Res any](ctx context.Context, client *connect.Client[Req, Res], req *Req) (*Res, error) {
	resp, err := client.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}
