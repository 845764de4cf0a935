package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmynk/matrixview/internal/api"
	"github.com/mmynk/matrixview/internal/auth"
	"github.com/mmynk/matrixview/internal/metrics"
	"github.com/mmynk/matrixview/internal/middleware"
	"github.com/mmynk/matrixview/internal/mock"
	"github.com/mmynk/matrixview/internal/models"
	"github.com/mmynk/matrixview/internal/repository"
	"github.com/mmynk/matrixview/internal/share"
	"github.com/mmynk/matrixview/internal/storage"
	"github.com/mmynk/matrixview/internal/storage/memory"
)

// setupTestServer creates a test server over the given store and returns a client for it
func setupTestServer(t *testing.T, store storage.KeyValueStore, opts ...connect.HandlerOption) (*api.Client, *NoteService) {
	t.Helper()

	svc := NewNoteService(repository.New(store), share.NewFormatter("₹", time.UTC))
	path, handler := api.NewNoteServiceHandler(svc, opts...)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return api.NewClient(http.DefaultClient, server.URL), svc
}

// clock returns a now func that advances one minute per call
func clock() func() time.Time {
	current := time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func lunchRows() []models.TableRow {
	return []models.TableRow{
		{Item: "Pizza", Amount: "12.50"},
		{Item: "Drinks", Amount: "7.50"},
	}
}

func TestCalculateTotal(t *testing.T) {
	client, _ := setupTestServer(t, memory.New())
	ctx := context.Background()

	t.Run("sum with split", func(t *testing.T) {
		resp, err := client.CalculateTotal(ctx, &api.CalculateTotalRequest{
			Rows:        lunchRows(),
			Calculation: models.CalculationConfig{Type: models.CalculationSum},
			People:      2,
		})
		require.NoError(t, err)
		assert.Equal(t, 20.0, resp.Total)
		assert.Equal(t, "20.00", resp.Formatted)
		assert.Equal(t, "Sum", resp.Label)
		require.NotNil(t, resp.Split)
		assert.Equal(t, 10.0, resp.Split.PerPerson)
		assert.Empty(t, resp.Breakdown)
	})

	t.Run("subtract", func(t *testing.T) {
		resp, err := client.CalculateTotal(ctx, &api.CalculateTotalRequest{
			Rows:        []models.TableRow{{Amount: "10"}, {Amount: "20"}},
			Calculation: models.Subtract(100),
		})
		require.NoError(t, err)
		assert.Equal(t, 70.0, resp.Total)
		assert.Nil(t, resp.Split)
	})

	t.Run("percentage includes breakdown", func(t *testing.T) {
		resp, err := client.CalculateTotal(ctx, &api.CalculateTotalRequest{
			Rows: []models.TableRow{
				{ID: "a", Item: "Rent", Amount: "750"},
				{ID: "b", Item: "Food", Amount: "250"},
				{ID: "c", Item: "", Amount: ""},
			},
			Calculation: models.CalculationConfig{Type: models.CalculationPercentage},
		})
		require.NoError(t, err)
		assert.Equal(t, 1000.0, resp.Total)
		require.Len(t, resp.Breakdown, 2)
		assert.Equal(t, api.Share{RowID: "a", Item: "Rent", Amount: 750, Percent: 75}, resp.Breakdown[0])
		assert.Equal(t, 25.0, resp.Breakdown[1].Percent)
	})

	t.Run("huge amount", func(t *testing.T) {
		resp, err := client.CalculateTotal(ctx, &api.CalculateTotalRequest{
			Rows:        []models.TableRow{{Item: "a", Amount: "1e307"}},
			Calculation: models.CalculationConfig{Type: models.CalculationAverage},
			People:      1,
		})
		require.NoError(t, err)
		assert.Equal(t, 1e307, resp.Total)
		assert.Equal(t, 1e307, resp.Split.PerPerson)
	})

	t.Run("empty table", func(t *testing.T) {
		resp, err := client.CalculateTotal(ctx, &api.CalculateTotalRequest{
			Calculation: models.CalculationConfig{Type: models.CalculationCount},
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, resp.Total)
	})
}

func TestCreateNote_EndToEnd(t *testing.T) {
	client, _ := setupTestServer(t, memory.New())
	ctx := context.Background()

	created, err := client.CreateNote(ctx, &api.CreateNoteRequest{
		Title:       "Lunch",
		Rows:        append(lunchRows(), models.TableRow{Item: " ", Amount: ""}),
		Calculation: models.CalculationConfig{Type: models.CalculationSum},
		People:      2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Note.ID)
	assert.Equal(t, 20.0, created.Note.Total)
	assert.Len(t, created.Note.Table, 2)

	list, err := client.ListNotes(ctx, &api.ListNotesRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notes, 1)
	got := list.Notes[0]
	assert.Equal(t, created.Note.ID, got.ID)
	assert.Equal(t, "Lunch", got.Title)
	assert.Equal(t, 20.0, got.Total)
	require.NotNil(t, got.Split)
	assert.Equal(t, models.Split{People: 2, PerPerson: 10}, *got.Split)

	fetched, err := client.GetNote(ctx, &api.GetNoteRequest{ID: got.ID})
	require.NoError(t, err)
	assert.Equal(t, got, fetched.Note)

	shared, err := client.ShareNote(ctx, &api.ShareNoteRequest{ID: got.ID})
	require.NoError(t, err)
	assert.Contains(t, shared.Text, "Pizza: ₹12.50\nDrinks: ₹7.50\n")
	assert.Contains(t, shared.Text, "Total: ₹20.00\nSplit between 2 people: ₹10.00 each")

	totalOnly, err := client.ShareNote(ctx, &api.ShareNoteRequest{ID: got.ID, TotalOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "Total: ₹20.00\nPer person: ₹10.00 (2 people)", totalOnly.Text)
}

func TestCreateNote_Validation(t *testing.T) {
	client, _ := setupTestServer(t, memory.New())
	ctx := context.Background()

	_, err := client.CreateNote(ctx, &api.CreateNoteRequest{Title: "   ", Rows: lunchRows()})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = client.CreateNote(ctx, &api.CreateNoteRequest{
		Title: "Blank",
		Rows:  []models.TableRow{{Item: "", Amount: " "}},
	})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	list, err := client.ListNotes(ctx, &api.ListNotesRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Notes)
}

func TestListNotes_NewestFirst(t *testing.T) {
	client, svc := setupTestServer(t, memory.New())
	svc.now = clock()
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := client.CreateNote(ctx, &api.CreateNoteRequest{Title: title, Rows: lunchRows()})
		require.NoError(t, err)
	}

	list, err := client.ListNotes(ctx, &api.ListNotesRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notes, 3)
	assert.Equal(t, "Third", list.Notes[0].Title)
	assert.Equal(t, "Second", list.Notes[1].Title)
	assert.Equal(t, "First", list.Notes[2].Title)
}

func TestDeleteNote(t *testing.T) {
	client, _ := setupTestServer(t, memory.New())
	ctx := context.Background()

	created, err := client.CreateNote(ctx, &api.CreateNoteRequest{Title: "Lunch", Rows: lunchRows()})
	require.NoError(t, err)

	_, err = client.DeleteNote(ctx, &api.DeleteNoteRequest{ID: "unknown"})
	require.NoError(t, err)
	list, err := client.ListNotes(ctx, &api.ListNotesRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Notes, 1)

	_, err = client.DeleteNote(ctx, &api.DeleteNoteRequest{ID: created.Note.ID})
	require.NoError(t, err)
	list, err = client.ListNotes(ctx, &api.ListNotesRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Notes)

	_, err = client.DeleteNote(ctx, &api.DeleteNoteRequest{})
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestGetNote_NotFound(t *testing.T) {
	client, _ := setupTestServer(t, memory.New())

	_, err := client.GetNote(context.Background(), &api.GetNoteRequest{ID: "missing"})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = client.ShareNote(context.Background(), &api.ShareNoteRequest{ID: "missing"})
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockKeyValueStore(ctrl)
	storeErr := errors.New("store unavailable")
	store.EXPECT().Get(gomock.Any(), repository.DefaultKey).Return("", storeErr).AnyTimes()

	client, _ := setupTestServer(t, store)
	ctx := context.Background()

	list, err := client.ListNotes(ctx, &api.ListNotesRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Notes)

	_, err = client.CreateNote(ctx, &api.CreateNoteRequest{Title: "Lunch", Rows: lunchRows()})
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))

	_, err = client.GetNote(ctx, &api.GetNoteRequest{ID: "x"})
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	m := metrics.New()
	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(tokens),
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	svc := NewNoteService(repository.New(memory.New()), share.NewFormatter("", time.UTC))
	path, handler := api.NewNoteServiceHandler(svc, interceptors)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	ctx := context.Background()

	anonymous := api.NewClient(http.DefaultClient, server.URL)
	_, err := anonymous.ListNotes(ctx, &api.ListNotesRequest{})
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	forged := api.NewClient(http.DefaultClient, server.URL, api.WithToken("forged"))
	_, err = forged.ListNotes(ctx, &api.ListNotesRequest{})
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	token, err := tokens.Generate("phone")
	require.NoError(t, err)
	authed := api.NewClient(http.DefaultClient, server.URL, api.WithToken(token))
	_, err = authed.ListNotes(ctx, &api.ListNotesRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues(api.ListNotesProcedure, "ok")))
}
