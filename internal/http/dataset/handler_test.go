package dataset_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/morsel/internal/dataset"
	httpdataset "github.com/MrJamesThe3rd/morsel/internal/http/dataset"
	"github.com/MrJamesThe3rd/morsel/internal/importer/sheet"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

type fakeIngester struct {
	current *dataset.Dataset
	next    *dataset.Dataset
	err     error
	dir     string
}

func (f *fakeIngester) Current() *dataset.Dataset { return f.current }

func (f *fakeIngester) Ingest(_ context.Context, dir string) (*dataset.Dataset, error) {
	f.dir = dir
	if f.err != nil {
		return nil, f.err
	}

	f.current = f.next

	return f.next, nil
}

type summary struct {
	ID       uuid.UUID `json:"id"`
	Records  int       `json:"records"`
	Sources  []string  `json:"sources"`
	LoadedAt time.Time `json:"loaded_at"`
}

func serve(t *testing.T, svc httpdataset.Ingester, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/dataset", httpdataset.NewHandler(svc, "data").Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	return rec
}

func sampleDataset() *dataset.Dataset {
	return &dataset.Dataset{
		ID:       uuid.New(),
		Records:  make([]sales.Record, 3),
		Sources:  []string{"daily_sales_data_0.csv"},
		LoadedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHandler_Get(t *testing.T) {
	ds := sampleDataset()

	rec := serve(t, &fakeIngester{current: ds}, http.MethodGet, "/dataset")
	require.Equal(t, http.StatusOK, rec.Code)

	var body summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ds.ID, body.ID)
	assert.Equal(t, 3, body.Records)
	assert.Equal(t, []string{"daily_sales_data_0.csv"}, body.Sources)
	assert.True(t, ds.LoadedAt.Equal(body.LoadedAt))
}

func TestHandler_Get_NoDataset(t *testing.T) {
	rec := serve(t, &fakeIngester{}, http.MethodGet, "/dataset")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"no dataset loaded"}`, rec.Body.String())
}

func TestHandler_Ingest(t *testing.T) {
	next := sampleDataset()
	svc := &fakeIngester{next: next}

	rec := serve(t, svc, http.MethodPost, "/dataset/ingest")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "data", svc.dir)

	var body summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, next.ID, body.ID)
}

func TestHandler_Ingest_Failure(t *testing.T) {
	type testCase struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}

	tests := []testCase{
		{
			name: "Malformed Price",
			err: fmt.Errorf("normalizing sources: %w", &sales.MalformedPriceError{
				Source: "daily_sales_data_0.csv",
				Row:    2,
				Value:  "abc",
			}),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `malformed price \"abc\"`,
		},
		{
			name:     "Missing Columns",
			err:      fmt.Errorf("reading sources: a.csv: %w", &sheet.MissingColumnsError{Missing: []string{"region"}}),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "missing columns: region",
		},
		{
			name:     "Short Row",
			err:      fmt.Errorf("reading sources: a.csv: %w", &sheet.ShortRowError{Row: 4, Want: 5, Got: 2}),
			wantCode: http.StatusUnprocessableEntity,
			wantBody: "row 4: expected at least 5 fields",
		},
		{
			name:     "Missing Directory",
			err:      fmt.Errorf("reading sources: listing data: %w", os.ErrNotExist),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal error"}`,
		},
		{
			name:     "Store Failure",
			err:      fmt.Errorf("saving canonical dataset: %w", errors.New("connection refused")),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := sampleDataset()
			svc := &fakeIngester{current: prev, err: tt.err}

			rec := serve(t, svc, http.MethodPost, "/dataset/ingest")
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)

			rec = serve(t, svc, http.MethodGet, "/dataset")
			require.Equal(t, http.StatusOK, rec.Code)

			var body summary
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, prev.ID, body.ID)
		})
	}
}
