package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/morsel/internal/dataset"
	"github.com/MrJamesThe3rd/morsel/internal/http/respond"
	"github.com/MrJamesThe3rd/morsel/internal/importer/sheet"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

type Ingester interface {
	Current() *dataset.Dataset
	Ingest(ctx context.Context, dir string) (*dataset.Dataset, error)
}

type Handler struct {
	svc       Ingester
	sourceDir string
}

func NewHandler(svc Ingester, sourceDir string) *Handler {
	return &Handler{svc: svc, sourceDir: sourceDir}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/ingest", h.ingest)
}

type summaryResponse struct {
	ID       uuid.UUID `json:"id"`
	Records  int       `json:"records"`
	Sources  []string  `json:"sources"`
	LoadedAt time.Time `json:"loaded_at"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ds := h.svc.Current()
	if ds == nil {
		respond.Error(w, r, http.StatusServiceUnavailable, "no dataset loaded")
		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(ds))
}

// ingest re-reads the source directory. On failure the previously published dataset stays current.
// Malformed source content is a 422; anything else is a 500.
func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	ds, err := h.svc.Ingest(r.Context(), h.sourceDir)
	if err != nil {
		if isSourceError(err) {
			slog.Warn("ingest rejected source data", "dir", h.sourceDir, "error", err)
			respond.Error(w, r, http.StatusUnprocessableEntity, err.Error())

			return
		}

		slog.Error("ingest request failed", "dir", h.sourceDir, "error", err)
		respond.Error(w, r, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, r, http.StatusCreated, toResponse(ds))
}

func isSourceError(err error) bool {
	var (
		priceErr   *sales.MalformedPriceError
		qtyErr     *sales.MalformedQuantityError
		dateErr    *sales.MalformedDateError
		missingErr *sheet.MissingColumnsError
		shortErr   *sheet.ShortRowError
		csvErr     *csv.ParseError
	)

	return errors.As(err, &priceErr) ||
		errors.As(err, &qtyErr) ||
		errors.As(err, &dateErr) ||
		errors.As(err, &missingErr) ||
		errors.As(err, &shortErr) ||
		errors.As(err, &csvErr)
}

func toResponse(ds *dataset.Dataset) summaryResponse {
	sources := ds.Sources
	if sources == nil {
		sources = []string{}
	}

	return summaryResponse{
		ID:       ds.ID,
		Records:  len(ds.Records),
		Sources:  sources,
		LoadedAt: ds.LoadedAt,
	}
}
