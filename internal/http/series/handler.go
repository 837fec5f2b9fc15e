package series

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/morsel/internal/http/respond"
	"github.com/MrJamesThe3rd/morsel/internal/query"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

type Querier interface {
	Series(selector string) (*query.Result, error)
}

type Handler struct {
	svc Querier
}

func NewHandler(svc Querier) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/regions", h.regions)
	r.Get("/series", h.series)
}

type regionsResponse struct {
	Regions []string `json:"regions"`
}

type pointResponse struct {
	Date    string `json:"date"`
	Revenue string `json:"revenue"`
}

type seriesResponse struct {
	DatasetID uuid.UUID       `json:"dataset_id"`
	Region    string          `json:"region"`
	Points    []pointResponse `json:"points"`
}

func (h *Handler) regions(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, regionsResponse{Regions: sales.Selectors()})
}

func (h *Handler) series(w http.ResponseWriter, r *http.Request) {
	selector := r.URL.Query().Get("region")
	if selector == "" {
		selector = sales.SelectorAll
	}

	res, err := h.svc.Series(selector)
	if err != nil {
		var unknown *sales.UnknownRegionError

		switch {
		case errors.As(err, &unknown):
			respond.Error(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, query.ErrNoDataset):
			respond.Error(w, r, http.StatusServiceUnavailable, err.Error())
		default:
			slog.Error("series query failed", "region", selector, "error", err)
			respond.Error(w, r, http.StatusInternalServerError, "internal error")
		}

		return
	}

	respond.JSON(w, r, http.StatusOK, toResponse(res))
}

func toResponse(res *query.Result) seriesResponse {
	points := make([]pointResponse, len(res.Series))
	for i, p := range res.Series {
		points[i] = pointResponse{
			Date:    p.Date.Format(time.DateOnly),
			Revenue: p.Revenue.String(),
		}
	}

	return seriesResponse{
		DatasetID: res.DatasetID,
		Region:    res.Selector,
		Points:    points,
	}
}
