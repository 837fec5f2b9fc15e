package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/morsel/internal/export"
	"github.com/MrJamesThe3rd/morsel/internal/http/respond"
	"github.com/MrJamesThe3rd/morsel/internal/query"
	"github.com/MrJamesThe3rd/morsel/internal/sales"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	selector := r.URL.Query().Get("region")
	if selector == "" {
		selector = sales.SelectorAll
	}

	doc, err := h.svc.Export(selector, format)
	if err != nil {
		var unknown *sales.UnknownRegionError

		switch {
		case errors.As(err, &unknown):
			respond.Error(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, query.ErrNoDataset):
			respond.Error(w, r, http.StatusServiceUnavailable, err.Error())
		default:
			slog.Error("export failed", "region", selector, "format", format, "error", err)
			respond.Error(w, r, http.StatusInternalServerError, "internal error")
		}

		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))

	if _, err := w.Write(doc.Body); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
