package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/morsel/internal/http/dataset"
	"github.com/MrJamesThe3rd/morsel/internal/http/export"
	"github.com/MrJamesThe3rd/morsel/internal/http/series"
)

type Options struct {
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
}

func New(
	seriesV1 *series.Handler,
	datasetV1 *dataset.Handler,
	exportV1 *export.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		seriesV1.Routes(r)

		r.Route("/dataset", datasetV1.Routes)
		r.Route("/export", exportV1.Routes)
	})

	return router
}
