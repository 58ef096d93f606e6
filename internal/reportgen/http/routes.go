package reporthttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/sr-consultoria/farmreport/internal/reportgen"
)

// MountRoutes registers the report endpoints under /reports.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Route("/reports", func(rr chi.Router) {
		rr.Post("/validate", h.handleValidate)
		rr.Get("/jobs/{id}", h.handleJobState)
		rr.Get("/jobs/{id}/file", h.handleJobFile)
		rr.Group(func(gr chi.Router) {
			if h.rateLimit > 0 {
				gr.Use(httprate.Limit(h.rateLimit, time.Minute,
					httprate.WithKeyFuncs(httprate.KeyByIP),
					httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
						http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
					}),
				))
			}
			gr.Post("/pdf", h.handleGenerate(reportgen.KindPDF))
			gr.Post("/html", h.handleGenerate(reportgen.KindHTML))
			gr.Post("/html.pdf", h.handleGenerate(reportgen.KindHTMLPDF))
			gr.Post("/jobs", h.handleEnqueue)
		})
	})
}
