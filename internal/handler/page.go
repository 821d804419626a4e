package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/salon-booking/internal/auth"
)

// PageHandler serves the home page and the four static service pages.
// The service pages carry no data and require no authentication; the home
// page sits behind RequireAuth and greets the signed-in user.
type PageHandler struct {
	render *Renderer
	logger *slog.Logger
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(render *Renderer, logger *slog.Logger) *PageHandler {
	return &PageHandler{render: render, logger: logger}
}

// HandleHome serves the home page.
//
// HTTP: GET / (auth required)
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.PrincipalFromContext(r.Context())

	h.render.Render(w, "homepage", map[string]any{
		"Title": "Salon",
		"User":  user,
		"Flash": popFlash(w, r),
	})
}

// HandleHaircut serves the haircut service page.
//
// HTTP: GET /index2
func (h *PageHandler) HandleHaircut(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "haircut", map[string]any{"Title": "Haircut"})
}

// HandleHaircolor serves the hair colour service page.
//
// HTTP: GET /index3
func (h *PageHandler) HandleHaircolor(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "haircolor", map[string]any{"Title": "Hair Color"})
}

// HandleBeardLineup serves the beard line-up service page.
//
// HTTP: GET /index4
func (h *PageHandler) HandleBeardLineup(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "beard_lineup", map[string]any{"Title": "Beard Lineup"})
}

// HandleShortHaircut serves the short haircut service page.
//
// HTTP: GET /short
func (h *PageHandler) HandleShortHaircut(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "short_haircut", map[string]any{"Title": "Short Haircut"})
}
