// README: Place autocomplete handler with leg-specific geographic bias.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transferdesk/internal/modules/booking"
	"transferdesk/internal/modules/places"
	"transferdesk/internal/types"
)

type PlacesHandler struct {
	places   *places.Service
	registry *booking.Registry
}

func NewPlacesHandler(svc *places.Service, registry *booking.Registry) *PlacesHandler {
	return &PlacesHandler{places: svc, registry: registry}
}

// Suggest handles GET /api/drafts/:id/places?q=...&leg=pickup|dropoff.
// Pickup queries are biased to the service region; dropoff queries to a
// radius around the draft's resolved pickup when one exists.
func (h *PlacesHandler) Suggest(c *gin.Context) {
	if h.places == nil {
		writeJSON(c, http.StatusOK, map[string]any{"suggestions": []places.Suggestion{}})
		return
	}
	s, err := h.registry.Get(types.ID(c.Param("id")))
	if err != nil {
		writeDraftError(c, err)
		return
	}

	bias := h.places.RegionBias()
	if c.Query("leg") == "dropoff" {
		if pickup := s.Snapshot().Pickup; !pickup.Coord.Zero() {
			bias = h.places.DropoffBias(pickup.Coord)
		}
	}

	suggestions, err := h.places.Suggest(c.Request.Context(), c.Query("q"), bias)
	if err != nil {
		writeError(c, http.StatusBadGateway, "place lookup failed")
		return
	}
	if suggestions == nil {
		suggestions = []places.Suggestion{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// ResolvePlace handles POST /api/drafts/:id/places/resolve: turns a selected
// suggestion into a full location the client then patches onto the draft.
func (h *PlacesHandler) ResolvePlace(c *gin.Context) {
	if h.places == nil {
		writeError(c, http.StatusServiceUnavailable, "place resolution not configured")
		return
	}
	var req struct {
		PlaceID string `json:"place_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.PlaceID == "" {
		writeError(c, http.StatusBadRequest, "missing place_id")
		return
	}
	detail, err := h.places.Resolve(c.Request.Context(), req.PlaceID)
	if err != nil {
		writeError(c, http.StatusBadGateway, "place lookup failed")
		return
	}
	writeJSON(c, http.StatusOK, detail)
}
