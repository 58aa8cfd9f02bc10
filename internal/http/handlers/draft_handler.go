// README: Draft handlers: create/hydrate, read, patch, vehicles, step navigation.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"transferdesk/internal/modules/booking"
	"transferdesk/internal/modules/catalog"
	"transferdesk/internal/modules/handoff"
	"transferdesk/internal/modules/wizard"
	"transferdesk/internal/types"
)

type DraftHandler struct {
	registry *booking.Registry
	catalog  *catalog.Service
	mailbox  handoff.Mailbox // nil disables hydration
	logger   *slog.Logger
}

func NewDraftHandler(registry *booking.Registry, cat *catalog.Service, mailbox handoff.Mailbox, logger *slog.Logger) *DraftHandler {
	return &DraftHandler{registry: registry, catalog: cat, mailbox: mailbox, logger: logger}
}

type createDraftReq struct {
	// SessionKey points at a handoff slot left by the public funnel.
	SessionKey string `json:"session_key,omitempty"`
}

// Create handles POST /api/drafts. When a session key is given and a handoff
// payload is waiting, the new draft is hydrated from it; a malformed payload
// is logged and discarded, and the draft starts blank. Either way the slot is
// consumed, so a refresh never reapplies it.
func (h *DraftHandler) Create(c *gin.Context) {
	var req createDraftReq
	_ = c.ShouldBindJSON(&req) // empty body is a valid blank-draft request

	s := h.registry.Create()
	if req.SessionKey != "" && h.mailbox != nil {
		raw, err := h.mailbox.Take(c.Request.Context(), req.SessionKey)
		if err == nil {
			if p, decErr := handoff.Decode(raw); decErr == nil {
				s.Apply(p)
			} else {
				h.logger.Warn("discarding handoff payload", "err", decErr)
			}
		}
	}
	writeJSON(c, http.StatusCreated, s.Snapshot())
}

func (h *DraftHandler) Get(c *gin.Context) {
	s, err := h.registry.Get(types.ID(c.Param("id")))
	if err != nil {
		writeDraftError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, s.Snapshot())
}

// Patch handles PATCH /api/drafts/:id. The response is the full draft after
// merge and recomputation; the client renders exactly what the store holds.
func (h *DraftHandler) Patch(c *gin.Context) {
	s, err := h.registry.Get(types.ID(c.Param("id")))
	if err != nil {
		writeDraftError(c, err)
		return
	}
	var p booking.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	s.Apply(p)
	writeJSON(c, http.StatusOK, s.Snapshot())
}

func (h *DraftHandler) Delete(c *gin.Context) {
	h.registry.Delete(types.ID(c.Param("id")))
	c.Status(http.StatusNoContent)
}

// Vehicles handles GET /api/drafts/:id/vehicles: the catalog filtered by the
// draft's passenger count. An empty list is a valid answer.
func (h *DraftHandler) Vehicles(c *gin.Context) {
	s, err := h.registry.Get(types.ID(c.Param("id")))
	if err != nil {
		writeDraftError(c, err)
		return
	}
	d := s.Snapshot()
	writeJSON(c, http.StatusOK, map[string]any{
		"vehicles": h.catalog.Available(d.Passengers.Count),
	})
}

type selectVehicleReq struct {
	VehicleID string `json:"vehicle_id"`
}

func (h *DraftHandler) SelectVehicle(c *gin.Context) {
	s, err := h.registry.Get(types.ID(c.Param("id")))
	if err != nil {
		writeDraftError(c, err)
		return
	}
	var req selectVehicleReq
	if err := c.ShouldBindJSON(&req); err != nil || req.VehicleID == "" {
		writeError(c, http.StatusBadRequest, "missing vehicle_id")
		return
	}
	if _, err := h.catalog.ByID(types.ID(req.VehicleID)); err != nil {
		writeDraftError(c, err)
		return
	}
	s.SelectVehicle(types.ID(req.VehicleID))
	writeJSON(c, http.StatusOK, s.Snapshot())
}

// Advance handles POST /api/drafts/:id/advance. A 409 means the current step
// is incomplete; the draft in the error-free response carries the new step.
func (h *DraftHandler) Advance(c *gin.Context) {
	s, err := h.registry.Get(types.ID(c.Param("id")))
	if err != nil {
		writeDraftError(c, err)
		return
	}
	if _, err := wizard.TryAdvance(s); err != nil {
		writeDraftError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, s.Snapshot())
}

func (h *DraftHandler) Back(c *gin.Context) {
	s, err := h.registry.Get(types.ID(c.Param("id")))
	if err != nil {
		writeDraftError(c, err)
		return
	}
	wizard.Back(s)
	writeJSON(c, http.StatusOK, s.Snapshot())
}

// RetryRoute handles POST /api/drafts/:id/retry-route after a soft failure.
func (h *DraftHandler) RetryRoute(c *gin.Context) {
	s, err := h.registry.Get(types.ID(c.Param("id")))
	if err != nil {
		writeDraftError(c, err)
		return
	}
	s.RetryRoute()
	writeJSON(c, http.StatusOK, s.Snapshot())
}
