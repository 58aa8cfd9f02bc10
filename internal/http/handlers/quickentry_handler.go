// README: Quick-entry handler: free text in, prefilled draft out.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"transferdesk/internal/modules/booking"
	"transferdesk/internal/service"
)

type QuickEntryHandler struct {
	quick    *service.QuickEntry
	registry *booking.Registry
}

func NewQuickEntryHandler(quick *service.QuickEntry, registry *booking.Registry) *QuickEntryHandler {
	return &QuickEntryHandler{quick: quick, registry: registry}
}

type quickEntryReq struct {
	Message string `json:"message"`
}

// Create handles POST /api/quick-entry: parses the message and returns a new
// draft prefilled with whatever was extracted.
func (h *QuickEntryHandler) Create(c *gin.Context) {
	if h.quick == nil {
		writeError(c, http.StatusServiceUnavailable, "quick entry not configured")
		return
	}
	var req quickEntryReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}

	p, err := h.quick.Prefill(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrNoIntent) {
			writeError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(c, http.StatusBadGateway, "could not parse request")
		return
	}

	s := h.registry.Create()
	s.Apply(p)
	writeJSON(c, http.StatusCreated, s.Snapshot())
}
