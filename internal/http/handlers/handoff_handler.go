// README: Handoff handlers: the funnel writes, draft creation reads.
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"transferdesk/internal/modules/handoff"
)

type HandoffHandler struct {
	mailbox handoff.Mailbox
}

func NewHandoffHandler(mailbox handoff.Mailbox) *HandoffHandler {
	return &HandoffHandler{mailbox: mailbox}
}

// maxPayloadBytes bounds a handoff body; a draft payload is tiny.
const maxPayloadBytes = 16 << 10

// Put handles PUT /api/handoff/:key. The raw payload is stored as-is and
// shape-checked now, so the funnel learns about a bad payload immediately
// rather than the customer seeing a blank wizard later.
func (h *HandoffHandler) Put(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPayloadBytes))
	if err != nil || len(raw) == 0 {
		writeError(c, http.StatusBadRequest, "empty payload")
		return
	}
	if _, err := handoff.Decode(raw); err != nil {
		writeDraftError(c, err)
		return
	}
	if err := h.mailbox.Put(c.Request.Context(), c.Param("key"), raw); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
