// README: Submission handler: the summary step's confirm action.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transferdesk/internal/modules/submission"
	"transferdesk/internal/types"
)

type SubmitHandler struct {
	submission *submission.Service
}

func NewSubmitHandler(svc *submission.Service) *SubmitHandler {
	return &SubmitHandler{submission: svc}
}

// Submit handles POST /api/drafts/:id/submit.
func (h *SubmitHandler) Submit(c *gin.Context) {
	rcpt, err := h.submission.Submit(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeDraftError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, rcpt)
}
