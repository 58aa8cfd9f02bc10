// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"transferdesk/internal/modules/booking"
	"transferdesk/internal/modules/catalog"
	"transferdesk/internal/modules/handoff"
	"transferdesk/internal/modules/submission"
	"transferdesk/internal/modules/wizard"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDraftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrDraftNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrUnknownVehicle), errors.Is(err, handoff.ErrMalformed):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, wizard.ErrStepIncomplete), errors.Is(err, submission.ErrIncomplete):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
