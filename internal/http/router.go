// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"transferdesk/internal/config"
	"transferdesk/internal/http/handlers"
	"transferdesk/internal/http/middleware"
	"transferdesk/internal/modules/booking"
	"transferdesk/internal/modules/catalog"
	"transferdesk/internal/modules/handoff"
	"transferdesk/internal/modules/places"
	"transferdesk/internal/modules/submission"
	"transferdesk/internal/service"
)

type RouterDeps struct {
	Config     config.Config
	Logger     *slog.Logger
	Registry   *booking.Registry
	Catalog    *catalog.Service
	Places     *places.Service    // nil disables autocomplete
	Mailbox    handoff.Mailbox    // nil disables hydration
	Submission *submission.Service
	QuickEntry *service.QuickEntry // nil disables quick entry
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger), middleware.Logging(deps.Logger))

	draft := handlers.NewDraftHandler(deps.Registry, deps.Catalog, deps.Mailbox, deps.Logger)
	r.POST("/api/drafts", draft.Create)
	r.GET("/api/drafts/:id", draft.Get)
	r.PATCH("/api/drafts/:id", draft.Patch)
	r.DELETE("/api/drafts/:id", draft.Delete)
	r.GET("/api/drafts/:id/vehicles", draft.Vehicles)
	r.POST("/api/drafts/:id/vehicle", draft.SelectVehicle)
	r.POST("/api/drafts/:id/advance", draft.Advance)
	r.POST("/api/drafts/:id/back", draft.Back)
	r.POST("/api/drafts/:id/retry-route", draft.RetryRoute)

	pl := handlers.NewPlacesHandler(deps.Places, deps.Registry)
	r.GET("/api/drafts/:id/places", pl.Suggest)
	r.POST("/api/drafts/:id/places/resolve", pl.ResolvePlace)

	if deps.Mailbox != nil {
		ho := handlers.NewHandoffHandler(deps.Mailbox)
		r.PUT("/api/handoff/:key", ho.Put)
	}

	if deps.Submission != nil {
		sub := handlers.NewSubmitHandler(deps.Submission)
		r.POST("/api/drafts/:id/submit", sub.Submit)
	}

	qe := handlers.NewQuickEntryHandler(deps.QuickEntry, deps.Registry)
	r.POST("/api/quick-entry", qe.Create)

	// Client bootstrap values: the wizard front end debounces its
	// autocomplete input with the same window the server was configured with.
	r.GET("/api/client-config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"suggest_debounce_ms": deps.Config.Places.DebounceMillis,
			"time_zone":           deps.Config.Booking.TimeZone,
			"min_advance_minutes": deps.Config.Booking.MinAdvanceMinutes,
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
