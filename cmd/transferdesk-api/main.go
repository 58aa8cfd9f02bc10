// README: Entry point; loads config, wires services, starts HTTP server and background sweeper.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"transferdesk/internal/ai"
	"transferdesk/internal/config"
	httptransport "transferdesk/internal/http"
	"transferdesk/internal/infra"
	"transferdesk/internal/modules/booking"
	"transferdesk/internal/modules/catalog"
	"transferdesk/internal/modules/handoff"
	"transferdesk/internal/modules/places"
	"transferdesk/internal/modules/pricing"
	"transferdesk/internal/modules/route"
	"transferdesk/internal/modules/schedule"
	"transferdesk/internal/modules/submission"
	"transferdesk/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Booking.TimeZone)
	if err != nil {
		log.Fatalf("load time zone %s: %v", cfg.Booking.TimeZone, err)
	}
	rules := schedule.New(time.Duration(cfg.Booking.MinAdvanceMinutes)*time.Minute, loc)

	catalogSvc := catalog.NewService(nil)
	var dbPool *pgxpool.Pool
	if cfg.DB.DSN != "" {
		dbPool, err = infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		catalogSvc = catalog.NewService(catalog.NewStore(dbPool))
		if err := catalogSvc.Refresh(ctx); err != nil {
			log.Fatalf("load vehicle catalog: %v", err)
		}
	}

	// Without a Maps key, route estimates fall back to straight-line
	// distance with a road factor, and autocomplete is disabled.
	var resolver route.Resolver = route.NewOffline()
	var placesSvc *places.Service
	if cfg.Maps.APIKey != "" {
		routeSvc, err := route.NewService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		resolver = routeSvc
		placesSvc, err = places.NewService(cfg.Maps.APIKey, cfg.Places)
		if err != nil {
			log.Fatalf("places init: %v", err)
		}
	} else {
		logger.Warn("TD_MAPS_API_KEY not set, using offline route estimates")
	}

	registry := booking.NewRegistry(booking.Deps{
		Rules:          rules,
		Pricer:         pricing.NewService(cfg.Pricing),
		Catalog:        catalogSvc,
		Resolver:       resolver,
		Debounce:       time.Duration(cfg.Places.DebounceMillis) * time.Millisecond,
		MinHourlyHours: cfg.Booking.MinHourlyDuration,
	})

	var mailbox handoff.Mailbox
	handoffTTL := time.Duration(cfg.Handoff.TTLSeconds) * time.Second
	if cfg.Redis.Addr != "" {
		mailbox = handoff.NewRedisMailbox(infra.NewRedis(cfg.Redis.Addr), handoffTTL)
	} else {
		mailbox = handoff.NewMemoryMailbox(handoffTTL)
	}

	var submissionSvc *submission.Service
	if dbPool != nil {
		submissionSvc = submission.NewService(submission.NewStore(dbPool), registry)
	}

	var quickEntry *service.QuickEntry
	if cfg.AI.GeminiKey != "" {
		parser, err := ai.NewGeminiParser(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer parser.Close()
		if placesSvc != nil {
			quickEntry = service.NewQuickEntry(parser, placesSvc, loc)
		}
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Config:     cfg,
		Logger:     logger,
		Registry:   registry,
		Catalog:    catalogSvc,
		Places:     placesSvc,
		Mailbox:    mailbox,
		Submission: submissionSvc,
		QuickEntry: quickEntry,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go registry.RunSweeper(ctx, time.Minute, time.Duration(cfg.Booking.DraftIdleMinutes)*time.Minute)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
