// README: Config loader with env defaults for HTTP, DB, Redis, Maps, pricing and booking rules.
package config

import (
	"os"
	"strconv"
)

type PricingConfig struct {
	ChildSeatFee float64
	AirportFee   float64
	TaxRate      float64
}

type BookingConfig struct {
	// MinAdvanceMinutes is the minimum gap between "now" and the pickup instant.
	MinAdvanceMinutes int
	// MinHourlyDuration is the smallest bookable hourly hire, in hours.
	MinHourlyDuration int
	// DraftIdleMinutes is how long an untouched draft survives before the sweeper drops it.
	DraftIdleMinutes int
	// TimeZone is the IANA zone all schedule fields are interpreted in.
	TimeZone string
}

type PlacesConfig struct {
	// Bounding box used to bias pickup suggestions to the service region.
	RegionSWLat float64
	RegionSWLng float64
	RegionNELat float64
	RegionNELng float64
	// Radius in metres used to bias dropoff suggestions around the pickup point.
	DropoffBiasRadiusM int
	// DebounceMillis is the quiet window for coalescing suggestion queries.
	DebounceMillis int
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey string
	}
	AI struct {
		GeminiKey string
	}
	Pricing PricingConfig
	Booking BookingConfig
	Places  PlacesConfig
	Handoff struct {
		TTLSeconds int
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TD_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("TD_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("TD_REDIS_ADDR", "")
	cfg.Maps.APIKey = envOrDefault("TD_MAPS_API_KEY", "")
	cfg.AI.GeminiKey = envOrDefault("GEMINI_API_KEY", "")

	cfg.Pricing.ChildSeatFee = envOrDefaultFloat("TD_PRICE_CHILD_SEAT_FEE", 12.0)
	cfg.Pricing.AirportFee = envOrDefaultFloat("TD_PRICE_AIRPORT_FEE", 25.0)
	cfg.Pricing.TaxRate = envOrDefaultFloat("TD_PRICE_TAX_RATE", 0.19)

	cfg.Booking.MinAdvanceMinutes = envOrDefaultInt("TD_MIN_ADVANCE_MINUTES", 120)
	cfg.Booking.MinHourlyDuration = envOrDefaultInt("TD_MIN_HOURLY_HOURS", 2)
	cfg.Booking.DraftIdleMinutes = envOrDefaultInt("TD_DRAFT_IDLE_MINUTES", 120)
	cfg.Booking.TimeZone = envOrDefault("TD_TIMEZONE", "Europe/Berlin")

	// Default region bias: greater Berlin/Brandenburg service area.
	cfg.Places.RegionSWLat = envOrDefaultFloat("TD_REGION_SW_LAT", 52.20)
	cfg.Places.RegionSWLng = envOrDefaultFloat("TD_REGION_SW_LNG", 12.90)
	cfg.Places.RegionNELat = envOrDefaultFloat("TD_REGION_NE_LAT", 52.75)
	cfg.Places.RegionNELng = envOrDefaultFloat("TD_REGION_NE_LNG", 13.80)
	cfg.Places.DropoffBiasRadiusM = envOrDefaultInt("TD_DROPOFF_BIAS_RADIUS_M", 50000)
	cfg.Places.DebounceMillis = envOrDefaultInt("TD_SUGGEST_DEBOUNCE_MS", 250)

	cfg.Handoff.TTLSeconds = envOrDefaultInt("TD_HANDOFF_TTL_SECONDS", 600)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
