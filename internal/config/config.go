package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL          string
	JWTSecret            string
	JWTIssuer            string
	AccessTTLSeconds     int64
	RefreshTTLSeconds    int64
	CorsOrigins          []string
	AdminEmails          []string
	MeetingProvider      string
	ZoomAccountID        string
	ZoomClientID         string
	ZoomClientSecret     string
	GoogleAPIKey         string
	AIGatewayURL         string
	AIGatewayKey         string
	AIModel              string
	TranscribeModel      string
	MetricsSampleSeconds int
}

func Load() Config {
	return Config{
		DatabaseURL:          mustEnv("DATABASE_URL"),
		JWTSecret:            mustEnv("JWT_SECRET"),
		JWTIssuer:            envOr("JWT_ISSUER", "mentorhub"),
		AccessTTLSeconds:     int64(envOrInt("ACCESS_TTL_SECONDS", 14400)),
		RefreshTTLSeconds:    int64(envOrInt("REFRESH_TTL_SECONDS", 1209600)),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
		AdminEmails:          parseCSV(envOr("ADMIN_EMAILS", "")),
		MeetingProvider:      envOr("MEETING_PROVIDER", "zoom"),
		ZoomAccountID:        envOr("ZOOM_ACCOUNT_ID", ""),
		ZoomClientID:         envOr("ZOOM_CLIENT_ID", ""),
		ZoomClientSecret:     envOr("ZOOM_CLIENT_SECRET", ""),
		GoogleAPIKey:         envOr("GOOGLE_API_KEY", ""),
		AIGatewayURL:         envOr("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		AIGatewayKey:         envOr("AI_GATEWAY_KEY", ""),
		AIModel:              envOr("AI_MODEL", "google/gemini-2.5-flash"),
		TranscribeModel:      envOr("TRANSCRIBE_MODEL", "gemini-2.5-flash"),
		MetricsSampleSeconds: envOrInt("METRICS_SAMPLE_INTERVAL", 5),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}
