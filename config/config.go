package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	Timezone string
	LogLevel string

	DBPath   string
	DataDir  string
	DataXLSX string

	UseAI        bool
	AIProvider   string // gemini|openai|mock
	GeminiAPIKey string
	GeminiModel  string
	LLMEndpoint  string
	LLMAPIKey    string
	LLMModel     string
	AITimeout    time.Duration

	ReportInterval time.Duration
	CORSOrigins    []string
}

var defaultOrigins = []string{
	"http://localhost:63342",
	"http://127.0.0.1:63342",
	"http://127.0.0.1:5500",
	"http://localhost:5500",
	"http://127.0.0.1",
	"http://localhost",
}

// Load reads .env (when present) and the process environment.
// The returned bool is false when no .env file could be loaded.
func Load() (AppConfig, bool) {
	envLoaded := godotenv.Load() == nil

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	dur := func(k string, def time.Duration) time.Duration {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		// bare integers are seconds
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
		return def
	}
	boolean := func(k string, def bool) bool {
		if b, err := strconv.ParseBool(os.Getenv(k)); err == nil {
			return b
		}
		return def
	}

	cfg := AppConfig{
		Port:     get("PORT", "8000"),
		Timezone: get("TZ", "UTC"),
		LogLevel: get("LOG_LEVEL", "info"),

		DBPath:   get("DB_PATH", "file:farmassist?mode=memory&cache=shared"),
		DataDir:  get("DATA_DIR", "data"),
		DataXLSX: get("DATA_XLSX", ""),

		UseAI:        boolean("USE_AI", false),
		AIProvider:   strings.ToLower(get("AI_PROVIDER", "gemini")),
		GeminiAPIKey: get("GEMINI_API_KEY", ""),
		GeminiModel:  get("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMEndpoint:  get("LLM_ENDPOINT", ""),
		LLMAPIKey:    get("LLM_API_KEY", ""),
		LLMModel:     get("LLM_MODEL", "gpt-4o-mini"),
		AITimeout:    dur("AI_TIMEOUT", 5*time.Second),

		ReportInterval: dur("REPORT_INTERVAL", 0),
		CORSOrigins:    defaultOrigins,
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	return cfg, envLoaded
}

// Location resolves Timezone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Redacted returns a copy safe to log.
func (c AppConfig) Redacted() AppConfig {
	out := c
	out.GeminiAPIKey = mask(c.GeminiAPIKey)
	out.LLMAPIKey = mask(c.LLMAPIKey)
	return out
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "****"
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
