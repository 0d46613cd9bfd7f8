package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"appstore_reviews/internal/domain"
)

type Config struct {
	AppEnv      string
	MetricsAddr string
	Apps        []domain.App
	BaseURL     string
	Regions     []string
	Pages       int
	Workers     int
	RPS         int
	HTTPTimeout time.Duration
	OutputDir   string
	Dedup       bool
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		MetricsAddr: env("METRICS_ADDR", ""),
		BaseURL:     env("APPSTORE_BASE_URL", "https://itunes.apple.com"),
		Regions:     splitList(env("REGIONS", "cn,us")),
		Pages:       atoi("PAGES", 10),
		Workers:     atoi("FETCH_WORKERS", 1),
		RPS:         atoi("FETCH_RPS", 0),
		HTTPTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		OutputDir:   env("OUTPUT_DIR", "."),
		Dedup:       envBool("DEDUP", false),
	}
	apps, err := ParseApps(env("APPS", "1462608349:Octofile"))
	if err != nil {
		return c, err
	}
	c.Apps = apps
	if c.Pages <= 0 {
		return c, fmt.Errorf("PAGES must be positive, got %d", c.Pages)
	}
	return c, nil
}

// ParseApps parses "id:Name,id:Name". Names may contain spaces but not commas.
func ParseApps(s string) ([]domain.App, error) {
	var out []domain.App
	for _, item := range splitList(s) {
		id, name, ok := strings.Cut(item, ":")
		id, name = strings.TrimSpace(id), strings.TrimSpace(name)
		if !ok || id == "" || name == "" {
			return nil, fmt.Errorf("APPS entry %q: want id:Name", item)
		}
		out = append(out, domain.App{ID: id, Name: name})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("APPS is empty")
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
