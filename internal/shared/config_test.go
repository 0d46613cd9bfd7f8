package shared

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APPS", "REGIONS", "PAGES", "FETCH_WORKERS", "FETCH_RPS", "HTTP_TIMEOUT_SECONDS", "OUTPUT_DIR", "DEDUP", "APPSTORE_BASE_URL"} {
		t.Setenv(k, "")
	}
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Apps) != 1 || c.Apps[0].ID != "1462608349" || c.Apps[0].Name != "Octofile" {
		t.Fatalf("apps: %+v", c.Apps)
	}
	if len(c.Regions) != 2 || c.Regions[0] != "cn" || c.Regions[1] != "us" {
		t.Fatalf("regions: %v", c.Regions)
	}
	if c.Pages != 10 || c.Workers != 1 || c.RPS != 0 || c.Dedup || c.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APPS", "1:One, 2:Two Words")
	t.Setenv("REGIONS", "gb")
	t.Setenv("PAGES", "3")
	t.Setenv("DEDUP", "true")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Apps) != 2 || c.Apps[1].Name != "Two Words" {
		t.Fatalf("apps: %+v", c.Apps)
	}
	if len(c.Regions) != 1 || c.Pages != 3 || !c.Dedup {
		t.Fatalf("unexpected: %+v", c)
	}
}

func TestParseApps_Invalid(t *testing.T) {
	for _, s := range []string{"", "123", ":Name", "123:", " , "} {
		if _, err := ParseApps(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestLoad_NonPositivePages(t *testing.T) {
	t.Setenv("PAGES", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for PAGES=0")
	}
}

func TestLoad_WarningsUseGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).With().Str("run_id", "test-run").Logger()
	t.Cleanup(func() { log.Logger = prev })

	t.Setenv("FETCH_WORKERS", "many")
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Workers != 1 {
		t.Fatalf("expected default workers, got %d", c.Workers)
	}
	out := buf.String()
	if !strings.Contains(out, "not an integer") || !strings.Contains(out, `"run_id":"test-run"`) {
		t.Fatalf("expected warning through configured logger, got %q", out)
	}
}
