// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/modelmap/internal/catalog"
)

// TestConfigDefaults verifies that a zero Config resolves every derived
// setting to its documented default.
func TestConfigDefaults(t *testing.T) {
	var cfg Config

	if got := cfg.RequestTimeout(); got != 60*time.Second {
		t.Fatalf("expected default request timeout of 60s, got %v", got)
	}
	if got := cfg.Workers(); got != 4 {
		t.Fatalf("expected default concurrency of 4, got %d", got)
	}
	if got := cfg.ManagementEndpoint(); got != DefaultEndpoint {
		t.Fatalf("expected default endpoint, got %q", got)
	}
	if got := cfg.ModelsAPIVersion(); got != DefaultAPIVersion {
		t.Fatalf("expected default api version, got %q", got)
	}
	if got := cfg.Mode(); got != catalog.ModeOpenAIResponses {
		t.Fatalf("expected openai-responses mode, got %q", got)
	}
	if got := cfg.LogFilePath(); got != "modelmap.log" {
		t.Fatalf("expected default log file, got %q", got)
	}
	if got := cfg.RegionList(); len(got) != len(DefaultRegions) {
		t.Fatalf("expected %d default regions, got %d", len(DefaultRegions), len(got))
	}
}

// TestConfigOverrides verifies that explicit values win over defaults and
// that the region list is trimmed and deduplicated.
func TestConfigOverrides(t *testing.T) {
	cfg := Config{
		Regions:        []string{"eastus", " westus ", "eastus", ""},
		Endpoint:       "http://localhost:9999/",
		APIVersion:     "2023-05-01",
		TimeoutSeconds: 5,
		Concurrency:    1,
		NonOpenAI:      true,
		LogFile:        "logs/run.log",
	}

	if got := cfg.RegionList(); strings.Join(got, ",") != "eastus,westus" {
		t.Fatalf("unexpected region list %v", got)
	}
	if got := cfg.ManagementEndpoint(); got != "http://localhost:9999" {
		t.Fatalf("expected trailing slash trimmed, got %q", got)
	}
	if got := cfg.ModelsAPIVersion(); got != "2023-05-01" {
		t.Fatalf("unexpected api version %q", got)
	}
	if got := cfg.RequestTimeout(); got != 5*time.Second {
		t.Fatalf("unexpected timeout %v", got)
	}
	if got := cfg.Workers(); got != 1 {
		t.Fatalf("unexpected concurrency %d", got)
	}
	if got := cfg.Mode(); got != catalog.ModeNonOpenAIChat {
		t.Fatalf("expected non-openai-chat mode, got %q", got)
	}
	if got := cfg.LogFilePath(); got != "logs/run.log" {
		t.Fatalf("unexpected log file %q", got)
	}
}

// TestRegionListIsACopy verifies callers cannot mutate DefaultRegions through RegionList.
func TestRegionListIsACopy(t *testing.T) {
	regions := Config{}.RegionList()
	regions[0] = "mutated"
	if DefaultRegions[0] == "mutated" {
		t.Fatal("RegionList exposed DefaultRegions")
	}
}

// TestValidateFile checks valid, invalid and missing configuration files.
func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	if err := os.WriteFile(valid, []byte(`{
        "subscription": "00000000-0000-0000-0000-000000000000",
        "regions": ["eastus", "swedencentral"],
        "timeout": 30,
        "concurrency": 2,
        "nonOpenAI": true
    }`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateFile(valid); err != nil {
		t.Fatalf("ValidateFile() with valid config failed: %v", err)
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{ "regions": [], "timeout": "soon", "hosts": [] }`), 0o644); err != nil {
		t.Fatal(err)
	}
	err := ValidateFile(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{ "regions": [`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateFile(broken); err == nil {
		t.Fatal("ValidateFile() with malformed JSON should have failed")
	}

	if err := ValidateFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

// TestValidateRejectsBadRegion ensures region identifiers follow ARM's lowercase form.
func TestValidateRejectsBadRegion(t *testing.T) {
	if err := Validate([]byte(`{"regions": ["East US"]}`)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

// TestShowConfig checks the summary printed for a loaded configuration.
func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "config/config.json", Config{Subscription: "sub-1", Regions: []string{"eastus"}, AccessToken: "secret"})
	out := buf.String()

	for _, want := range []string{"Config file: config/config.json", "Subscription:    sub-1", "Access Token:    (set)", "Regions (1):    eastus"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret") {
		t.Fatal("access token leaked into config summary")
	}

	buf.Reset()
	ShowConfig(&buf, "", Config{})
	if !strings.Contains(buf.String(), "No config file loaded") {
		t.Fatalf("expected default notice, got:\n%s", buf.String())
	}
}
