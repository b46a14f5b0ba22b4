package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.BaseURL != "http://localhost:3001" {
		t.Fatalf("unexpected default base_url: %q", cfg.Store.BaseURL)
	}
	if cfg.Serve.Addr != "127.0.0.1:3001" {
		t.Fatalf("unexpected default serve addr: %q", cfg.Serve.Addr)
	}
}

func TestLoadFromFile(t *testing.T) {
	workspace := t.TempDir()
	raw := "store:\n  base_url: http://store.internal:9000\n  timeout_seconds: 3\n"
	if err := os.WriteFile(filepath.Join(workspace, "amparo.yml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(workspace)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.BaseURL != "http://store.internal:9000" {
		t.Fatalf("unexpected base_url: %q", cfg.Store.BaseURL)
	}
	if cfg.Timeout() != 3*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.Timeout())
	}
	// Sections absent from the file keep their defaults.
	if cfg.Serve.Addr != "127.0.0.1:3001" {
		t.Fatalf("unexpected serve addr: %q", cfg.Serve.Addr)
	}
}

func TestValidateRejectsRelativeURL(t *testing.T) {
	cfg := Default()
	cfg.Store.BaseURL = "localhost:3001"
	if err := cfg.Validate(); err == nil {
		t.Fatal("relative base_url must be rejected")
	}
	cfg.Store.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty base_url must be rejected")
	}
}

func TestFromYAMLInvalid(t *testing.T) {
	if _, err := FromYAML([]byte("store: [nope")); err == nil {
		t.Fatal("malformed yaml must be rejected")
	}
	if _, err := FromYAML([]byte("store:\n  base_url: \"\"\n")); err == nil {
		t.Fatal("validation must run on parsed yaml")
	}
}

func TestTimeoutDefault(t *testing.T) {
	var cfg Config
	if cfg.Timeout() != 10*time.Second {
		t.Fatalf("zero timeout should default to 10s, got %v", cfg.Timeout())
	}
}

func TestGenerateDefaultRoundTrips(t *testing.T) {
	cfg, err := FromYAML([]byte(GenerateDefault()))
	if err != nil {
		t.Fatalf("default template must validate: %v", err)
	}
	if cfg.Store.TimeoutSeconds != 10 {
		t.Fatalf("unexpected timeout_seconds: %d", cfg.Store.TimeoutSeconds)
	}
}
