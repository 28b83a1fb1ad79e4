package planning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Months != 12 || cfg.MaxAttemptsPerMonth != 5 || !cfg.RejectStructuralFailures {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.GenerationTemperature != 0.7 || cfg.MaxTaskWords != 1000 {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
}

func TestLoadConfigFileOverlays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	body := "max_attempts_per_month: 2\nreject_structural_failures: false\nvalidation_model: \" gpt-4o \"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfigFile(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.MaxAttemptsPerMonth != 2 || cfg.RejectStructuralFailures {
		t.Fatalf("overlay not applied: %#v", cfg)
	}
	if cfg.Months != 12 || cfg.MaxTaskWords != 1000 {
		t.Fatalf("base values lost: %#v", cfg)
	}
	if cfg.ValidationModel != "gpt-4o" {
		t.Fatalf("model not trimmed: %q", cfg.ValidationModel)
	}
}

func TestLoadConfigFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	if err := os.WriteFile(path, []byte("months: 13\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfigFile(path, DefaultConfig()); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"), DefaultConfig()); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PLAN_MAX_ATTEMPTS_PER_MONTH", "3")
	t.Setenv("PLAN_MONTHS", "6")
	t.Setenv("PLANNER_CONFIG_PATH", "")
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.MaxAttemptsPerMonth != 3 || cfg.Months != 6 {
		t.Fatalf("env not applied: %#v", cfg)
	}
}
