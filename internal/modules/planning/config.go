package planning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/careercompass-backend/internal/platform/envutil"
)

// Config holds the loop knobs. It is built once and shared read-only by every run.
type Config struct {
	Months                   int     `yaml:"months"`
	MaxAttemptsPerMonth      int     `yaml:"max_attempts_per_month"`
	RejectStructuralFailures bool    `yaml:"reject_structural_failures"`
	GenerationTemperature    float64 `yaml:"generation_temperature"`
	MaxTaskWords             int     `yaml:"max_task_words"`
	GenerationModel          string  `yaml:"generation_model"`
	ValidationModel          string  `yaml:"validation_model"`
}

func DefaultConfig() Config {
	return Config{
		Months:                   12,
		MaxAttemptsPerMonth:      5,
		RejectStructuralFailures: true,
		GenerationTemperature:    0.7,
		MaxTaskWords:             1000,
	}
}

func (c Config) Validate() error {
	if c.Months < 1 || c.Months > 12 {
		return fmt.Errorf("planning config: months must be in [1,12], got %d", c.Months)
	}
	if c.MaxAttemptsPerMonth < 1 {
		return fmt.Errorf("planning config: max_attempts_per_month must be >= 1, got %d", c.MaxAttemptsPerMonth)
	}
	if c.GenerationTemperature < 0 || c.GenerationTemperature > 2 {
		return fmt.Errorf("planning config: generation_temperature must be in [0,2], got %v", c.GenerationTemperature)
	}
	if c.MaxTaskWords < 1 {
		return fmt.Errorf("planning config: max_task_words must be >= 1, got %d", c.MaxTaskWords)
	}
	return nil
}

// LoadConfigFile overlays the YAML file at path onto base. Keys absent from
// the file keep their base value.
func LoadConfigFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read planning config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse planning config %s: %w", path, err)
	}
	cfg.GenerationModel = strings.TrimSpace(cfg.GenerationModel)
	cfg.ValidationModel = strings.TrimSpace(cfg.ValidationModel)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv starts from DefaultConfig, applies PLAN_* variables, then the
// file named by PLANNER_CONFIG_PATH when set.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.Months = envutil.Int("PLAN_MONTHS", cfg.Months)
	cfg.MaxAttemptsPerMonth = envutil.Int("PLAN_MAX_ATTEMPTS_PER_MONTH", cfg.MaxAttemptsPerMonth)
	cfg.RejectStructuralFailures = envutil.Bool("PLAN_REJECT_STRUCTURAL_FAILURES", cfg.RejectStructuralFailures)
	cfg.GenerationTemperature = envutil.Float("PLAN_GENERATION_TEMPERATURE", cfg.GenerationTemperature)
	cfg.MaxTaskWords = envutil.Int("PLAN_MAX_TASK_WORDS", cfg.MaxTaskWords)
	cfg.GenerationModel = envutil.String("PLAN_GENERATION_MODEL", "")
	cfg.ValidationModel = envutil.String("PLAN_VALIDATION_MODEL", "")

	if path := envutil.String("PLANNER_CONFIG_PATH", ""); path != "" {
		return LoadConfigFile(path, cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
