// Package config implements the configuration resolver (spec §4.7,
// component C8): locating a project's ADRI/config.yaml, applying
// environment variable precedence, and resolving the centralized vs.
// package-local contract path for a given standard name.
//
// Loading follows the teacher's pkg/config/config.go idiom: a single
// resolvable struct populated via github.com/spf13/viper, with an
// optional github.com/joho/godotenv.Load() ahead of it, the same way
// cmd/uds/cmd/root.go binds flags/env through viper.
package config

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// Environment variables recognized (spec §6).
const (
	EnvConfigInline        = "ADRI_CONFIG"
	EnvConfigPath          = "ADRI_CONFIG_PATH"
	EnvConfigFile          = "ADRI_CONFIG_FILE"
	EnvEnvironment         = "ADRI_ENV"
	EnvContractsDir        = "ADRI_CONTRACTS_DIR"
	EnvResolutionStrategy  = "ADRI_RESOLUTION_STRATEGY"
	EnvPackageSubdirectory = "ADRI_PACKAGE_SUBDIRECTORY"
)

// ResolutionStrategy selects how ResolveContractPath finds a standard
// file (spec §4.7).
type ResolutionStrategy string

const (
	StrategyFlat         ResolutionStrategy = "flat"
	StrategyPackageLocal ResolutionStrategy = "package_local"
	StrategyHybrid       ResolutionStrategy = "hybrid"
)

// ProjectConfig names the project ADRI is protecting.
type ProjectConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Version string `mapstructure:"version" yaml:"version"`
}

// PathsConfig declares the four directories a project resolves
// against (spec §4.7).
type PathsConfig struct {
	Contracts    string `mapstructure:"contracts" yaml:"contracts"`
	Assessments  string `mapstructure:"assessments" yaml:"assessments"`
	TrainingData string `mapstructure:"training_data" yaml:"training_data"`
	AuditLogs    string `mapstructure:"audit_logs" yaml:"audit_logs"`
}

// ProtectionConfig carries the protection engine's (C9) defaults.
type ProtectionConfig struct {
	DefaultMinScore    float64 `mapstructure:"default_min_score" yaml:"default_min_score"`
	DefaultFailureMode string  `mapstructure:"default_failure_mode" yaml:"default_failure_mode"`
	CacheDurationHours float64 `mapstructure:"cache_duration_hours" yaml:"cache_duration_hours"`
	AutoGenerate       bool    `mapstructure:"auto_generate" yaml:"auto_generate"`
}

// AssessmentConfig carries assessment-time knobs.
type AssessmentConfig struct {
	MaxSampleRows int `mapstructure:"max_sample_rows" yaml:"max_sample_rows"`
}

// GenerationConfig carries standard-generation defaults (component C5).
type GenerationConfig struct {
	OverallMinimum float64 `mapstructure:"overall_minimum" yaml:"overall_minimum"`
}

// Config is the full resolved configuration document (spec §4.7/§6).
type Config struct {
	Project             ProjectConfig      `mapstructure:"project" yaml:"project"`
	Paths               PathsConfig        `mapstructure:"paths" yaml:"paths"`
	Protection          ProtectionConfig   `mapstructure:"protection" yaml:"protection"`
	Assessment          AssessmentConfig   `mapstructure:"assessment" yaml:"assessment"`
	Generation          GenerationConfig   `mapstructure:"generation" yaml:"generation"`
	ResolutionStrategy  ResolutionStrategy `mapstructure:"resolution_strategy" yaml:"resolution_strategy"`
	PackageSubdirectory string             `mapstructure:"package_subdirectory" yaml:"package_subdirectory"`
}

// Default returns the spec-documented defaults, used both as the seed
// struct viper unmarshals onto and as the config for projects with no
// ADRI/config.yaml at all (spec §7: ConfigNotFound is "recovered if a
// downstream default applies").
func Default() *Config {
	return &Config{
		Project: ProjectConfig{Name: "adri", Version: "1.0.0"},
		Paths: PathsConfig{
			Contracts:    "ADRI/contracts",
			Assessments:  "ADRI/assessments",
			TrainingData: "ADRI/training_data",
			AuditLogs:    "ADRI/audit_logs",
		},
		Protection: ProtectionConfig{
			DefaultMinScore:    75,
			DefaultFailureMode: "raise",
			CacheDurationHours: 1,
			AutoGenerate:       true,
		},
		Assessment:          AssessmentConfig{MaxSampleRows: 1000},
		Generation:          GenerationConfig{OverallMinimum: 75},
		ResolutionStrategy:  StrategyHybrid,
		PackageSubdirectory: "adri",
	}
}

// Load resolves the configuration document in precedence order: the
// inline-YAML env var, an explicit-path env var, a caller-supplied
// path, then auto-discovery walking up from the current directory to
// the user's home looking for ADRI/config.yaml (spec §4.7). If none of
// those produce a document, the spec-documented defaults apply — this
// is not an error, since every field has a usable default.
func Load(explicitPath string) (*Config, error) {
	_ = godotenv.Load() // optional local .env for ADRI_* overrides; absence is not an error

	cfg := Default()
	v := viper.New()
	v.SetConfigType("yaml")

	var err error
	switch {
	case os.Getenv(EnvConfigInline) != "":
		err = v.ReadConfig(strings.NewReader(os.Getenv(EnvConfigInline)))
		if err != nil {
			return nil, &adri.ConfigInvalidError{Path: "$" + EnvConfigInline, Err: err}
		}
	case os.Getenv(EnvConfigPath) != "" || os.Getenv(EnvConfigFile) != "":
		path := os.Getenv(EnvConfigPath)
		if path == "" {
			path = os.Getenv(EnvConfigFile)
		}
		if err := readFile(v, path); err != nil {
			return nil, err
		}
	case explicitPath != "":
		if err := readFile(v, explicitPath); err != nil {
			return nil, err
		}
	default:
		path, found := discover()
		if !found {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		if err := readFile(v, path); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, &adri.ConfigInvalidError{Err: err}
	}
	if err := validatePaths(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func readFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &adri.ConfigNotFoundError{Searched: []string{path}}
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return &adri.ConfigInvalidError{Path: path, Err: err}
	}
	return nil
}

// discover walks up from the current directory to the user's home
// directory looking for ADRI/config.yaml (spec §4.7).
func discover() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	home, _ := os.UserHomeDir()
	for {
		candidate := filepath.Join(dir, "ADRI", "config.yaml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		if dir == home {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

// validatePaths checks that every required path key resolved to a
// non-empty value; missing sections yield a structured rejection
// (spec §4.7).
func validatePaths(cfg *Config) error {
	var missing []string
	if cfg.Paths.Contracts == "" {
		missing = append(missing, "paths.contracts")
	}
	if cfg.Paths.Assessments == "" {
		missing = append(missing, "paths.assessments")
	}
	if cfg.Paths.TrainingData == "" {
		missing = append(missing, "paths.training_data")
	}
	if cfg.Paths.AuditLogs == "" {
		missing = append(missing, "paths.audit_logs")
	}
	if len(missing) > 0 {
		return &adri.ConfigInvalidError{Err: fmt.Errorf("missing required path keys: %s", strings.Join(missing, ", "))}
	}
	return nil
}

// applyEnvOverrides applies the env vars that win over whatever the
// loaded document says (spec §6). ADRI_CONTRACTS_DIR is deliberately
// not folded in here: §4.7 says it "overrides all contract resolution"
// at resolve time, so ResolveContractPath consults it directly instead
// of mutating Paths.Contracts.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvResolutionStrategy); v != "" {
		switch s := ResolutionStrategy(v); s {
		case StrategyFlat, StrategyPackageLocal, StrategyHybrid:
			cfg.ResolutionStrategy = s
		default:
			log.Printf("adri: invalid %s %q, using hybrid", EnvResolutionStrategy, v)
			cfg.ResolutionStrategy = StrategyHybrid
		}
	}
	if v := os.Getenv(EnvPackageSubdirectory); v != "" {
		cfg.PackageSubdirectory = v
	}
}

// CreateDirectoryStructure materializes all declared directories
// (spec §4.7).
func (c *Config) CreateDirectoryStructure() error {
	for _, dir := range []string{c.Paths.Contracts, c.Paths.Assessments, c.Paths.TrainingData, c.Paths.AuditLogs} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: creating directory %q: %w", dir, err)
		}
	}
	return nil
}
