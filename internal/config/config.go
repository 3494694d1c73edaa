// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Mode determines whether the service uses local stub storage or real
// AWS/Temporal backends.
type Mode string

const (
	ModeStub       Mode = "stub"
	ModeProduction Mode = "production"
)

// Config holds all application configuration.
type Config struct {
	Mode        Mode
	FixturesDir string

	// Case store.
	DatabasePath string

	// Evidence/document storage.
	AWSRegion        string
	AWSProfile       string
	CrossAccountRole string
	EvidenceBucket   string
	EvidenceDir      string // stub mode root

	// Temporal.
	TemporalHostPort  string
	TemporalNamespace string

	// Auth.
	OIDCIssuer   string
	OIDCAudience string

	// API server settings.
	APIPort     string
	CORSOrigins []string

	// Worker settings: comma-separated queue names ("generation,delivery").
	Queues string

	// Observability.
	LogLevel    string
	OTelEnabled bool

	// Anti-automation budget: answers per case per minute.
	AnswerBudget int
}

// OIDCEnabled reports whether the API should enforce OIDC authentication.
func (c Config) OIDCEnabled() bool {
	return c.OIDCIssuer != ""
}

// LoadFromEnv reads configuration from environment variables with sensible defaults.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		Mode:              Mode(envOr("WIZARD_MODE", "stub")),
		FixturesDir:       os.Getenv("FIXTURES_DIR"),
		DatabasePath:      envOr("WIZARD_DB_PATH", "data/wizard.db"),
		AWSRegion:         envOr("AWS_REGION", "eu-west-2"),
		AWSProfile:        os.Getenv("AWS_PROFILE"),
		CrossAccountRole:  os.Getenv("WIZARD_CROSS_ACCOUNT_ROLE"),
		EvidenceBucket:    os.Getenv("WIZARD_EVIDENCE_BUCKET"),
		EvidenceDir:       envOr("WIZARD_EVIDENCE_DIR", "data/evidence"),
		TemporalHostPort:  envOr("TEMPORAL_HOST_PORT", "localhost:7233"),
		TemporalNamespace: envOr("TEMPORAL_NAMESPACE", "default"),
		OIDCIssuer:        os.Getenv("WIZARD_OIDC_ISSUER"),
		OIDCAudience:      envOr("WIZARD_OIDC_AUDIENCE", "wizard-api"),
		APIPort:           envOr("WIZARD_API_PORT", "8080"),
		CORSOrigins:       parseCORSOrigins(os.Getenv("WIZARD_CORS_ORIGINS")),
		Queues:            envOr("WIZARD_QUEUES", "generation"),
		LogLevel:          envOr("WIZARD_LOG_LEVEL", "info"),
		OTelEnabled:       os.Getenv("WIZARD_OTEL_ENABLED") == "true",
		AnswerBudget:      60,
	}

	if cfg.Mode != ModeStub && cfg.Mode != ModeProduction {
		return Config{}, fmt.Errorf("config: invalid WIZARD_MODE %q (must be stub or production)", cfg.Mode)
	}

	if cfg.Mode == ModeProduction {
		if cfg.EvidenceBucket == "" {
			return Config{}, fmt.Errorf("config: WIZARD_EVIDENCE_BUCKET required in production mode")
		}
		if cfg.OIDCIssuer == "" {
			return Config{}, fmt.Errorf("config: WIZARD_OIDC_ISSUER required in production mode")
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseCORSOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(o); t != "" {
			origins = append(origins, t)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
