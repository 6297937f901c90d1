package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	TemporalHost      string
	TemporalTaskQueue string

	// RecommenderURL points at the external distributor-recommendation
	// service. Empty means the oracle is disabled and the API serves
	// "no recommendation".
	RecommenderURL string

	OTelServiceName string
	OTelEndpoint    string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		TemporalHost:      getEnv("TEMPORAL_HOST", "localhost:7233"),
		TemporalTaskQueue: getEnv("TEMPORAL_TASK_QUEUE", "pool-dispatch"),
		RecommenderURL:    getEnv("RECOMMENDER_URL", ""),
		OTelServiceName:   getEnv("OTEL_SERVICE_NAME", "graminroute-hub-api"),
		OTelEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
