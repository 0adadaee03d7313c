package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string

	KafkaTopicCampaignCreated      string
	KafkaTopicPledgeAccountCreated string
	KafkaTopicPledged              string
	KafkaTopicUnpledged            string
	KafkaTopicClaimed              string

	JWTSecret string

	MinimumGoal   int64
	BaseUnitScale int

	MaxDBConns         int32
	IdempotencyTTL     time.Duration
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL                    string   `yaml:"postgres_url"`
		RedisURL                       string   `yaml:"redis_url"`
		KafkaBrokers                   []string `yaml:"kafka_brokers"`
		KafkaTopicCampaignCreated      string   `yaml:"kafka_topic_campaign_created"`
		KafkaTopicPledgeAccountCreated string   `yaml:"kafka_topic_pledge_account_created"`
		KafkaTopicPledged              string   `yaml:"kafka_topic_pledged"`
		KafkaTopicUnpledged            string   `yaml:"kafka_topic_unpledged"`
		KafkaTopicClaimed              string   `yaml:"kafka_topic_claimed"`
	} `yaml:"dependencies"`
	Crowdfund struct {
		MinimumGoal   int64 `yaml:"minimum_goal"`
		BaseUnitScale int   `yaml:"base_unit_scale"`
	} `yaml:"crowdfund"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:                      "Crowdfund-Ledger-Service",
		HTTPPort:                       8080,
		GRPCPort:                       9090,
		KafkaTopicCampaignCreated:      "crowdfund.campaign_created",
		KafkaTopicPledgeAccountCreated: "crowdfund.pledge_account_created",
		KafkaTopicPledged:              "crowdfund.pledged",
		KafkaTopicUnpledged:            "crowdfund.unpledged",
		KafkaTopicClaimed:              "crowdfund.claimed",
		MinimumGoal:                    1_000_000_000,
		BaseUnitScale:                  9,
		MaxDBConns:                     20,
		IdempotencyTTL:                 7 * 24 * time.Hour,
		OutboxPollInterval:             2 * time.Second,
		OutboxBatchSize:                100,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopicCampaignCreated != "" {
			cfg.KafkaTopicCampaignCreated = f.Dependencies.KafkaTopicCampaignCreated
		}
		if f.Dependencies.KafkaTopicPledgeAccountCreated != "" {
			cfg.KafkaTopicPledgeAccountCreated = f.Dependencies.KafkaTopicPledgeAccountCreated
		}
		if f.Dependencies.KafkaTopicPledged != "" {
			cfg.KafkaTopicPledged = f.Dependencies.KafkaTopicPledged
		}
		if f.Dependencies.KafkaTopicUnpledged != "" {
			cfg.KafkaTopicUnpledged = f.Dependencies.KafkaTopicUnpledged
		}
		if f.Dependencies.KafkaTopicClaimed != "" {
			cfg.KafkaTopicClaimed = f.Dependencies.KafkaTopicClaimed
		}
		if f.Crowdfund.MinimumGoal > 0 {
			cfg.MinimumGoal = f.Crowdfund.MinimumGoal
		}
		if f.Crowdfund.BaseUnitScale > 0 {
			cfg.BaseUnitScale = f.Crowdfund.BaseUnitScale
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopicCampaignCreated = envOrDefault("KAFKA_TOPIC_CAMPAIGN_CREATED", cfg.KafkaTopicCampaignCreated)
	cfg.KafkaTopicPledgeAccountCreated = envOrDefault("KAFKA_TOPIC_PLEDGE_ACCOUNT_CREATED", cfg.KafkaTopicPledgeAccountCreated)
	cfg.KafkaTopicPledged = envOrDefault("KAFKA_TOPIC_PLEDGED", cfg.KafkaTopicPledged)
	cfg.KafkaTopicUnpledged = envOrDefault("KAFKA_TOPIC_UNPLEDGED", cfg.KafkaTopicUnpledged)
	cfg.KafkaTopicClaimed = envOrDefault("KAFKA_TOPIC_CLAIMED", cfg.KafkaTopicClaimed)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.MinimumGoal = envInt64("MINIMUM_GOAL", cfg.MinimumGoal)
	cfg.BaseUnitScale = envInt("BASE_UNIT_SCALE", cfg.BaseUnitScale)
	cfg.IdempotencyTTL = time.Duration(envInt("IDEMPOTENCY_TTL_HOURS", int(cfg.IdempotencyTTL.Hours()))) * time.Hour
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("missing JWT_SECRET")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envInt64(name string, fallback int64) int64 {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
