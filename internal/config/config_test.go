package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "DATABASE_URL", "KAFKA_BROKERS", "KAFKA_TOPIC_ALERTS", "BASE_QUALITY_SCORE", "BASE_RISK_SCORE", "UNIT_VALUE_IDR"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "quality.alerts", cfg.KafkaTopicAlerts)
	assert.Equal(t, 0.8, cfg.BaseQualityScore)
	assert.Equal(t, 0.1, cfg.BaseRiskScore)
	assert.Equal(t, 10000.0, cfg.UnitValueIDR)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")
	t.Setenv("UNIT_VALUE_IDR", "2500")
	t.Setenv("BASE_RISK_SCORE", "not-a-number")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2500.0, cfg.UnitValueIDR)
	assert.Equal(t, 0.1, cfg.BaseRiskScore)
}
