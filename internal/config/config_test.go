package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	cfg := Load()
	if cfg.HTTPAddr != ":8081" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.PaymentDelay != 1500*time.Millisecond {
		t.Errorf("PaymentDelay = %v", cfg.PaymentDelay)
	}
	if !cfg.PersistStatus || !cfg.SeedDemo {
		t.Errorf("PersistStatus=%v SeedDemo=%v", cfg.PersistStatus, cfg.SeedDemo)
	}
	if cfg.EventBroker != "kafka" {
		t.Errorf("EventBroker = %q", cfg.EventBroker)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("PAYMENT_DELAY", "0s")
	t.Setenv("PERSIST_STATUS", "false")
	t.Setenv("EVENT_BROKER", "AMQP")
	t.Setenv("ACTIVITY_WORKERS", "2")

	cfg := Load()
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if cfg.PaymentDelay != 0 {
		t.Errorf("PaymentDelay = %v", cfg.PaymentDelay)
	}
	if cfg.PersistStatus {
		t.Error("PersistStatus should be false")
	}
	if cfg.EventBroker != "amqp" {
		t.Errorf("EventBroker = %q", cfg.EventBroker)
	}
	if cfg.ActivityWorkers != 2 {
		t.Errorf("ActivityWorkers = %d", cfg.ActivityWorkers)
	}
}
