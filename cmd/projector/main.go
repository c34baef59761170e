package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/restopro-backoffice/internal/activity"
	"github.com/ariefcatur/restopro-backoffice/internal/config"
	kafkax "github.com/ariefcatur/restopro-backoffice/internal/kafka"
	"github.com/ariefcatur/restopro-backoffice/internal/logging"
	"github.com/ariefcatur/restopro-backoffice/internal/orders"
	"github.com/ariefcatur/restopro-backoffice/internal/redisx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	name := cfg.ServiceName + "-projector"
	log, err := logging.New(name, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	p := &activity.Projector{
		Redis:       rdb,
		Feed:        &redisx.ActivityFeed{R: rdb},
		ServiceName: name,
		Log:         log,
	}

	// Consumer
	topics := []string{orders.TopicOrderCreated, orders.TopicOrderStatusChanged, orders.TopicPaymentCompleted}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.ActivityGroup, topics, cfg.ActivityWorkers, log)

	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Info("activity consumer started",
			zap.String("group", cfg.ActivityGroup), zap.Strings("topics", topics), zap.Int("workers", cfg.ActivityWorkers))
		if err := cons.Start(ctx, p.HandleMessage); err != nil {
			log.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down consumer...")
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}
