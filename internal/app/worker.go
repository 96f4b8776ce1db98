package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go-hrcore/internal/messaging/kafka"
	"go-hrcore/internal/messaging/kafka/producer"
	"go-hrcore/internal/shared/config"
	"go-hrcore/internal/shared/connection"

	"go.uber.org/zap"
)

var errKafkaBrokerMissing = errors.New("KAFKA_BROKER is required")

// untilSignal returns a context cancelled on SIGINT/SIGTERM.
func untilSignal() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// RunWorker relays outbox rows (employee lifecycle, pay-stub render requests,
// processed cycles) to Kafka until the process is signalled.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")
	if cfg.KafkaBroker == "" {
		return errKafkaBrokerMissing
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.DBRetries)
	if err != nil {
		return err
	}
	defer writer.Close()

	ctx, stop := untilSignal()
	defer stop()

	// returns once ctx is cancelled
	producer.ProcessOutboxEvents(ctx, kafka.NewOutboxRepository(sqlDB), writer, logger, cfg.OutboxPollInterval)

	logger.Info("worker shut down")
	return nil
}
