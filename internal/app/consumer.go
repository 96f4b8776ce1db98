package app

import (
	"sync"

	"go-hrcore/internal/events"
	"go-hrcore/internal/leave"
	"go-hrcore/internal/messaging/kafka/consumer"
	"go-hrcore/internal/shared/config"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func newReader(cfg config.Config, topic, group string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          topic,
		GroupID:        cfg.KafkaGroupID + "-" + group,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

// RunConsumer seeds leave balances for new employees and, when object
// storage is configured, renders requested pay stubs.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return errKafkaBrokerMissing
	}

	ctx, stop := untilSignal()
	defer stop()

	deps, closers, err := connectInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer (&App{closers: closers}).Close()

	leaveService := leave.NewService(deps.db, leave.NewRepository(deps.gormDB), logger)

	var wg sync.WaitGroup

	lifecycleReader := newReader(cfg, events.EmployeeCreatedTopic, "leave-balance")
	defer lifecycleReader.Close()
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, leaveService, logger)
	}()

	if deps.documents != nil {
		payrollService := newPayrollService(deps)
		renderReader := newReader(cfg, events.PayStubRenderRequestedTopic, "pay-stub-render")
		defer renderReader.Close()
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumer.ConsumePayStubRenderRequested(ctx, renderReader, payrollService, logger)
		}()
	} else {
		logger.Warn("pay stub render consumer disabled, object storage not configured")
	}

	<-ctx.Done()
	logger.Info("consumer shutting down")
	wg.Wait()

	return nil
}
