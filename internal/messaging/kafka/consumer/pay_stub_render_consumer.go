package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hrcore/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type PayStubRenderer interface {
	RenderPayStub(ctx context.Context, companyID, payStubID string) (string, error)
}

// ConsumePayStubRenderRequested renders pay stub PDFs into object storage.
func ConsumePayStubRenderRequested(
	ctx context.Context,
	reader MessageReader,
	renderer PayStubRenderer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.pay_stub_render")

	run(ctx, reader, log, func(ctx context.Context, log *zap.Logger, msg kafkago.Message) error {
		var event events.PayStubRenderRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode pay_stub_render_requested: %v", errPoison, err)
		}

		objectKey, err := renderer.RenderPayStub(ctx, event.CompanyID, event.PayStubID)
		if err != nil {
			return err
		}

		log.Info("pay stub rendered",
			zap.String("pay_stub_id", event.PayStubID),
			zap.String("company_id", event.CompanyID),
			zap.String("object_key", objectKey),
		)
		return nil
	})
}
