package consumer

import (
	"context"
	"errors"

	"go-hrcore/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type handlerFunc func(ctx context.Context, log *zap.Logger, msg kafkago.Message) error

// errPoison marks a message that can never be handled and must be committed.
var errPoison = errors.New("poison message")

func run(ctx context.Context, reader MessageReader, log *zap.Logger, handle handlerFunc) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		msgLog := log.With(
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.String("request_id", header(msg, "request_id")),
		)

		if err := handle(ctx, msgLog, msg); err != nil {
			if !isPermanent(err) {
				msgLog.Error("handle message failed, leaving uncommitted", zap.Error(err))
				continue
			}
			msgLog.Warn("dropping message", zap.Error(err))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			msgLog.Error("commit message failed", zap.Error(err))
		}
	}
}

// isPermanent reports whether retrying err can never succeed.
func isPermanent(err error) bool {
	return errors.Is(err, errPoison) || !apperror.Retryable(err)
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
