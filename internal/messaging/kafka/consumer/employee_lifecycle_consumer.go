package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hrcore/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type LeaveBalanceSeeder interface {
	SeedBalances(ctx context.Context, companyID, employeeID string, year int) (int, error)
}

// ConsumeEmployeeLifecycle opens leave balances for newly created employees.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	seeder LeaveBalanceSeeder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")

	run(ctx, reader, log, func(ctx context.Context, log *zap.Logger, msg kafkago.Message) error {
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode employee_created: %v", errPoison, err)
		}
		if event.EventType != "" && event.EventType != events.EmployeeCreatedEventType {
			return nil
		}

		created, err := seeder.SeedBalances(ctx, event.CompanyID, event.EmployeeID, event.HireYear)
		if err != nil {
			return err
		}

		log.Info("leave balances seeded from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
			zap.Int("year", event.HireYear),
			zap.Int("created", created),
		)
		return nil
	})
}
