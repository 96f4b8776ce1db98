package events

import "time"

const (
	PayStubRenderRequestedTopic     = "hr.payroll.paystub.render.v1"
	PayStubRenderRequestedEventType = "pay_stub_render_requested"

	PayrollCycleProcessedTopic     = "hr.payroll.cycle.processed.v1"
	PayrollCycleProcessedEventType = "payroll_cycle_processed"
)

type PayStubRenderRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PayStubID   string    `json:"pay_stub_id"`
	CycleID     string    `json:"payroll_cycle_id"`
	CompanyID   string    `json:"company_id"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type PayrollCycleProcessedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	CycleID        string    `json:"payroll_cycle_id"`
	CompanyID      string    `json:"company_id"`
	CycleName      string    `json:"cycle_name"`
	TotalEmployees int       `json:"total_employees"`
	TotalNet       int64     `json:"total_net"`
	ProcessedBy    string    `json:"processed_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
