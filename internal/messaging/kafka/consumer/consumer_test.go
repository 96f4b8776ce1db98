package consumer

import (
	"context"
	"errors"
	"testing"

	"go-hrcore/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	messages  []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type fakeSeeder struct {
	calls []string
	err   error
}

func (s *fakeSeeder) SeedBalances(_ context.Context, companyID, employeeID string, year int) (int, error) {
	s.calls = append(s.calls, companyID+"/"+employeeID)
	return 2, s.err
}

type fakeRenderer struct {
	err error
}

func (r *fakeRenderer) RenderPayStub(_ context.Context, _, payStubID string) (string, error) {
	return "pay-stubs/" + payStubID + ".pdf", r.err
}

func newReader(msgs ...kafkago.Message) (*fakeReader, context.Context) {
	ctx, cancel := context.WithCancel(context.Background())
	return &fakeReader{messages: msgs, cancel: cancel}, ctx
}

func TestConsumeEmployeeLifecycle(t *testing.T) {
	reader, ctx := newReader(
		kafkago.Message{Offset: 1, Value: []byte(`{"event_type":"employee_created","employee_id":"emp-1","company_id":"c-1","hire_year":2025}`)},
		kafkago.Message{Offset: 2, Value: []byte(`not-json`)},
	)
	seeder := &fakeSeeder{}

	ConsumeEmployeeLifecycle(ctx, reader, seeder, zap.NewNop())

	assert.Equal(t, []string{"c-1/emp-1"}, seeder.calls)
	assert.Equal(t, []int64{1, 2}, reader.committed)
}

func TestConsumeEmployeeLifecycle_TransientErrorLeavesUncommitted(t *testing.T) {
	reader, ctx := newReader(
		kafkago.Message{Offset: 7, Value: []byte(`{"employee_id":"emp-1","company_id":"c-1","hire_year":2025}`)},
	)
	seeder := &fakeSeeder{err: errors.New("db down")}

	ConsumeEmployeeLifecycle(ctx, reader, seeder, zap.NewNop())

	assert.Empty(t, reader.committed)
}

func TestConsumePayStubRenderRequested_NotFoundIsDropped(t *testing.T) {
	reader, ctx := newReader(
		kafkago.Message{Offset: 3, Value: []byte(`{"pay_stub_id":"stub-1","company_id":"c-1"}`)},
	)
	renderer := &fakeRenderer{err: apperror.New(apperror.CodeNotFound, "Pay stub not found", 404)}

	ConsumePayStubRenderRequested(ctx, reader, renderer, zap.NewNop())

	assert.Equal(t, []int64{3}, reader.committed)
}

func TestConsumePayStubRenderRequested_StorageFailureIsRetried(t *testing.T) {
	reader, ctx := newReader(
		kafkago.Message{Offset: 4, Value: []byte(`{"pay_stub_id":"stub-2","company_id":"c-1"}`)},
	)
	storageErr := apperror.Wrap(errors.New("connection reset"), apperror.CodeServiceUnavailable, "document storage request failed", 503)
	renderer := &fakeRenderer{err: storageErr}

	ConsumePayStubRenderRequested(ctx, reader, renderer, zap.NewNop())

	assert.Empty(t, reader.committed)
}

func TestHeader(t *testing.T) {
	msg := kafkago.Message{Headers: []kafkago.Header{{Key: "request_id", Value: []byte("rid-9")}}}

	assert.Equal(t, "rid-9", header(msg, "request_id"))
	assert.Empty(t, header(msg, "missing"))
}
