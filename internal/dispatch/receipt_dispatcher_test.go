package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestadero/lending-backend/internal/dto"
)

// fakeWriter records published messages on a channel so tests can wait for
// the asynchronous publish.
type fakeWriter struct {
	messages chan kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	for _, m := range msgs {
		w.messages <- m
	}
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func newTestDispatcher(t *testing.T, writer KafkaWriter) *ReceiptDispatcher {
	t.Helper()
	pool, err := ants.NewPool(1)
	require.NoError(t, err)
	t.Cleanup(pool.Release)

	return &ReceiptDispatcher{
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		writer: writer,
		pool:   pool,
		topic:  "payment.posted",
	}
}

func testReceipt() dto.PaymentReceipt {
	return dto.PaymentReceipt{
		PaymentID:     uuid.NewString(),
		LoanID:        uuid.NewString(),
		Amount:        decimal.NewFromInt(1000),
		Method:        "efectivo",
		PaidWeeks:     []int{1},
		Remaining:     decimal.Zero,
		PaymentDate:   time.Now(),
		AmountDisplay: "1000.00",
	}
}

func TestDispatch_PublishesReceipt(t *testing.T) {
	writer := &fakeWriter{messages: make(chan kafka.Message, 1)}
	d := newTestDispatcher(t, writer)
	receipt := testReceipt()

	accepted := d.Dispatch(context.Background(), receipt)
	require.True(t, accepted)

	select {
	case msg := <-writer.messages:
		assert.Equal(t, receipt.LoanID, string(msg.Key))
		assert.Contains(t, string(msg.Value), receipt.PaymentID)
	case <-time.After(2 * time.Second):
		t.Fatal("receipt was never published")
	}
}

func TestDispatch_PublishFailureStaysBestEffort(t *testing.T) {
	writer := &fakeWriter{messages: make(chan kafka.Message, 1), err: errors.New("broker unavailable")}
	d := newTestDispatcher(t, writer)

	// Submission succeeds even though the publish will fail; the failure is
	// only logged.
	accepted := d.Dispatch(context.Background(), testReceipt())
	assert.True(t, accepted)
}

func TestDispatch_ReleasedPoolRejectsSubmission(t *testing.T) {
	writer := &fakeWriter{messages: make(chan kafka.Message, 1)}
	d := newTestDispatcher(t, writer)
	d.pool.Release()

	accepted := d.Dispatch(context.Background(), testReceipt())
	assert.False(t, accepted)
}
