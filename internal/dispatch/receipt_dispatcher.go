// Package dispatch publishes payment receipts to downstream consumers
// (receipt rendering, customer notifications). Delivery is best effort:
// a dispatch failure is logged and reported as a flag, never as an error.
package dispatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/segmentio/kafka-go"

	portssvc "github.com/prestadero/lending-backend/internal/core/ports/services"
	"github.com/prestadero/lending-backend/internal/dto"
)

const publishTimeout = 5 * time.Second

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ReceiptDispatcher fans payment receipts out to a Kafka topic through a
// bounded goroutine pool, so publishing never blocks the payment response.
type ReceiptDispatcher struct {
	logger *slog.Logger
	writer KafkaWriter
	pool   *ants.Pool
	topic  string
}

// NewReceiptDispatcher creates a dispatcher with its own worker pool. The
// returned dispatcher owns the writer and the pool; Close releases both.
func NewReceiptDispatcher(logger *slog.Logger, brokers []string, topic string, workers int) (*ReceiptDispatcher, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: publishTimeout,
	}

	return &ReceiptDispatcher{
		logger: logger,
		writer: writer,
		pool:   pool,
		topic:  topic,
	}, nil
}

var _ portssvc.ReceiptDispatcher = (*ReceiptDispatcher)(nil)

// Dispatch submits the receipt for asynchronous publishing. The return value
// reports whether the receipt was accepted for dispatch; the publish itself
// happens on a pool worker and logs its own outcome.
func (d *ReceiptDispatcher) Dispatch(ctx context.Context, receipt dto.PaymentReceipt) bool {
	payload, err := json.Marshal(receipt)
	if err != nil {
		d.logger.Error("Failed to marshal payment receipt",
			slog.String("payment_id", receipt.PaymentID),
			slog.String("error", err.Error()),
		)
		return false
	}

	err = d.pool.Submit(func() {
		// The request context ends when the HTTP response is written; publish
		// on a detached context with its own timeout instead.
		pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		msg := kafka.Message{
			Key:   []byte(receipt.LoanID),
			Value: payload,
		}
		if err := d.writer.WriteMessages(pubCtx, msg); err != nil {
			d.logger.Error("Failed to publish payment receipt",
				slog.String("topic", d.topic),
				slog.String("payment_id", receipt.PaymentID),
				slog.String("error", err.Error()),
			)
			return
		}
		d.logger.Info("Payment receipt published",
			slog.String("topic", d.topic),
			slog.String("payment_id", receipt.PaymentID),
		)
	})
	if err != nil {
		d.logger.Error("Failed to submit receipt to worker pool",
			slog.String("payment_id", receipt.PaymentID),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// Close releases the worker pool and the Kafka writer.
func (d *ReceiptDispatcher) Close() {
	d.pool.Release()
	if err := d.writer.Close(); err != nil {
		d.logger.Error("Failed to close receipt writer", slog.String("error", err.Error()))
	}
}
