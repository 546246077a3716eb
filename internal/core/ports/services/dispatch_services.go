package services

import (
	"context"

	"github.com/prestadero/lending-backend/internal/dto"
)

// ReceiptDispatcher publishes payment receipts after commit. Delivery is best
// effort; the return value only says whether the receipt was accepted for
// dispatch, never fails the payment.
type ReceiptDispatcher interface {
	Dispatch(ctx context.Context, receipt dto.PaymentReceipt) bool
	Close()
}
