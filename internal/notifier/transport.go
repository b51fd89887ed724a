package notifier

import (
	"context"
	"fmt"
	"log"

	"StockPulse/internal/model"
)

// Transport delivers one message body to the configured recipient and
// returns the provider's reported status.
type Transport interface {
	Send(ctx context.Context, body string) (status string, err error)
	Name() string
}

// Receipt confirms one accepted message.
type Receipt struct {
	Index  int // 1-based position in the batch
	Status string
}

// SendAll dispatches messages in order. The first failure aborts the batch;
// messages already accepted are returned alongside the error.
func SendAll(ctx context.Context, t Transport, messages []model.OutboundMessage) ([]Receipt, error) {
	receipts := make([]Receipt, 0, len(messages))
	for i, msg := range messages {
		if err := ctx.Err(); err != nil {
			return receipts, fmt.Errorf("send message %d of %d: %w", i+1, len(messages), err)
		}
		status, err := t.Send(ctx, string(msg))
		if err != nil {
			return receipts, fmt.Errorf("send message %d of %d via %s: %w", i+1, len(messages), t.Name(), err)
		}
		log.Printf("[INFO] message sent: %s", status)
		receipts = append(receipts, Receipt{Index: i + 1, Status: status})
	}
	return receipts, nil
}

// LogTransport writes messages to the log instead of sending them.
type LogTransport struct{}

func (LogTransport) Name() string { return "dry-run" }

func (LogTransport) Send(_ context.Context, body string) (string, error) {
	log.Printf("[INFO] dry-run message:\n%s", body)
	return "dry-run", nil
}
