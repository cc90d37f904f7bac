package notify

import "context"

// Notifier delivers one fully formatted message. Delivery is best-effort:
// callers log failures but never roll back state because of them.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

type Multi []Notifier

func (m Multi) Send(ctx context.Context, text string) error {
	var firstErr error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Send(ctx, text); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
