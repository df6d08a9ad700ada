package interfaces

import "context"

// INotifier delivers a short text message to a phone number.
type INotifier interface {
	Send(ctx context.Context, to, body string) error
}
