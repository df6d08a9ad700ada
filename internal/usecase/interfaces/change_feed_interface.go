package interfaces

import (
	"context"
	"instala_control/internal/domain/entities"
)

// IChangeFeed carries "collection changed" notifications from writers to
// live subscribers.
//
// Subscribe returns a channel that is closed when ctx ends.
type IChangeFeed interface {
	Publish(ctx context.Context, ev entities.ChangeEvent) error
	Subscribe(ctx context.Context, userID string) (<-chan entities.ChangeEvent, error)
}
