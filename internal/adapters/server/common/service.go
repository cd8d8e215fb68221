// Package common defines the store-facing surface shared by the server
// transports.
package common

import (
	"context"

	"github.com/hylla/syssla/internal/domain"
)

// TodoService is the slice of the application store the server transports
// need. *app.Store satisfies it.
type TodoService interface {
	Items() []domain.Item
	Get(id string) (domain.Item, bool)
	Create(ctx context.Context, text string) (domain.Item, error)
	Update(ctx context.Context, item domain.Item) (domain.Item, error)
	Remove(ctx context.Context, id string) error
	Stats() domain.Stats
}
