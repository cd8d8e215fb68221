package app

import (
	"context"

	"github.com/hylla/syssla/internal/domain"
)

// Remote represents the remote todo collection endpoint used by the networked
// store variant. A nil Remote selects the purely local variant.
type Remote interface {
	ListTodos(context.Context) ([]domain.Item, error)
	CreateTodo(context.Context, domain.Item) (domain.Item, error)
	UpdateTodo(context.Context, domain.Item) (domain.Item, error)
	DeleteTodo(context.Context, string) (domain.Item, error)
}
