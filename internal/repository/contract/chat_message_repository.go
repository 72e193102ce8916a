package contract

import (
	"context"

	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/repository/specification"
)

// ChatMessageRepository is insert-only on purpose.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
