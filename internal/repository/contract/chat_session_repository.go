package contract

import (
	"context"
	"time"

	"promptlycoach-be/internal/entity"
	"promptlycoach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	// MarkEnded moves an active session to ended. It reports false when the session
	// was already ended or does not exist.
	MarkEnded(ctx context.Context, id uuid.UUID, endedAt time.Time) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
