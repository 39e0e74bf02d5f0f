package usecases

import (
	"context"

	"maisquecardapio.backend/internal/infrastructure/messaging"
)

// Notifier accepts outbound messages without blocking the caller
type Notifier interface {
	Enqueue(ctx context.Context, msg messaging.Message) bool
}
