package notify

import (
	"context"
	"log/slog"
	"time"
)

// Registration describes a newly created account.
type Registration struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// Notifier delivers a registration confirmation. Implementations may block;
// callers go through a Dispatcher.
type Notifier interface {
	SendRegistration(ctx context.Context, reg Registration) error
}

// LogNotifier records the confirmation in the log instead of sending it.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendRegistration(_ context.Context, reg Registration) error {
	slog.Info("registration confirmation", "user_id", reg.UserID, "email", reg.Email, "name", reg.Name)
	return nil
}
