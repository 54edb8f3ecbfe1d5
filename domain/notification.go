package domain

import (
	"context"
	"time"
)

type NotificationAuthor struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// Notification is broadcast to every user. It is never mutated after creation;
// per-user read state lives on the user row, not here.
type Notification struct {
	ID        string             `json:"id"`
	Title     string             `json:"title" valid:"required~Title is required"`
	Body      string             `json:"body" valid:"required~Body is required"`
	Author    NotificationAuthor `json:"author"`
	CreatedAt time.Time          `json:"created_at"`
}

// UserNotification is a notification joined with the requesting user's read
// state. The join is computed at read time from the user's read-id set.
type UserNotification struct {
	Notification
	IsRead bool `json:"is_read"`
}

type NotificationRepo interface {
	CreateNotification(ctx context.Context, notification *Notification) error
	GetAllNotifications(ctx context.Context) (*[]Notification, error)
	DeleteNotification(ctx context.Context, id string) error

	GetReadNotificationIDs(ctx context.Context, userID int) ([]string, error)
	SaveReadNotificationIDs(ctx context.Context, userID int, ids []string) error
}

type NotificationUseCase interface {
	CreateNotification(ctx context.Context, notification *Notification) error
	DeleteNotification(ctx context.Context, id string) error
	GetNotificationsForUser(ctx context.Context, userID int) (*[]UserNotification, int, error)
	MarkAsRead(ctx context.Context, userID int, ids []string) error
}
