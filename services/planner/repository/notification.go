package repository

import (
	"context"
	"fmt"
	"time"

	"sinifplanim/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(database *pgxpool.Pool) domain.NotificationRepo {
	return &notificationRepository{
		db: database,
	}
}

func (nr *notificationRepository) CreateNotification(ctx context.Context, notification *domain.Notification) error {
	query := `
		INSERT INTO notifications (id, title, body, author_uid, author_name, author_avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	now := time.Now()
	_, err := nr.db.Exec(ctx, query,
		notification.ID, notification.Title, notification.Body,
		notification.Author.UID, notification.Author.Name, notification.Author.AvatarURL, now)
	if err != nil {
		return fmt.Errorf("could not insert notification: %v", err)
	}

	notification.CreatedAt = now
	return nil
}

// GetAllNotifications returns the broadcast list newest-first.
func (nr *notificationRepository) GetAllNotifications(ctx context.Context) (*[]domain.Notification, error) {
	query := `
		SELECT id, title, body, author_uid, author_name, author_avatar_url, created_at
		FROM notifications
		ORDER BY created_at DESC;
	`

	rows, err := nr.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not get all notifications: %v", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.Author.UID, &n.Author.Name, &n.Author.AvatarURL, &n.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan notification: %v", err)
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %v", err)
	}

	return &notifications, nil
}

// DeleteNotification removes the broadcast row. Per-user read sets keep the
// stale id; it simply never matches again.
func (nr *notificationRepository) DeleteNotification(ctx context.Context, id string) error {
	query := `
		DELETE FROM notifications
		WHERE id = $1;
	`

	_, err := nr.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("could not delete notification: %v", err)
	}

	return nil
}

func (nr *notificationRepository) GetReadNotificationIDs(ctx context.Context, userID int) ([]string, error) {
	query := `
		SELECT read_notification_ids FROM users
		WHERE user_id = $1 AND deleted_at IS NULL;
	`

	var ids []string
	err := nr.db.QueryRow(ctx, query, userID).Scan(&ids)
	if err != nil {
		return nil, fmt.Errorf("could not get read notification ids: %v", err)
	}

	return ids, nil
}

func (nr *notificationRepository) SaveReadNotificationIDs(ctx context.Context, userID int, ids []string) error {
	query := `
		UPDATE users
		SET read_notification_ids = $1
		WHERE user_id = $2 AND deleted_at IS NULL;
	`

	_, err := nr.db.Exec(ctx, query, ids, userID)
	if err != nil {
		return fmt.Errorf("could not save read notification ids: %v", err)
	}

	return nil
}
