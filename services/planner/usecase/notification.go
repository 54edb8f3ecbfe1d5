package usecase

import (
	"context"
	"time"

	"sinifplanim/domain"

	"github.com/google/uuid"
)

type notificationUC struct {
	notifRepo domain.NotificationRepo
	TimeOut   time.Duration
}

func NewNotificationUseCase(repo domain.NotificationRepo, timeOut time.Duration) domain.NotificationUseCase {
	return &notificationUC{
		notifRepo: repo,
		TimeOut:   timeOut,
	}
}

// JoinReadState augments the broadcast list with the user's read-id set and
// counts the unread entries. Read state is a join computed here, never stored
// on the notification.
func JoinReadState(notifications []domain.Notification, readIDs []string) ([]domain.UserNotification, int) {
	read := make(map[string]bool, len(readIDs))
	for _, id := range readIDs {
		read[id] = true
	}

	joined := make([]domain.UserNotification, 0, len(notifications))
	unread := 0
	for _, n := range notifications {
		isRead := read[n.ID]
		if !isRead {
			unread++
		}
		joined = append(joined, domain.UserNotification{Notification: n, IsRead: isRead})
	}
	return joined, unread
}

// UnionIDs merges new ids into an existing set, keeping the existing order and
// absorbing duplicates, so repeated calls with overlapping ids are safe.
func UnionIDs(existing, added []string) []string {
	seen := make(map[string]bool, len(existing)+len(added))
	out := make([]string, 0, len(existing)+len(added))

	for _, id := range existing {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range added {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (nUC *notificationUC) CreateNotification(ctx context.Context, notification *domain.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, nUC.TimeOut)
	defer cancel()

	notification.ID = uuid.NewString()
	return nUC.notifRepo.CreateNotification(ctx, notification)
}

func (nUC *notificationUC) DeleteNotification(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, nUC.TimeOut)
	defer cancel()

	return nUC.notifRepo.DeleteNotification(ctx, id)
}

func (nUC *notificationUC) GetNotificationsForUser(ctx context.Context, userID int) (*[]domain.UserNotification, int, error) {
	ctx, cancel := context.WithTimeout(ctx, nUC.TimeOut)
	defer cancel()

	notifications, err := nUC.notifRepo.GetAllNotifications(ctx)
	if err != nil {
		return nil, 0, err
	}

	readIDs, err := nUC.notifRepo.GetReadNotificationIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	joined, unread := JoinReadState(*notifications, readIDs)
	return &joined, unread, nil
}

func (nUC *notificationUC) MarkAsRead(ctx context.Context, userID int, ids []string) error {
	ctx, cancel := context.WithTimeout(ctx, nUC.TimeOut)
	defer cancel()

	existing, err := nUC.notifRepo.GetReadNotificationIDs(ctx, userID)
	if err != nil {
		return err
	}

	merged := UnionIDs(existing, ids)
	if len(merged) == len(existing) {
		return nil
	}

	return nUC.notifRepo.SaveReadNotificationIDs(ctx, userID, merged)
}
