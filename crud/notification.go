package crud

import (
	"gorm.io/gorm"

	"chirper/domain"
	"chirper/errs"
)

// NotificationService manages LikeNotifications.
// It implements the domain.NotificationService interface.
type NotificationService struct {
	notificationGorm
}

// notificationGorm runs CRUD operations on the database using incoming
// LikeNotification data.
type notificationGorm struct {
	db *gorm.DB
}

// NewNotificationService returns an instance of NotificationService.
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{
		notificationGorm{
			db: db,
		},
	}
}

// Ensure the NotificationService struct properly implements the domain.NotificationService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.NotificationService = &NotificationService{}

// Create stores the data from the LikeNotification object in a new database record.
func (ng *notificationGorm) Create(n *domain.LikeNotification) error {
	if n.NotifiedID <= 0 || n.NotifierID <= 0 {
		return errs.Errorf(errs.EINVALID, "Notified and notifier are required.")
	}
	return ng.db.Create(n).Error
}

// ByNotified retrieves a user's like notifications, newest first, along with
// the notifier and the liked tweet.
func (ng *notificationGorm) ByNotified(userID int) ([]domain.LikeNotification, error) {
	notifications := []domain.LikeNotification{}
	err := ng.db.
		Where("notified_id = ?", userID).
		Preload("Notifier").
		Preload("Tweet").
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
