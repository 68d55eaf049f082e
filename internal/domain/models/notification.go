// internal/domain/models/notification.go
package models

import "time"

// Notification statuses.
const (
	NotificationUnread  = "unread"
	NotificationRead    = "read"
	NotificationDeleted = "deleted"
)

// Notification types raised by the service itself. Clients may post
// other free-form types.
const (
	NotificationFollow = "follow"
	NotificationReview = "review"
	NotificationLike   = "like"
	NotificationSystem = "system"
)

// Notification is appended to the target user's notifications array.
// Username is the user the notification is addressed to.
type Notification struct {
	ID       string    `bson:"_id" json:"id"`
	Date     time.Time `bson:"date" json:"date"`
	Type     string    `bson:"type" json:"type"`
	Username string    `bson:"username" json:"username"`
	Text     string    `bson:"text" json:"text"`
	Status   string    `bson:"status" json:"status"`
	Image    *string   `bson:"image,omitempty" json:"image,omitempty"`
	Link     string    `bson:"link" json:"link"`
}

// IsValidNotificationStatus reports whether s is a known status.
func IsValidNotificationStatus(s string) bool {
	switch s {
	case NotificationUnread, NotificationRead, NotificationDeleted:
		return true
	}
	return false
}
