package models

import "gorm.io/gorm"

type Notification struct {
	Base
	Title   string `gorm:"size:100;not null" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	UserId  string `gorm:"size:36;index" json:"user_id"`
	Read    bool   `gorm:"default:false" json:"read"`
}

func ListNotifications(db *gorm.DB, userId string, unreadOnly bool) ([]Notification, error) {
	q := db.Where("user_id = ? OR user_id = ''", userId).Order("created_at DESC")
	if unreadOnly {
		q = q.Where("`read` = ?", false)
	}
	var notifications []Notification
	err := q.Find(&notifications).Error
	return notifications, err
}

func MarkNotificationRead(db *gorm.DB, id string) error {
	return db.Model(&Notification{}).Where("id = ?", id).Update("read", true).Error
}

func MarkAllNotificationsRead(db *gorm.DB, userId string) error {
	return db.Model(&Notification{}).
		Where("user_id = ? OR user_id = ''", userId).
		Update("read", true).Error
}
