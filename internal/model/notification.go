package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app notification row. Rows are created on specific
// triggering events only and are append-only except for the read flag.
type Notification struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Link      string    `json:"link" gorm:"size:255"`
	Read      bool      `json:"read" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// NotificationPreference gates whether email is sent in addition to the
// always-created in-app notification row. Auto-created alongside the user.
type NotificationPreference struct {
	ID                 uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID             uuid.UUID `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	EmailNotifications bool      `json:"email_notifications" gorm:"not null;default:true"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *NotificationPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
