package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is an append-only note on a ticket. No update or delete path is
// exposed for comments.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	TicketID  uuid.UUID `json:"ticket_id" gorm:"type:char(36);not null;index"`
	AuthorID  uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Ticket *Ticket `json:"-" gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	Author *User   `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
