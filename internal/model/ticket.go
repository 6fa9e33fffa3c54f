package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is the unit of work tracked by the system. It is owned by its
// creator for its whole life and optionally assigned to one support user.
type Ticket struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title        string         `json:"title" gorm:"size:200;not null"`
	Description  string         `json:"description" gorm:"type:text;not null"`
	Status       TicketStatus   `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	Priority     TicketPriority `json:"priority" gorm:"type:varchar(10);not null;default:'medium';index"`
	CreatedByID  uuid.UUID      `json:"-" gorm:"type:char(36);not null;index"`
	AssignedToID *uuid.UUID     `json:"-" gorm:"type:char(36);index"`
	CategoryID   *uint          `json:"-" gorm:"index"`
	DepartmentID *uint          `json:"-" gorm:"index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Relations. The creator reference cascades on user delete; the assignee
	// and catalog references are cleared instead.
	CreatedBy  *User       `json:"created_by" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	AssignedTo *User       `json:"assigned_to" gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	Category   *Category   `json:"category" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Department *Department `json:"department" gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
	Comments   []Comment   `json:"comments,omitempty" gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
