package model

import "time"

// Department is a catalog row tickets can be routed to.
type Department struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Code      DepartmentCode `json:"code" gorm:"uniqueIndex;size:50;not null;default:'other'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Category is a catalog row describing what a ticket is about.
type Category struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Code      CategoryCode `json:"code" gorm:"uniqueIndex;size:50;not null;default:'other'"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
