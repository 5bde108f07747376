package models

import "time"

// Post represents a blog post authored by exactly one user.
// CreatedAt is set once on insert; UpdatedAt is refreshed by GORM on
// every mutation.
type Post struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null" validate:"required"`
	Description string    `json:"description" gorm:"type:varchar(500);not null;default:''"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at"`
	AuthorID    string    `json:"-" gorm:"type:varchar(36);not null;index"`
	Author      User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:NO ACTION"`
}
