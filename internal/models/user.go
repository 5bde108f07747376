package models

// User represents a registered user of the API.
type User struct {
	ID       string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email    string  `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Password string  `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Username *string `json:"username" gorm:"uniqueIndex;type:varchar(100)"`
	Posts    []Post  `json:"-" gorm:"foreignKey:AuthorID"`
}
