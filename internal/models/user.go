package models

// User represents a registered account. Email is stored normalized.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:128;not null" json:"name"`
	Email     string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // bcrypt hash
	CreatedAt int64  `gorm:"not null" json:"created_at"` // epoch seconds
}
