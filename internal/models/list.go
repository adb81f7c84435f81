package models

// List is a named collection of items owned by exactly one user.
type List struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"index;not null" json:"user_id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	CreatedAt  int64  `gorm:"not null" json:"created_at"`
	IsMuted    bool   `gorm:"not null;default:false" json:"is_muted"`
	IsArchived bool   `gorm:"not null;default:false" json:"is_archived"`
}
