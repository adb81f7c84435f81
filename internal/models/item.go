package models

const (
	DefaultDistance  = 5000 // meters
	DefaultFrequency = 60   // minutes
)

// Item is a single to-do entry inside a list.
// FinishedAt is set exactly when IsDone is true.
type Item struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ListID     uint   `gorm:"index;not null" json:"list_id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	IsDone     bool   `gorm:"not null;default:false" json:"is_done"`
	CreatedAt  int64  `gorm:"not null" json:"created_at"`
	FinishedAt *int64 `json:"finished_at"`
	Distance   int    `gorm:"not null;default:5000" json:"distance"`
	Frequency  int    `gorm:"not null;default:60" json:"frequency"`
}
