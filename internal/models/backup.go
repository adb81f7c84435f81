package models

import "time"

// Backup is an encrypted snapshot of one user's lists and items on disk.
type Backup struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	FileName  string `gorm:"size:255;not null"`
	FilePath  string `gorm:"size:1024;not null"`
	Size      int64
	Lists     int
	Items     int
	CreatedAt time.Time
}
