package models

import "time"

// Task: Şantiye görev kaydı. CRUD işlemleri ayrı serviste, rapor tarafı
// bu tabloyu salt okunur kullanır.
type Task struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	StatusID    uint   `gorm:"index;not null"`
	Status      TaskStatus
	TeamID      uint `gorm:"index;not null"`
	Team        Team
	CreatedByID uint `gorm:"index;not null"`
	CreatedBy   User

	StartDate     *time.Time `gorm:"index"` // işe başlama tarihi
	Deadline      *time.Time // termin
	CompletedDate *time.Time // fiili bitiş (null = görev açık)

	CreatedAt time.Time
	UpdatedAt time.Time
}
