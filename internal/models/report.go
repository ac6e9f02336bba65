package models

import "time"

// Report: Üretilen raporların katalog kaydı. Belgenin kendisi diskte durur,
// burada sadece dosya konumu ve üretim parametreleri tutulur.
type Report struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	TypeID      uint   `gorm:"index;not null"`
	Type        ReportType
	CreatedByID uint `gorm:"index;not null"`
	CreatedBy   User

	// İstek parametreleri (JSON) - hangi girdiyle üretildiğinin izi
	Parameters string `gorm:"type:jsonb"`

	FileName string `gorm:"size:255;not null"`
	FilePath string `gorm:"size:512;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
