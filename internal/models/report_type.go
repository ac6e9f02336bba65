package models

import "time"

// ReportType: Rapor türü referans kaydı. Slug aynı zamanda depolama kökü
// altındaki klasör adıdır. Kendisini referans alan Report kaydı varken silinemez.
type ReportType struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Slug         string `gorm:"size:50;uniqueIndex;not null"`
	Description  string `gorm:"size:255"`
	TemplatePath string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
