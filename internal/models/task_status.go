package models

// TaskStatus: Görev durumu referans tablosu (örn: Planlandı, Devam Ediyor, Tamamlandı)
type TaskStatus struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null;unique"`
}
