package database

import (
	"log"

	"santiye-backend/internal/config"
	"santiye-backend/internal/models"
	"santiye-backend/internal/report"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.TaskStatus{},
		&models.Task{},
		&models.ReportType{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	seedReportTypes()

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// seedReportTypes: Üç rapor türünü oluşturur (yoksa). Slug değerleri
// rapor paketindeki tür sabitleriyle aynıdır.
func seedReportTypes() {
	types := []models.ReportType{
		{
			Name:         "Şantiye İlerleme Raporu",
			Slug:         report.KindProgress.Slug(),
			Description:  "Ekip bazında görev tamamlanma ve gecikme özeti",
			TemplatePath: "templates/santiye-ilerleme.xlsx",
		},
		{
			Name:         "Personel Yükü Raporu",
			Slug:         report.KindLoad.Slug(),
			Description:  "Personel başına görev sayısı ve tahmini saat yükü",
			TemplatePath: "templates/personel-yuku.xlsx",
		},
		{
			Name:         "Ekip Verimlilik Raporu",
			Slug:         report.KindEfficiency.Slug(),
			Description:  "Ekip bazında açık/kapalı görevler ve ortalama tamamlama süresi",
			TemplatePath: "templates/ekip-verimliligi.xlsx",
		},
	}

	for _, rt := range types {
		var existing models.ReportType
		if err := DB.Where("slug = ?", rt.Slug).First(&existing).Error; err == nil {
			continue
		}
		if err := DB.Create(&rt).Error; err != nil {
			log.Printf("Rapor türü oluşturulamadı (%s): %v", rt.Slug, err)
		}
	}
}
