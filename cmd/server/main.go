package main

import (
	"log"
	"os"
	"strings"

	"santiye-backend/internal/config"
	"santiye-backend/internal/database"
	"santiye-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "santiye-backend").Logger()

	// Rapor hattı: kaynaklar -> toplayıcı -> depo -> orkestratör
	taskSource := report.NewGormTaskSource(database.DB)
	teamSource := report.NewGormTeamSource(database.DB)
	userSource := report.NewGormUserSource(database.DB)
	catalog := report.NewGormReportCatalog(database.DB)
	typeCatalog := report.NewGormTypeCatalog(database.DB)

	aggregator := report.NewAggregator(taskSource, teamSource, userSource)
	// Depolama kökü ambient okunmaz, burada açıkça veriliyor
	artifactStore := report.NewArtifactStore(cfg.ReportStoragePath)
	reportService := report.NewService(aggregator, artifactStore, catalog, typeCatalog, userSource, logger)
	queryService := report.NewQueryService(catalog, typeCatalog)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Rapor üretimi ve kataloğu
	api.Post("/reports/generate", report.GenerateReportHandler(reportService))
	api.Get("/reports", report.ListReportsHandler(queryService))
	api.Get("/reports/:id", report.GetReportHandler(queryService))
	api.Get("/reports/:id/download", report.DownloadReportHandler(queryService))
	api.Put("/reports/:id", report.UpdateReportHandler(queryService))
	api.Delete("/reports/:id", report.DeleteReportHandler(queryService))

	// Rapor türleri
	api.Get("/report-types", report.ListReportTypesHandler(queryService))
	api.Delete("/report-types/:id", report.DeleteReportTypeHandler(queryService))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
