package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"santiye-backend/internal/models"

	"github.com/rs/zerolog"
)

// GenerateRequest: tek rapor üretim isteği. Kalıcı değildir, sadece
// serileştirilmiş hali Report.Parameters alanında saklanır.
type GenerateRequest struct {
	Kind        ReportKind
	ScopeID     *uint
	DateFrom    string // YYYY-MM-DD
	DateTo      string // YYYY-MM-DD
	Format      Format
	CreatedByID uint
}

type ReportCatalog interface {
	Create(ctx context.Context, r *models.Report) error
	FindByID(ctx context.Context, id uint) (*models.Report, error)
	All(ctx context.Context) ([]models.Report, error)
	FindByType(ctx context.Context, typeID uint) ([]models.Report, error)
	FindByCreator(ctx context.Context, userID uint) ([]models.Report, error)
	Update(ctx context.Context, r *models.Report) error
	Delete(ctx context.Context, id uint) error
	CountByType(ctx context.Context, typeID uint) (int64, error)
}

type TypeCatalog interface {
	FindByID(ctx context.Context, id uint) (*models.ReportType, error)
	FindBySlug(ctx context.Context, slug string) (*models.ReportType, error)
	All(ctx context.Context) ([]models.ReportType, error)
	Delete(ctx context.Context, id uint) error
}

// Service: rapor üretim akışının orkestratörü.
// Akış: yaratıcıyı çöz -> metrikleri topla -> belgeyi üret -> dosyayı yaz ->
// katalog kaydını aç. İlk dört adımdaki her hata beşinci adımdan önce işi
// keser; başarısız üretim için katalogda satır oluşmaz.
type Service struct {
	agg     *Aggregator
	store   *ArtifactStore
	catalog ReportCatalog
	types   TypeCatalog
	users   UserSource
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(agg *Aggregator, store *ArtifactStore, catalog ReportCatalog, types TypeCatalog, users UserSource, log zerolog.Logger) *Service {
	return &Service{
		agg:     agg,
		store:   store,
		catalog: catalog,
		types:   types,
		users:   users,
		log:     log,
		now:     time.Now,
	}
}

func (s *Service) GenerateReport(ctx context.Context, req GenerateRequest) (*models.Report, error) {
	// 1) Girdileri doğrula: yaratıcı, rapor türü, tarih aralığı
	creator, err := s.users.FindByID(ctx, req.CreatedByID)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı sorgulanamadı: %w", err)
	}
	if creator == nil {
		return nil, newError(KindNotFound, "kullanıcı bulunamadı: %d", req.CreatedByID)
	}

	rtype, err := s.types.FindBySlug(ctx, req.Kind.Slug())
	if err != nil {
		return nil, fmt.Errorf("rapor türü sorgulanamadı: %w", err)
	}
	if rtype == nil {
		return nil, newError(KindNotFound, "rapor türü bulunamadı: %s", req.Kind)
	}

	from, to, err := parseDateRange(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	// 2) Metrikleri topla
	metrics, err := s.agg.Collect(ctx, req.Kind, req.ScopeID, from, to)
	if err != nil {
		return nil, err
	}

	// 3) Belgeyi üret
	format := req.Format
	if format == "" {
		format = FormatXLSX
	}
	gen, err := NewGenerator(req.Kind, format)
	if err != nil {
		return nil, err
	}
	params := Parameters{
		Kind:        req.Kind,
		ScopeID:     req.ScopeID,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Format:      format,
		GeneratedAt: s.now(),
	}
	doc, err := gen.Render(metrics, params)
	if err != nil {
		return nil, err
	}

	// 4) Dosyayı yaz
	fileName := s.store.UniqueFileName(rtype.Slug, gen.Extension())
	filePath, err := s.store.ResolvePath(rtype.Slug, fileName)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(filePath, doc); err != nil {
		return nil, err
	}

	// 5) Katalog kaydı. Dosya yazımıyla aynı atomik birimde değil: insert
	// başarısız olursa diskte sahipsiz dosya kalır, hata olduğu gibi döner.
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("parametreler serileştirilemedi: %w", err)
	}
	record := &models.Report{
		Name:        fmt.Sprintf("%s %s - %s", rtype.Name, req.DateFrom, req.DateTo),
		TypeID:      rtype.ID,
		CreatedByID: creator.ID,
		Parameters:  string(paramsJSON),
		FileName:    fileName,
		FilePath:    filePath,
	}
	if err := s.catalog.Create(ctx, record); err != nil {
		s.log.Error().Err(err).Str("file_path", filePath).
			Msg("katalog kaydı başarısız, dosya diskte sahipsiz kaldı")
		return nil, fmt.Errorf("rapor kaydı oluşturulamadı: %w", err)
	}

	s.log.Info().
		Uint("report_id", record.ID).
		Str("kind", string(req.Kind)).
		Str("file", fileName).
		Msg("rapor üretildi")

	return record, nil
}

// parseDateRange: YYYY-MM-DD formatındaki aralığı doğrular
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, newError(KindValidation, "geçersiz başlangıç tarihi: %s", fromStr)
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, newError(KindValidation, "geçersiz bitiş tarihi: %s", toStr)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, newError(KindValidation, "başlangıç tarihi bitiş tarihinden sonra olamaz")
	}
	return from, to, nil
}
