package report

import (
	"context"
	"fmt"

	"santiye-backend/internal/models"
)

// QueryService: katalog üzerinde düz CRUD. Rapor silme sadece katalog
// satırını kaldırır; diskteki dosyaya dokunulmaz (bilinen kaynak sızıntısı,
// kabul edilmiş takas).
type QueryService struct {
	catalog ReportCatalog
	types   TypeCatalog
}

func NewQueryService(catalog ReportCatalog, types TypeCatalog) *QueryService {
	return &QueryService{catalog: catalog, types: types}
}

func (s *QueryService) All(ctx context.Context) ([]models.Report, error) {
	reports, err := s.catalog.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("raporlar listelenemedi: %w", err)
	}
	return reports, nil
}

func (s *QueryService) ByID(ctx context.Context, id uint) (*models.Report, error) {
	r, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("rapor sorgulanamadı: %w", err)
	}
	if r == nil {
		return nil, newError(KindNotFound, "rapor bulunamadı: %d", id)
	}
	return r, nil
}

func (s *QueryService) ByType(ctx context.Context, typeID uint) ([]models.Report, error) {
	rt, err := s.types.FindByID(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("rapor türü sorgulanamadı: %w", err)
	}
	if rt == nil {
		return nil, newError(KindNotFound, "rapor türü bulunamadı: %d", typeID)
	}
	reports, err := s.catalog.FindByType(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("raporlar listelenemedi: %w", err)
	}
	return reports, nil
}

func (s *QueryService) ByCreator(ctx context.Context, userID uint) ([]models.Report, error) {
	reports, err := s.catalog.FindByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("raporlar listelenemedi: %w", err)
	}
	return reports, nil
}

// UpdateRequest: değiştirilebilir alanların tamamını yenisiyle değiştirir
// (nadir kullanım, örn. dosya yeniden bağlama)
type UpdateRequest struct {
	Name       string
	Parameters string
	FileName   string
	FilePath   string
}

func (s *QueryService) Update(ctx context.Context, id uint, req UpdateRequest) (*models.Report, error) {
	r, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Name = req.Name
	r.Parameters = req.Parameters
	r.FileName = req.FileName
	r.FilePath = req.FilePath
	if err := s.catalog.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("rapor güncellenemedi: %w", err)
	}
	return r, nil
}

func (s *QueryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.ByID(ctx, id); err != nil {
		return err
	}
	if err := s.catalog.Delete(ctx, id); err != nil {
		return fmt.Errorf("rapor silinemedi: %w", err)
	}
	return nil
}

func (s *QueryService) Types(ctx context.Context) ([]models.ReportType, error) {
	types, err := s.types.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("rapor türleri listelenemedi: %w", err)
	}
	return types, nil
}

// DeleteType: referans veren rapor kaydı varken tür silinemez
func (s *QueryService) DeleteType(ctx context.Context, id uint) error {
	rt, err := s.types.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("rapor türü sorgulanamadı: %w", err)
	}
	if rt == nil {
		return newError(KindNotFound, "rapor türü bulunamadı: %d", id)
	}
	count, err := s.catalog.CountByType(ctx, id)
	if err != nil {
		return fmt.Errorf("rapor sayısı sorgulanamadı: %w", err)
	}
	if count > 0 {
		return newError(KindConflict, "rapor türü kullanımda, %d rapor bu türü referans alıyor", count)
	}
	if err := s.types.Delete(ctx, id); err != nil {
		return fmt.Errorf("rapor türü silinemedi: %w", err)
	}
	return nil
}
