package report

import (
	"context"
	"errors"
	"time"

	"santiye-backend/internal/models"

	"gorm.io/gorm"
)

// GORM destekli veri kaynakları. Görev/ekip/kullanıcı tabloları başka
// katman tarafından yazılır, burası salt okunur. Aralık sorguları gün
// hassasiyetinde ve iki uçta dahildir: [from, to+1gün).

type GormTaskSource struct {
	db *gorm.DB
}

func NewGormTaskSource(db *gorm.DB) *GormTaskSource {
	return &GormTaskSource{db: db}
}

func (s *GormTaskSource) StartedInRange(ctx context.Context, teamID uint, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Preload("Status").
		Where("team_id = ? AND start_date >= ? AND start_date < ?", teamID, from, to.AddDate(0, 0, 1)).
		Order("start_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (s *GormTaskSource) CreatedByInRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Where("created_by_id = ? AND created_at >= ? AND created_at < ?", userID, from, to.AddDate(0, 0, 1)).
		Find(&tasks).Error
	return tasks, err
}

func (s *GormTaskSource) CreatedForTeamInRange(ctx context.Context, teamID uint, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.WithContext(ctx).
		Where("team_id = ? AND created_at >= ? AND created_at < ?", teamID, from, to.AddDate(0, 0, 1)).
		Find(&tasks).Error
	return tasks, err
}

type GormTeamSource struct {
	db *gorm.DB
}

func NewGormTeamSource(db *gorm.DB) *GormTeamSource {
	return &GormTeamSource{db: db}
}

func (s *GormTeamSource) FindByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).First(&team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *GormTeamSource) All(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).Order("name ASC").Find(&teams).Error
	return teams, err
}

type GormUserSource struct {
	db *gorm.DB
}

func NewGormUserSource(db *gorm.DB) *GormUserSource {
	return &GormUserSource{db: db}
}

func (s *GormUserSource) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserSource) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("name ASC").Find(&users).Error
	return users, err
}

type GormReportCatalog struct {
	db *gorm.DB
}

func NewGormReportCatalog(db *gorm.DB) *GormReportCatalog {
	return &GormReportCatalog{db: db}
}

// Create: kayıt tek transaction içinde açılır. Dosya yazımı bu transaction'a
// dahil değildir (bkz. Service.GenerateReport).
func (s *GormReportCatalog) Create(ctx context.Context, r *models.Report) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(r).Error
	})
}

func (s *GormReportCatalog) FindByID(ctx context.Context, id uint) (*models.Report, error) {
	var r models.Report
	err := s.db.WithContext(ctx).Preload("Type").Preload("CreatedBy").First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GormReportCatalog) All(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).Preload("Type").Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (s *GormReportCatalog) FindByType(ctx context.Context, typeID uint) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).Preload("Type").
		Where("type_id = ?", typeID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (s *GormReportCatalog) FindByCreator(ctx context.Context, userID uint) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).Preload("Type").
		Where("created_by_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (s *GormReportCatalog) Update(ctx context.Context, r *models.Report) error {
	return s.db.WithContext(ctx).Save(r).Error
}

func (s *GormReportCatalog) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Report{}, id).Error
}

func (s *GormReportCatalog) CountByType(ctx context.Context, typeID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Report{}).Where("type_id = ?", typeID).Count(&count).Error
	return count, err
}

type GormTypeCatalog struct {
	db *gorm.DB
}

func NewGormTypeCatalog(db *gorm.DB) *GormTypeCatalog {
	return &GormTypeCatalog{db: db}
}

func (s *GormTypeCatalog) FindByID(ctx context.Context, id uint) (*models.ReportType, error) {
	var rt models.ReportType
	err := s.db.WithContext(ctx).First(&rt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (s *GormTypeCatalog) FindBySlug(ctx context.Context, slug string) (*models.ReportType, error) {
	var rt models.ReportType
	err := s.db.WithContext(ctx).First(&rt, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (s *GormTypeCatalog) All(ctx context.Context) ([]models.ReportType, error) {
	var types []models.ReportType
	err := s.db.WithContext(ctx).Order("id ASC").Find(&types).Error
	return types, err
}

func (s *GormTypeCatalog) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.ReportType{}, id).Error
}
