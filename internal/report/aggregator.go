package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"santiye-backend/internal/models"
)

type ReportKind string

const (
	KindProgress   ReportKind = "santiye-ilerleme"
	KindLoad       ReportKind = "personel-yuku"
	KindEfficiency ReportKind = "ekip-verimliligi"
)

// Slug: depolama kökü altındaki klasör adı, ReportType.Slug ile aynı
func (k ReportKind) Slug() string { return string(k) }

func ParseReportKind(s string) (ReportKind, error) {
	switch ReportKind(s) {
	case KindProgress, KindLoad, KindEfficiency:
		return ReportKind(s), nil
	}
	return "", newError(KindValidation, "bilinmeyen rapor türü: %s", s)
}

// Görev başına sabit 8 saatlik varsayım. Gerçek mesai takibi yok, yük ve
// verimlilik hesapları bu sabit üzerinden tahmin edilir.
const hoursPerTask = 8.0

// Veri kaynakları: görev/ekip/kullanıcı CRUD'u ayrı katmanda, rapor tarafı
// bu arayüzler üzerinden salt okunur erişir. FindByID kayıt yoksa (nil, nil)
// döner, bulunamadı hatasını çağıran üretir.

type TaskSource interface {
	// StartedInRange: startDate'i [from,to] aralığında olan ekip görevleri
	StartedInRange(ctx context.Context, teamID uint, from, to time.Time) ([]models.Task, error)
	// CreatedByInRange: createdAt tarihi aralıkta olan, kullanıcının açtığı görevler
	CreatedByInRange(ctx context.Context, userID uint, from, to time.Time) ([]models.Task, error)
	// CreatedForTeamInRange: createdAt tarihi aralıkta olan ekip görevleri
	CreatedForTeamInRange(ctx context.Context, teamID uint, from, to time.Time) ([]models.Task, error)
}

type TeamSource interface {
	FindByID(ctx context.Context, id uint) (*models.Team, error)
	All(ctx context.Context) ([]models.Team, error)
}

type UserSource interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
}

// AggregatedMetrics: tek üretim isteği için hesaplanan istatistikler.
// Tagged union; Kind hangi varyantın dolu olduğunu söyler. Kalıcı değildir,
// sadece serileştirilen istek parametreleri saklanır.
type AggregatedMetrics struct {
	Kind       ReportKind
	Progress   *ProgressMetrics
	Load       *LoadMetrics
	Efficiency *EfficiencyMetrics
}

type ProgressRow struct {
	TaskTitle     string
	StatusName    string
	Deadline      *time.Time
	CompletedDate *time.Time
}

type ProgressMetrics struct {
	TeamName            string
	Rows                []ProgressRow
	CompletedPercentage int
	DelayedCount        int
}

type LoadRow struct {
	EmployeeID   uint
	EmployeeName string
	TaskCount    int
	TotalHours   float64
}

type LoadMetrics struct {
	Rows []LoadRow
}

type EfficiencyRow struct {
	TeamName           string
	AvgCompletionHours float64
	OpenIssues         int
	ClosedIssues       int
}

type EfficiencyMetrics struct {
	Rows []EfficiencyRow
}

type Aggregator struct {
	tasks TaskSource
	teams TeamSource
	users UserSource
}

func NewAggregator(tasks TaskSource, teams TeamSource, users UserSource) *Aggregator {
	return &Aggregator{tasks: tasks, teams: teams, users: users}
}

// Collect: verilen tür için tarih aralığındaki metrikleri hesaplar.
// Tarih karşılaştırmaları gün hassasiyetindedir, aralık iki uçta da dahildir.
func (a *Aggregator) Collect(ctx context.Context, kind ReportKind, scopeID *uint, from, to time.Time) (*AggregatedMetrics, error) {
	if from.IsZero() || to.IsZero() {
		return nil, newError(KindValidation, "tarih aralığı zorunlu")
	}
	from, to = dateOnly(from), dateOnly(to)
	if from.After(to) {
		return nil, newError(KindValidation, "başlangıç tarihi bitiş tarihinden sonra olamaz")
	}

	switch kind {
	case KindProgress:
		return a.collectProgress(ctx, scopeID, from, to)
	case KindLoad:
		return a.collectLoad(ctx, scopeID, from, to)
	case KindEfficiency:
		return a.collectEfficiency(ctx, from, to)
	}
	return nil, newError(KindValidation, "bilinmeyen rapor türü: %s", kind)
}

func (a *Aggregator) collectProgress(ctx context.Context, teamID *uint, from, to time.Time) (*AggregatedMetrics, error) {
	if teamID == nil {
		return nil, newError(KindValidation, "şantiye ilerleme raporu için ekip id zorunlu")
	}
	team, err := a.teams.FindByID(ctx, *teamID)
	if err != nil {
		return nil, fmt.Errorf("ekip sorgulanamadı: %w", err)
	}
	if team == nil {
		return nil, newError(KindNotFound, "ekip bulunamadı: %d", *teamID)
	}

	tasks, err := a.tasks.StartedInRange(ctx, team.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("görevler sorgulanamadı: %w", err)
	}

	m := &ProgressMetrics{TeamName: team.Name}
	completed := 0
	for _, t := range tasks {
		if t.CompletedDate != nil {
			completed++
		}
		// Gecikme: hem termin hem bitiş dolu ve bitiş terminden sonra olmalı.
		// İkisinden biri eksikse görev asla gecikmiş sayılmaz.
		if t.CompletedDate != nil && t.Deadline != nil && t.CompletedDate.After(*t.Deadline) {
			m.DelayedCount++
		}
		m.Rows = append(m.Rows, ProgressRow{
			TaskTitle:     t.Title,
			StatusName:    t.Status.Name,
			Deadline:      t.Deadline,
			CompletedDate: t.CompletedDate,
		})
	}
	// Görev yoksa yüzde 0 kalır, sıfıra bölme yok
	if len(tasks) > 0 {
		m.CompletedPercentage = int(math.Round(float64(completed) / float64(len(tasks)) * 100))
	}

	return &AggregatedMetrics{Kind: KindProgress, Progress: m}, nil
}

func (a *Aggregator) collectLoad(ctx context.Context, userID *uint, from, to time.Time) (*AggregatedMetrics, error) {
	// Kapsam opsiyonel: id verilmemişse tüm kullanıcılar
	var scoped []models.User
	if userID != nil {
		u, err := a.users.FindByID(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("kullanıcı sorgulanamadı: %w", err)
		}
		if u == nil {
			return nil, newError(KindNotFound, "kullanıcı bulunamadı: %d", *userID)
		}
		scoped = []models.User{*u}
	} else {
		all, err := a.users.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("kullanıcılar sorgulanamadı: %w", err)
		}
		scoped = all
	}

	m := &LoadMetrics{}
	for _, u := range scoped {
		tasks, err := a.tasks.CreatedByInRange(ctx, u.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("görevler sorgulanamadı: %w", err)
		}
		m.Rows = append(m.Rows, LoadRow{
			EmployeeID:   u.ID,
			EmployeeName: u.Name,
			TaskCount:    len(tasks),
			TotalHours:   float64(len(tasks)) * hoursPerTask,
		})
	}

	return &AggregatedMetrics{Kind: KindLoad, Load: m}, nil
}

func (a *Aggregator) collectEfficiency(ctx context.Context, from, to time.Time) (*AggregatedMetrics, error) {
	teams, err := a.teams.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("ekipler sorgulanamadı: %w", err)
	}

	m := &EfficiencyMetrics{}
	for _, team := range teams {
		tasks, err := a.tasks.CreatedForTeamInRange(ctx, team.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("görevler sorgulanamadı: %w", err)
		}

		row := EfficiencyRow{TeamName: team.Name}
		var totalHours float64
		qualified := 0
		for _, t := range tasks {
			if t.CompletedDate == nil {
				row.OpenIssues++
			} else {
				row.ClosedIssues++
			}
			// Ortalamaya sadece hem başlangıcı hem bitişi olan görevler girer
			if t.StartDate != nil && t.CompletedDate != nil {
				totalHours += float64(daysBetween(*t.StartDate, *t.CompletedDate)) * hoursPerTask
				qualified++
			}
		}
		// Uygun görev yoksa ortalama 0 kalır (NaN/boş ortalama yok)
		if qualified > 0 {
			row.AvgCompletionHours = totalHours / float64(qualified)
		}
		m.Rows = append(m.Rows, row)
	}

	return &AggregatedMetrics{Kind: KindEfficiency, Efficiency: m}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween: iki tarih arasındaki tam gün sayısı, saat bileşenleri yok sayılır
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}
