package report

import (
	"context"
	"time"

	"santiye-backend/internal/models"
)

// Testlerde kullanılan in-memory kaynaklar. GORM katmanı yerine arayüzlerin
// arkasına takılır.

type fakeTaskSource struct {
	started       map[uint][]models.Task
	createdBy     map[uint][]models.Task
	createdByTeam map[uint][]models.Task
}

func (f *fakeTaskSource) StartedInRange(_ context.Context, teamID uint, _, _ time.Time) ([]models.Task, error) {
	return f.started[teamID], nil
}

func (f *fakeTaskSource) CreatedByInRange(_ context.Context, userID uint, _, _ time.Time) ([]models.Task, error) {
	return f.createdBy[userID], nil
}

func (f *fakeTaskSource) CreatedForTeamInRange(_ context.Context, teamID uint, _, _ time.Time) ([]models.Task, error) {
	return f.createdByTeam[teamID], nil
}

type fakeTeamSource struct {
	teams []models.Team
}

func (f *fakeTeamSource) FindByID(_ context.Context, id uint) (*models.Team, error) {
	for i := range f.teams {
		if f.teams[i].ID == id {
			return &f.teams[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTeamSource) All(_ context.Context) ([]models.Team, error) {
	return f.teams, nil
}

type fakeUserSource struct {
	users []models.User
}

func (f *fakeUserSource) FindByID(_ context.Context, id uint) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUserSource) All(_ context.Context) ([]models.User, error) {
	return f.users, nil
}

type fakeTypeCatalog struct {
	types []models.ReportType
}

func (f *fakeTypeCatalog) FindByID(_ context.Context, id uint) (*models.ReportType, error) {
	for i := range f.types {
		if f.types[i].ID == id {
			return &f.types[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTypeCatalog) FindBySlug(_ context.Context, slug string) (*models.ReportType, error) {
	for i := range f.types {
		if f.types[i].Slug == slug {
			return &f.types[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTypeCatalog) All(_ context.Context) ([]models.ReportType, error) {
	return f.types, nil
}

func (f *fakeTypeCatalog) Delete(_ context.Context, id uint) error {
	kept := f.types[:0]
	for _, rt := range f.types {
		if rt.ID != id {
			kept = append(kept, rt)
		}
	}
	f.types = kept
	return nil
}

type fakeCatalog struct {
	reports   []models.Report
	createErr error
}

func (f *fakeCatalog) Create(_ context.Context, r *models.Report) error {
	if f.createErr != nil {
		return f.createErr
	}
	r.ID = uint(len(f.reports) + 1)
	r.CreatedAt = time.Now()
	f.reports = append(f.reports, *r)
	return nil
}

func (f *fakeCatalog) FindByID(_ context.Context, id uint) (*models.Report, error) {
	for i := range f.reports {
		if f.reports[i].ID == id {
			r := f.reports[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) All(_ context.Context) ([]models.Report, error) {
	return f.reports, nil
}

func (f *fakeCatalog) FindByType(_ context.Context, typeID uint) ([]models.Report, error) {
	var out []models.Report
	for _, r := range f.reports {
		if r.TypeID == typeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByCreator(_ context.Context, userID uint) ([]models.Report, error) {
	var out []models.Report
	for _, r := range f.reports {
		if r.CreatedByID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Update(_ context.Context, r *models.Report) error {
	for i := range f.reports {
		if f.reports[i].ID == r.ID {
			f.reports[i] = *r
			return nil
		}
	}
	return nil
}

func (f *fakeCatalog) Delete(_ context.Context, id uint) error {
	kept := f.reports[:0]
	for _, r := range f.reports {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.reports = kept
	return nil
}

func (f *fakeCatalog) CountByType(_ context.Context, typeID uint) (int64, error) {
	var count int64
	for _, r := range f.reports {
		if r.TypeID == typeID {
			count++
		}
	}
	return count, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func uintPtr(v uint) *uint { return &v }
