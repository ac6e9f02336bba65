package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Parameters: üretim isteğinin serileştirilen hali. Report kaydında JSON
// olarak saklanır ve belge başlığına yazılır. Aynı Parameters (GeneratedAt
// dahil) ile üretilen belge her seferinde aynıdır.
type Parameters struct {
	Kind        ReportKind `json:"kind"`
	ScopeID     *uint      `json:"scope_id,omitempty"`
	DateFrom    string     `json:"date_from"`
	DateTo      string     `json:"date_to"`
	Format      Format     `json:"format"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// DocumentGenerator: toplanmış metrikleri belge byte'larına çevirir.
// Eksik alanlı tek bir satır bile tüm belgeyi iptal eder, kısmi çıktı yok.
type DocumentGenerator interface {
	Render(m *AggregatedMetrics, params Parameters) ([]byte, error)
	Extension() string
}

// NewGenerator: rapor türü + format için üreticiyi seçer. Format boşsa xlsx.
func NewGenerator(kind ReportKind, format Format) (DocumentGenerator, error) {
	switch format {
	case FormatXLSX, "":
		return &xlsxGenerator{kind: kind}, nil
	case FormatPDF:
		return &pdfGenerator{kind: kind}, nil
	}
	return nil, newError(KindValidation, "bilinmeyen belge formatı: %s", format)
}

// documentTable: üç rapor türünün ortak tablo gösterimi. Üreticiler satırları
// buradan okur, tür bazlı alan kontrolü tek yerde yapılır.
type documentTable struct {
	Title   string
	Headers []string
	Rows    [][]string
	Summary []string
}

func buildTable(kind ReportKind, m *AggregatedMetrics) (*documentTable, error) {
	if m == nil || m.Kind != kind {
		return nil, newError(KindGeneration, "metrik verisi rapor türüyle uyuşmuyor")
	}
	switch kind {
	case KindProgress:
		return buildProgressTable(m.Progress)
	case KindLoad:
		return buildLoadTable(m.Load)
	case KindEfficiency:
		return buildEfficiencyTable(m.Efficiency)
	}
	return nil, newError(KindGeneration, "bilinmeyen rapor türü: %s", kind)
}

func buildProgressTable(m *ProgressMetrics) (*documentTable, error) {
	if m == nil {
		return nil, newError(KindGeneration, "ilerleme metrikleri eksik")
	}
	t := &documentTable{
		Title:   "Şantiye İlerleme Raporu - " + m.TeamName,
		Headers: []string{"Görev", "Durum", "Termin", "Bitiş"},
	}
	for i, r := range m.Rows {
		if r.TaskTitle == "" || r.StatusName == "" {
			return nil, newError(KindGeneration, "satır %d eksik alan içeriyor", i+1)
		}
		t.Rows = append(t.Rows, []string{r.TaskTitle, r.StatusName, formatDatePtr(r.Deadline), formatDatePtr(r.CompletedDate)})
	}
	t.Summary = []string{
		fmt.Sprintf("Tamamlanma yüzdesi: %%%d", m.CompletedPercentage),
		fmt.Sprintf("Geciken görev sayısı: %d", m.DelayedCount),
	}
	return t, nil
}

func buildLoadTable(m *LoadMetrics) (*documentTable, error) {
	if m == nil {
		return nil, newError(KindGeneration, "personel yükü metrikleri eksik")
	}
	t := &documentTable{
		Title:   "Personel Yükü Raporu",
		Headers: []string{"Personel", "Görev Sayısı", "Toplam Saat"},
	}
	totalTasks := 0
	for i, r := range m.Rows {
		if r.EmployeeName == "" {
			return nil, newError(KindGeneration, "satır %d eksik alan içeriyor", i+1)
		}
		totalTasks += r.TaskCount
		t.Rows = append(t.Rows, []string{r.EmployeeName, fmt.Sprintf("%d", r.TaskCount), fmt.Sprintf("%.1f", r.TotalHours)})
	}
	t.Summary = []string{
		fmt.Sprintf("Toplam personel: %d", len(m.Rows)),
		fmt.Sprintf("Toplam görev: %d", totalTasks),
	}
	return t, nil
}

func buildEfficiencyTable(m *EfficiencyMetrics) (*documentTable, error) {
	if m == nil {
		return nil, newError(KindGeneration, "verimlilik metrikleri eksik")
	}
	t := &documentTable{
		Title:   "Ekip Verimlilik Raporu",
		Headers: []string{"Ekip", "Ort. Tamamlama (saat)", "Açık", "Kapalı"},
	}
	for i, r := range m.Rows {
		if r.TeamName == "" {
			return nil, newError(KindGeneration, "satır %d eksik alan içeriyor", i+1)
		}
		t.Rows = append(t.Rows, []string{
			r.TeamName,
			fmt.Sprintf("%.1f", r.AvgCompletionHours),
			fmt.Sprintf("%d", r.OpenIssues),
			fmt.Sprintf("%d", r.ClosedIssues),
		})
	}
	t.Summary = []string{fmt.Sprintf("Toplam ekip: %d", len(m.Rows))}
	return t, nil
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

type xlsxGenerator struct {
	kind ReportKind
}

func (g *xlsxGenerator) Extension() string { return "xlsx" }

func (g *xlsxGenerator) Render(m *AggregatedMetrics, params Parameters) ([]byte, error) {
	table, err := buildTable(g.kind, m)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", table.Title)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Dönem: %s - %s", params.DateFrom, params.DateTo))
	f.SetCellValue(sheet, "A3", "Oluşturulma: "+params.GeneratedAt.Format("2006-01-02 15:04:05"))

	const headerRow = 5
	for col, h := range table.Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, headerRow)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range table.Rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, headerRow+1+i)
			f.SetCellValue(sheet, cell, v)
		}
	}
	summaryRow := headerRow + len(table.Rows) + 2
	for i, s := range table.Summary {
		cell, _ := excelize.CoordinatesToCellName(1, summaryRow+i)
		f.SetCellValue(sheet, cell, s)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, wrapError(KindGeneration, err, "excel belgesi üretilemedi")
	}
	return buf.Bytes(), nil
}

type pdfGenerator struct {
	kind ReportKind
}

func (g *pdfGenerator) Extension() string { return "pdf" }

func (g *pdfGenerator) Render(m *AggregatedMetrics, params Parameters) ([]byte, error) {
	table, err := buildTable(g.kind, m)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(params.GeneratedAt)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	// Türkçe karakterler için cp1254 çevirisi
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1254")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(table.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Dönem: %s - %s", params.DateFrom, params.DateTo)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Oluşturulma: "+params.GeneratedAt.Format("2006-01-02 15:04:05")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	colWidth := 180.0 / float64(len(table.Headers))
	pdf.SetFont("Arial", "B", 10)
	for _, h := range table.Headers {
		pdf.CellFormat(colWidth, 8, tr(h), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, row := range table.Rows {
		for _, v := range row {
			pdf.CellFormat(colWidth, 7, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	for _, s := range table.Summary {
		pdf.CellFormat(0, 6, tr(s), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, wrapError(KindGeneration, err, "pdf belgesi üretilemedi")
	}
	return buf.Bytes(), nil
}
