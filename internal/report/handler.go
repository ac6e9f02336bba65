package report

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"

	"santiye-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// HTTP sınırı. Servislerden dönen hatalar tür bilgisine göre HTTP koduna
// çevrilir; taksonomi dışı hatalar merkezi error handler'a bırakılır (500).

func httpStatus(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindGeneration:
		return fiber.StatusUnprocessableEntity
	case KindStorage:
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}

func toFiberError(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return fiber.NewError(httpStatus(e.Kind), e.Message)
	}
	return err
}

type generateRequestBody struct {
	Kind        string `json:"kind"`
	ScopeID     *uint  `json:"scope_id"`
	DateFrom    string `json:"date_from"`
	DateTo      string `json:"date_to"`
	Format      string `json:"format"`
	CreatedByID uint   `json:"created_by_id"`
}

type reportResponse struct {
	ID          uint                   `json:"id"`
	Name        string                 `json:"name"`
	TypeID      uint                   `json:"type_id"`
	CreatedByID uint                   `json:"created_by_id"`
	Parameters  map[string]interface{} `json:"parameters"`
	FileName    string                 `json:"file_name"`
	FilePath    string                 `json:"file_path"`
	CreatedAt   string                 `json:"created_at"`
}

func newReportResponse(r *models.Report) reportResponse {
	// Parameters JSON parse edilemezse boş map döndür
	params := make(map[string]interface{})
	if r.Parameters != "" {
		if err := json.Unmarshal([]byte(r.Parameters), &params); err != nil {
			params = make(map[string]interface{})
		}
	}

	return reportResponse{
		ID:          r.ID,
		Name:        r.Name,
		TypeID:      r.TypeID,
		CreatedByID: r.CreatedByID,
		Parameters:  params,
		FileName:    r.FileName,
		FilePath:    r.FilePath,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/reports/generate
// Rapor üret: metrikleri topla, belgeyi üret, dosyayı yaz, katalog kaydı aç
func GenerateReportHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body generateRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		kind, err := ParseReportKind(body.Kind)
		if err != nil {
			return toFiberError(err)
		}
		if body.CreatedByID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "created_by_id zorunlu")
		}

		record, err := svc.GenerateReport(c.UserContext(), GenerateRequest{
			Kind:        kind,
			ScopeID:     body.ScopeID,
			DateFrom:    body.DateFrom,
			DateTo:      body.DateTo,
			Format:      Format(body.Format),
			CreatedByID: body.CreatedByID,
		})
		if err != nil {
			return toFiberError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(newReportResponse(record))
	}
}

// GET /api/reports
// Raporları listele; ?type_id= veya ?created_by= ile filtrelenebilir
func ListReportsHandler(qs *QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			reports []models.Report
			err     error
		)

		switch {
		case c.Query("type_id") != "":
			typeID, parseErr := parseIDParam(c.Query("type_id"))
			if parseErr != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz type_id")
			}
			reports, err = qs.ByType(c.UserContext(), typeID)
		case c.Query("created_by") != "":
			userID, parseErr := parseIDParam(c.Query("created_by"))
			if parseErr != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz created_by")
			}
			reports, err = qs.ByCreator(c.UserContext(), userID)
		default:
			reports, err = qs.All(c.UserContext())
		}
		if err != nil {
			return toFiberError(err)
		}

		resp := make([]reportResponse, 0, len(reports))
		for i := range reports {
			resp = append(resp, newReportResponse(&reports[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/reports/:id
func GetReportHandler(qs *QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		record, err := qs.ByID(c.UserContext(), id)
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(newReportResponse(record))
	}
}

// GET /api/reports/:id/download
// Katalogdaki dosya yolunu çözer; satır veya dosya yoksa 404
func DownloadReportHandler(qs *QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		record, err := qs.ByID(c.UserContext(), id)
		if err != nil {
			return toFiberError(err)
		}

		if _, err := os.Stat(record.FilePath); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Rapor dosyası bulunamadı")
		}
		return c.Download(record.FilePath, record.FileName)
	}
}

type updateRequestBody struct {
	Name       string `json:"name"`
	Parameters string `json:"parameters"`
	FileName   string `json:"file_name"`
	FilePath   string `json:"file_path"`
}

// PUT /api/reports/:id
// Değiştirilebilir alanların tamamını değiştirir
func UpdateReportHandler(qs *QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		var body updateRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" || body.FileName == "" || body.FilePath == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name, file_name ve file_path zorunlu")
		}

		record, err := qs.Update(c.UserContext(), id, UpdateRequest{
			Name:       body.Name,
			Parameters: body.Parameters,
			FileName:   body.FileName,
			FilePath:   body.FilePath,
		})
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(newReportResponse(record))
	}
}

// DELETE /api/reports/:id
// Sadece katalog satırını siler, diskteki dosya kalır
func DeleteReportHandler(qs *QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		if err := qs.Delete(c.UserContext(), id); err != nil {
			return toFiberError(err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

type reportTypeResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	TemplatePath string `json:"template_path"`
}

// GET /api/report-types
func ListReportTypesHandler(qs *QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		types, err := qs.Types(c.UserContext())
		if err != nil {
			return toFiberError(err)
		}

		resp := make([]reportTypeResponse, 0, len(types))
		for _, rt := range types {
			resp = append(resp, reportTypeResponse{
				ID:           rt.ID,
				Name:         rt.Name,
				Slug:         rt.Slug,
				Description:  rt.Description,
				TemplatePath: rt.TemplatePath,
			})
		}
		return c.JSON(resp)
	}
}

// DELETE /api/report-types/:id
// Referans veren rapor varsa 409 döner
func DeleteReportTypeHandler(qs *QueryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
		}

		if err := qs.DeleteType(c.UserContext(), id); err != nil {
			return toFiberError(err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

func parseIDParam(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("geçersiz id")
	}
	return uint(id), nil
}
