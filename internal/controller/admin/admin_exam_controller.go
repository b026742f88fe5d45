package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tuanvo/exam-portal/internal/dto"
	"github.com/tuanvo/exam-portal/internal/service"
)

type AdminExamController struct {
	examService   service.ExamService
	exportService service.ExportService
}

func NewAdminExamController(xs service.ExamService, es service.ExportService) *AdminExamController {
	return &AdminExamController{examService: xs, exportService: es}
}

// ListExams godoc
// @Summary (Admin) List all submissions with participant identity
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.ExamListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/exams [get]
func (c *AdminExamController) ListExams(ctx *gin.Context) {
	items, err := c.examService.ListExams()
	if err != nil {
		log.Error().Err(err).Msg("Admin ListExams: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list exams"})
		return
	}
	ctx.JSON(http.StatusOK, dto.ExamListResponse{Status: "success", Data: items})
}

// ExportExams godoc
// @Summary (Admin) Download one day's submissions as an .xlsx workbook
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string true "Day to export, YYYY-MM-DD"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed date"
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/exams/export [get]
func (c *AdminExamController) ExportExams(ctx *gin.Context) {
	dateStr := ctx.Query("date")
	if dateStr == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Query parameter 'date' is required (YYYY-MM-DD)"})
		return
	}
	day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	workbook, filename, err := c.exportService.ExportDay(day)
	if err != nil {
		log.Error().Err(err).Str("date", dateStr).Msg("Admin ExportExams: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to build export"})
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(ctx.Writer); err != nil {
		log.Error().Err(err).Msg("Admin ExportExams: failed to stream workbook")
	}
}
