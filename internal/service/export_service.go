package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tuanvo/exam-portal/internal/repository"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "DanhSachBaiThi"

// ExportService builds the admin spreadsheet of one day's submissions.
type ExportService interface {
	ExportDay(day time.Time) (*excelize.File, string, error)
}

type exportService struct {
	examRepo repository.ExamRepository
}

func NewExportService(examRepo repository.ExamRepository) ExportService {
	return &exportService{examRepo: examRepo}
}

func (s *exportService) ExportDay(day time.Time) (*excelize.File, string, error) {
	from, to := dayWindow(day)
	exams, err := s.examRepo.FindAllInWindow(from, to)
	if err != nil {
		log.Error().Err(err).Time("day", day).Msg("ExportDay: query failed")
		return nil, "", fmt.Errorf("error fetching exams for export: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, "", fmt.Errorf("failed to name export sheet: %w", err)
	}

	headers := []string{"STT", "Họ và Tên", "Email", "Điểm Số", "Số Câu Đúng", "Ngày Thi"}
	widths := []float64{10, 20, 30, 15, 15, 15}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, "", err
		}
		col := string(rune('A' + i))
		if err := f.SetColWidth(exportSheet, col, col, widths[i]); err != nil {
			return nil, "", err
		}
	}

	for i, exam := range exams {
		score := 0.0
		if exam.Score != nil {
			score = *exam.Score
		}
		correct := 0
		if exam.CorrectCount != nil {
			correct = *exam.CorrectCount
		}
		values := []interface{}{
			i + 1,
			exam.Participant.FullName,
			exam.Participant.Email,
			score,
			fmt.Sprintf("%d / %d", correct, len(exam.Questions)),
			exam.EnteredAt.Format("02/01/2006"),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, "", err
			}
		}
	}

	filename := fmt.Sprintf("DanhSachBaiThi_%s.xlsx", day.Format("2006-01-02"))
	log.Info().Int("rows", len(exams)).Str("file", filename).Msg("Export workbook built")
	return f, filename, nil
}
