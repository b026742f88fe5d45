package dto

import (
	"time"

	"github.com/tuanvo/exam-portal/internal/model"
)

// ExamListItem is one submission joined with its participant, using the field
// names the admin dashboard consumes.
type ExamListItem struct {
	FullName     string                   `json:"hoTen"`
	Email        string                   `json:"email"`
	Department   string                   `json:"phongBan"`
	Score        *float64                 `json:"diemSo"`
	CorrectCount *int                     `json:"soCauDung"`
	Questions    model.QuestionAnswerList `json:"noiDungBaiThi"`
	EnteredAt    time.Time                `json:"ngayThi"`
	SubmittedAt  *time.Time               `json:"ngayNop,omitempty"`
}

type ExamListResponse struct {
	Status string         `json:"status"`
	Data   []ExamListItem `json:"data"`
}
