package dto

import (
	"time"

	"github.com/tuanvo/exam-portal/internal/model"
)

type ErrorResponse struct {
	Message string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type EligibilityResponse struct {
	Eligible         bool       `json:"eligible"`
	Message          string     `json:"message"`
	ExistingExamDate *time.Time `json:"existingExamDate,omitempty"`
	ExamRef          string     `json:"examRef,omitempty"`
}

// SavedExamData echoes the stored record plus the owning participant's
// identity, as the create variant has always replied.
type SavedExamData struct {
	ID           uint                     `json:"id"`
	Ref          string                   `json:"ref"`
	Email        string                   `json:"email"`
	FullName     string                   `json:"hoTen"`
	Score        *float64                 `json:"diem"`
	CorrectCount *int                     `json:"soCauDung"`
	EnteredAt    time.Time                `json:"ngayVaoThi"`
	SubmittedAt  *time.Time               `json:"ngayNop,omitempty"`
	Questions    model.QuestionAnswerList `json:"cauHoi"`
}

type ExamSavedResponse struct {
	Message string        `json:"message"`
	Data    SavedExamData `json:"data"`
}

type ExamUpdatedResponse struct {
	Message string `json:"message"`
	ExamID  uint   `json:"examId"`
}

type ExamReviewResponse struct {
	Questions model.QuestionAnswerList `json:"danhSachCauHoi"`
}

type SendOTPResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	OTP     string `json:"otp"`
}

type SendCertificateResponse struct {
	Message string `json:"message"`
}

// ExamPaperQuestion is a bank question as handed to a test-taker: the correct
// option is deliberately absent.
type ExamPaperQuestion struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

type ExamPaperResponse struct {
	DurationSeconds int                 `json:"durationSeconds"`
	Questions       []ExamPaperQuestion `json:"questions"`
}
