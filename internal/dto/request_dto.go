package dto

import "github.com/tuanvo/exam-portal/internal/model"

// CheckEligibilityRequest asks whether a participant may sit an exam today.
// Timestamps are the participant's own local time in RFC 3339 so day
// boundaries follow the participant's zone, not the server's.
type CheckEligibilityRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	FullName   string  `json:"hoTen" binding:"required"`
	Department *string `json:"phongBan"`
	EnteredAt  string  `json:"ngayVaoThi"`
}

// SaveExamRequest covers both save-exam variants. The create variant carries
// hoTen (a new participant may need to be registered); the update variant
// omits it and targets the participant's existing attempt.
type SaveExamRequest struct {
	Email        string                 `json:"email" binding:"required,email"`
	FullName     string                 `json:"hoTen"`
	Department   *string                `json:"phongBan"`
	Score        *float64               `json:"diem" binding:"required"`
	CorrectCount *int                   `json:"soCauDung" binding:"required"`
	Questions    []model.QuestionAnswer `json:"cauHoi"`
	EnteredAt    string                 `json:"ngayVaoThi"`
	SubmittedAt  string                 `json:"ngayNop"`
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type SendCertificateRequest struct {
	Email         string   `json:"email" binding:"required,email"`
	RecipientName string   `json:"recipientName" binding:"required"`
	Score         *float64 `json:"score" binding:"required"`
	ExamRef       string   `json:"examRef"`
}
