package model

import (
	"time"

	"gorm.io/gorm"
)

// Exam is one exam-taking episode belonging to a Participant.
//
// An exam with no SubmittedAt and no Score is in progress; once both are set
// it is completed and its question list is immutable. The composite unique
// index on (participant_id, exam_day) enforces the one-attempt-per-day policy
// at the store, so concurrent openings for the same participant collapse into
// a single row instead of racing a prior existence check.
type Exam struct {
	ID            uint               `gorm:"primarykey" json:"id"`
	Ref           string             `json:"ref" gorm:"not null;uniqueIndex;size:36"`
	ParticipantID uint               `json:"participant_id" gorm:"not null;uniqueIndex:idx_exams_participant_day"`
	Participant   Participant        `json:"participant,omitempty" gorm:"foreignKey:ParticipantID"`
	ExamDay       string             `json:"exam_day" gorm:"type:date;not null;uniqueIndex:idx_exams_participant_day"`
	EnteredAt     time.Time          `json:"entered_at" gorm:"not null"`
	SubmittedAt   *time.Time         `json:"submitted_at,omitempty"`
	Score         *float64           `json:"score,omitempty"`
	CorrectCount  *int               `json:"correct_count,omitempty"`
	Questions     QuestionAnswerList `json:"questions" gorm:"type:jsonb"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`
}

// DayKey is the calendar-day key for a timestamp, in that timestamp's own
// location. The participant's local day decides the attempt window, not the
// server clock.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Completed reports whether the exam has been finalized with a score.
func (e *Exam) Completed() bool {
	return e.SubmittedAt != nil && e.Score != nil
}
