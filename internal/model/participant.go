package model

import (
	"time"

	"gorm.io/gorm"
)

// Participant is a registered test-taker, identified uniquely by email.
// Participants are created lazily the first time an eligibility check or
// submission references an unknown email, and are never deleted by this service.
type Participant struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Email      string         `json:"email" gorm:"not null;uniqueIndex;size:255"`
	FullName   string         `json:"full_name" gorm:"not null"`
	Department *string        `json:"department,omitempty"`
	Exams      []Exam         `json:"exams,omitempty" gorm:"foreignKey:ParticipantID"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
