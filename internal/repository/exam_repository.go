package repository

import (
	"time"

	"github.com/tuanvo/exam-portal/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	Update(exam *model.Exam) error
	FindByID(id uint) (*model.Exam, error)
	FindLatestByParticipant(participantID uint) (*model.Exam, error)
	FindByParticipantInWindow(participantID uint, from, to time.Time) (*model.Exam, error)
	FindAllWithParticipants() ([]model.Exam, error)
	FindAllInWindow(from, to time.Time) ([]model.Exam, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	return r.db.Create(exam).Error
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindLatestByParticipant(participantID uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Where("participant_id = ?", participantID).
		Order("entered_at DESC").
		First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// FindByParticipantInWindow looks for an attempt whose entry instant falls in
// [from, to]. The window is computed by the caller in the participant's local
// day, so the comparison here is on instants only.
func (r *examRepository) FindByParticipantInWindow(participantID uint, from, to time.Time) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Where("participant_id = ? AND entered_at >= ? AND entered_at <= ?", participantID, from, to).
		First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAllWithParticipants() ([]model.Exam, error) {
	var exams []model.Exam
	if err := r.db.Preload("Participant").Order("entered_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) FindAllInWindow(from, to time.Time) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.Preload("Participant").
		Where("entered_at >= ? AND entered_at <= ?", from, to).
		Order("entered_at ASC").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}
