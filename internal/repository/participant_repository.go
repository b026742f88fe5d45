package repository

import (
	"github.com/tuanvo/exam-portal/internal/model"
	"gorm.io/gorm"
)

type ParticipantRepository interface {
	Create(participant *model.Participant) error
	FindByEmail(email string) (*model.Participant, error)
	FindByID(id uint) (*model.Participant, error)
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(participant *model.Participant) error {
	return r.db.Create(participant).Error
}

func (r *participantRepository) FindByEmail(email string) (*model.Participant, error) {
	var participant model.Participant
	if err := r.db.Where("email = ?", email).First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) FindByID(id uint) (*model.Participant, error) {
	var participant model.Participant
	if err := r.db.First(&participant, id).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}
