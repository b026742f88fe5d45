package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/tuanvo/exam-portal/internal/dto"
	"github.com/tuanvo/exam-portal/internal/model"
	"github.com/tuanvo/exam-portal/internal/repository"
	"gorm.io/gorm"
)

// CreateExamInput registers a participant if needed and records a fresh
// attempt in one call, for clients that submit without a prior eligibility
// check.
type CreateExamInput struct {
	Email        string
	FullName     string
	Department   *string
	Score        float64
	CorrectCount int
	Answers      []model.QuestionAnswer
	EnteredAt    *time.Time
	SubmittedAt  *time.Time
}

// UpdateExamInput finalizes the participant's existing attempt with the
// computed result. Repeated updates are last-write-wins.
type UpdateExamInput struct {
	Email        string
	Score        float64
	CorrectCount int
	Answers      []model.QuestionAnswer
	SubmittedAt  *time.Time
}

// ExamService is the only writer of scores and answer sequences.
type ExamService interface {
	CreateExam(in CreateExamInput) (*dto.SavedExamData, error)
	UpdateExam(in UpdateExamInput) (*dto.ExamUpdatedResponse, error)
	GetExamReview(id uint) (*dto.ExamReviewResponse, error)
	ListExams() ([]dto.ExamListItem, error)
}

type examService struct {
	eligibility  EligibilityService
	participRepo repository.ParticipantRepository
	examRepo     repository.ExamRepository
}

func NewExamService(eligibility EligibilityService, participRepo repository.ParticipantRepository, examRepo repository.ExamRepository) ExamService {
	return &examService{eligibility: eligibility, participRepo: participRepo, examRepo: examRepo}
}

func validateResult(score float64, correctCount int, answers []model.QuestionAnswer) error {
	if score < 0 || score > 10 {
		return ErrInvalidScore
	}
	if correctCount < 0 {
		return ErrInvalidCorrectCount
	}
	if answers != nil && correctCount > len(answers) {
		return ErrInvalidCorrectCount
	}
	return nil
}

func (s *examService) CreateExam(in CreateExamInput) (*dto.SavedExamData, error) {
	if err := validateResult(in.Score, in.CorrectCount, in.Answers); err != nil {
		return nil, err
	}

	participant, err := s.eligibility.EnsureParticipant(in.Email, in.FullName, in.Department)
	if err != nil {
		return nil, err
	}

	enteredAt := time.Now()
	if in.EnteredAt != nil {
		enteredAt = *in.EnteredAt
	}

	result, err := s.eligibility.CheckEligibility(participant, enteredAt)
	if err != nil {
		return nil, err
	}
	if !result.Eligible {
		return nil, ErrExamAlreadyExists
	}

	exam, err := s.eligibility.OpenAttempt(participant, enteredAt)
	if err != nil {
		return nil, err
	}

	submittedAt := time.Now()
	if in.SubmittedAt != nil {
		submittedAt = *in.SubmittedAt
	}
	exam.Score = &in.Score
	exam.CorrectCount = &in.CorrectCount
	exam.Questions = in.Answers
	exam.SubmittedAt = &submittedAt
	if err := s.examRepo.Update(exam); err != nil {
		log.Error().Err(err).Uint("examID", exam.ID).Msg("CreateExam: failed to store result")
		return nil, fmt.Errorf("error saving exam: %w", err)
	}
	log.Info().Uint("examID", exam.ID).Str("email", in.Email).Float64("score", in.Score).Msg("Exam recorded")

	var data dto.SavedExamData
	if err := copier.Copy(&data, exam); err != nil {
		log.Error().Err(err).Msg("CreateExam: failed to copy exam to response data")
		return nil, fmt.Errorf("error preparing response: %w", err)
	}
	data.Email = participant.Email
	data.FullName = participant.FullName
	return &data, nil
}

func (s *examService) UpdateExam(in UpdateExamInput) (*dto.ExamUpdatedResponse, error) {
	if err := validateResult(in.Score, in.CorrectCount, in.Answers); err != nil {
		return nil, err
	}

	participant, err := s.participRepo.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		log.Error().Err(err).Str("email", in.Email).Msg("UpdateExam: participant lookup failed")
		return nil, fmt.Errorf("error looking up participant: %w", err)
	}

	exam, err := s.examRepo.FindLatestByParticipant(participant.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		log.Error().Err(err).Uint("participantID", participant.ID).Msg("UpdateExam: exam lookup failed")
		return nil, fmt.Errorf("error looking up exam: %w", err)
	}

	submittedAt := time.Now()
	if in.SubmittedAt != nil {
		submittedAt = *in.SubmittedAt
	}
	exam.Score = &in.Score
	exam.CorrectCount = &in.CorrectCount
	exam.Questions = in.Answers
	exam.SubmittedAt = &submittedAt

	if err := s.examRepo.Update(exam); err != nil {
		log.Error().Err(err).Uint("examID", exam.ID).Msg("UpdateExam: save failed")
		return nil, fmt.Errorf("error updating exam: %w", err)
	}
	log.Info().Uint("examID", exam.ID).Str("email", in.Email).Float64("score", in.Score).Msg("Exam finalized")

	return &dto.ExamUpdatedResponse{Message: "Exam saved successfully", ExamID: exam.ID}, nil
}

func (s *examService) GetExamReview(id uint) (*dto.ExamReviewResponse, error) {
	exam, err := s.examRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		log.Error().Err(err).Uint("examID", id).Msg("GetExamReview: lookup failed")
		return nil, fmt.Errorf("error fetching exam: %w", err)
	}
	return &dto.ExamReviewResponse{Questions: exam.Questions}, nil
}

func (s *examService) ListExams() ([]dto.ExamListItem, error) {
	exams, err := s.examRepo.FindAllWithParticipants()
	if err != nil {
		log.Error().Err(err).Msg("ListExams: query failed")
		return nil, fmt.Errorf("error fetching exams: %w", err)
	}

	items := make([]dto.ExamListItem, 0, len(exams))
	for _, exam := range exams {
		department := ""
		if exam.Participant.Department != nil {
			department = *exam.Participant.Department
		}
		items = append(items, dto.ExamListItem{
			FullName:     exam.Participant.FullName,
			Email:        exam.Participant.Email,
			Department:   department,
			Score:        exam.Score,
			CorrectCount: exam.CorrectCount,
			Questions:    exam.Questions,
			EnteredAt:    exam.EnteredAt,
			SubmittedAt:  exam.SubmittedAt,
		})
	}
	return items, nil
}
