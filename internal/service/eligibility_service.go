package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tuanvo/exam-portal/internal/model"
	"github.com/tuanvo/exam-portal/internal/repository"
	"gorm.io/gorm"
)

// EligibilityResult is the outcome of a per-day eligibility check.
type EligibilityResult struct {
	Eligible         bool
	ExistingExamDate *time.Time
}

// EligibilityService decides whether a participant may start an attempt on a
// given local day. Lookup, registration and attempt opening are separate
// operations so the HTTP layer composes them explicitly instead of hiding
// writes inside a check.
type EligibilityService interface {
	EnsureParticipant(email, fullName string, department *string) (*model.Participant, error)
	CheckEligibility(participant *model.Participant, localTime time.Time) (*EligibilityResult, error)
	OpenAttempt(participant *model.Participant, localTime time.Time) (*model.Exam, error)
}

type eligibilityService struct {
	participantRepo repository.ParticipantRepository
	examRepo        repository.ExamRepository
}

func NewEligibilityService(participantRepo repository.ParticipantRepository, examRepo repository.ExamRepository) EligibilityService {
	return &eligibilityService{participantRepo: participantRepo, examRepo: examRepo}
}

// EnsureParticipant returns the participant for email, registering one when
// absent. A concurrent registration losing the unique-index race is resolved
// by re-reading the winner's row.
func (s *eligibilityService) EnsureParticipant(email, fullName string, department *string) (*model.Participant, error) {
	participant, err := s.participantRepo.FindByEmail(email)
	if err == nil {
		return participant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str("email", email).Msg("EnsureParticipant: lookup failed")
		return nil, fmt.Errorf("error looking up participant: %w", err)
	}

	created := &model.Participant{Email: email, FullName: fullName, Department: department}
	if err := s.participantRepo.Create(created); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.participantRepo.FindByEmail(email)
		}
		log.Error().Err(err).Str("email", email).Msg("EnsureParticipant: create failed")
		return nil, fmt.Errorf("error registering participant: %w", err)
	}
	log.Info().Str("email", email).Uint("participantID", created.ID).Msg("Registered new participant")
	return created, nil
}

// CheckEligibility reports whether the participant already has an attempt on
// the calendar day containing localTime. The window is computed in the
// timestamp's own location; using the server clock here would break at
// timezone boundaries.
func (s *eligibilityService) CheckEligibility(participant *model.Participant, localTime time.Time) (*EligibilityResult, error) {
	from, to := dayWindow(localTime)

	existing, err := s.examRepo.FindByParticipantInWindow(participant.ID, from, to)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &EligibilityResult{Eligible: true}, nil
		}
		log.Error().Err(err).Uint("participantID", participant.ID).Msg("CheckEligibility: window query failed")
		return nil, fmt.Errorf("error checking exam history: %w", err)
	}

	entered := existing.EnteredAt
	return &EligibilityResult{Eligible: false, ExistingExamDate: &entered}, nil
}

// OpenAttempt creates the in-progress attempt for the participant's local
// day. The (participant, day) unique index is the real guard; a duplicate-key
// violation is reported as the policy conflict rather than trusting a prior
// existence check.
func (s *eligibilityService) OpenAttempt(participant *model.Participant, localTime time.Time) (*model.Exam, error) {
	exam := &model.Exam{
		Ref:           uuid.NewString(),
		ParticipantID: participant.ID,
		ExamDay:       model.DayKey(localTime),
		EnteredAt:     localTime,
	}
	if err := s.examRepo.Create(exam); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrExamAlreadyExists
		}
		log.Error().Err(err).Uint("participantID", participant.ID).Msg("OpenAttempt: create failed")
		return nil, fmt.Errorf("error opening attempt: %w", err)
	}
	log.Info().Uint("participantID", participant.ID).Str("examRef", exam.Ref).Msg("Opened exam attempt")
	return exam, nil
}

// dayWindow is the inclusive [00:00:00, 23:59:59.999999999] span of the
// calendar day containing t, in t's location.
func dayWindow(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	to := from.Add(24*time.Hour - time.Nanosecond)
	return from, to
}
