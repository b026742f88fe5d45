package session

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tuanvo/exam-portal/internal/model"
	"github.com/tuanvo/exam-portal/internal/questionbank"
)

// State is the lifecycle position of a single exam sitting.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

var (
	ErrNotEligible      = errors.New("participant is not eligible to start an exam")
	ErrAlreadyStarted   = errors.New("exam session already started")
	ErrNotInProgress    = errors.New("exam is not in progress")
	ErrAlreadySubmitted = errors.New("exam already submitted")
	ErrNotSubmitted     = errors.New("exam has not been submitted")
	ErrQuestionIndex    = errors.New("question index out of range")
)

// Recorder finalizes the attempt with the computed result.
type Recorder interface {
	FinalizeExam(email string, score float64, correctCount int, answers []model.QuestionAnswer, submittedAt time.Time) error
}

// CertificateSender delivers the certificate after a recorded submission.
type CertificateSender interface {
	SendCertificate(email, recipientName string, score float64) error
}

// Profile identifies the test-taker driving this session.
type Profile struct {
	Email    string
	FullName string
}

type Config struct {
	QuestionCount int           // questions sampled per paper
	Duration      time.Duration // total time budget
	Tick          time.Duration // countdown granularity
}

const (
	DefaultQuestionCount = 20
	DefaultDuration      = 15 * time.Minute
)

// Result is the outcome of a submitted session.
type Result struct {
	Score        float64
	CorrectCount int
	Total        int
	Answers      []model.QuestionAnswer
}

// Session drives one participant through NotStarted → InProgress → Submitted,
// with review toggling freely once submitted. Submission fires either from
// the countdown reaching zero or from the manual trigger; a submitted flag
// guards both so only the first one records.
type Session struct {
	mu       sync.Mutex
	cfg      Config
	profile  Profile
	bank     *questionbank.Bank
	recorder Recorder
	certs    CertificateSender

	state     State
	questions []questionbank.Question
	answers   []string
	remaining time.Duration
	reviewing bool
	submitted bool
	result    *Result

	stop     chan struct{}
	stopOnce sync.Once
}

func New(profile Profile, bank *questionbank.Bank, recorder Recorder, certs CertificateSender, cfg Config) *Session {
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultQuestionCount
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	if cfg.Tick <= 0 {
		cfg.Tick = time.Second
	}
	return &Session{
		cfg:      cfg,
		profile:  profile,
		bank:     bank,
		recorder: recorder,
		certs:    certs,
		state:    StateNotStarted,
		stop:     make(chan struct{}),
	}
}

// Start moves the session into InProgress after a successful eligibility
// check: it samples the paper without replacement in random order, clears all
// answers and starts the countdown.
func (s *Session) Start(eligible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNotStarted {
		return ErrAlreadyStarted
	}
	if !eligible {
		return ErrNotEligible
	}

	s.questions = s.bank.Sample(s.cfg.QuestionCount)
	s.answers = make([]string, len(s.questions))
	s.remaining = s.cfg.Duration
	s.state = StateInProgress

	go s.countdown()
	return nil
}

func (s *Session) countdown() {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.state != StateInProgress {
				s.mu.Unlock()
				return
			}
			s.remaining -= s.cfg.Tick
			if s.remaining <= 0 {
				s.remaining = 0
				if err := s.submitLocked(time.Now()); err != nil {
					log.Error().Err(err).Str("email", s.profile.Email).Msg("Timed submission failed to record")
				}
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
		}
	}
}

// Answer records the selected option for the question at index i.
func (s *Session) Answer(i int, choice string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return ErrNotInProgress
	}
	if i < 0 || i >= len(s.answers) {
		return ErrQuestionIndex
	}
	s.answers[i] = choice
	return nil
}

// Submit is the manual trigger. It shares the guarded submit path with the
// countdown, so whichever fires second is rejected.
func (s *Session) Submit() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitted {
		return s.result, ErrAlreadySubmitted
	}
	if s.state != StateInProgress {
		return nil, ErrNotInProgress
	}
	if err := s.submitLocked(time.Now()); err != nil {
		return s.result, err
	}
	return s.result, nil
}

// submitLocked scores the paper and records it. The submitted flag flips
// before any network call so a re-entrant trigger can never double-record;
// recording failures are surfaced to the caller, never retried.
func (s *Session) submitLocked(submittedAt time.Time) error {
	s.submitted = true
	s.state = StateSubmitted

	correct := 0
	audit := make([]model.QuestionAnswer, len(s.questions))
	for i, q := range s.questions {
		if s.answers[i] == q.Correct {
			correct++
		}
		audit[i] = model.QuestionAnswer{
			ID:       q.ID,
			Prompt:   q.Prompt,
			Selected: s.answers[i],
			Correct:  q.Correct,
		}
	}
	score := 0.0
	if len(s.questions) > 0 {
		score = float64(correct) / float64(len(s.questions)) * 10
	}
	s.result = &Result{
		Score:        score,
		CorrectCount: correct,
		Total:        len(s.questions),
		Answers:      audit,
	}

	if err := s.recorder.FinalizeExam(s.profile.Email, score, correct, audit, submittedAt); err != nil {
		return err
	}
	if err := s.certs.SendCertificate(s.profile.Email, s.profile.FullName, score); err != nil {
		return err
	}
	log.Info().Str("email", s.profile.Email).Float64("score", score).Int("correct", correct).Msg("Exam session submitted")
	return nil
}

// EnterReview and ExitReview toggle the post-submission review view.
func (s *Session) EnterReview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSubmitted {
		return ErrNotSubmitted
	}
	s.reviewing = true
	return nil
}

func (s *Session) ExitReview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSubmitted {
		return ErrNotSubmitted
	}
	s.reviewing = false
	return nil
}

func (s *Session) Reviewing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewing
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining is the time left on the countdown.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Questions returns the sampled paper in presentation order.
func (s *Session) Questions() []questionbank.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]questionbank.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Result returns the submission outcome, if any.
func (s *Session) Result() (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.result != nil
}

// Close cancels the countdown. Call on teardown so no ticker callback leaks.
func (s *Session) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}
