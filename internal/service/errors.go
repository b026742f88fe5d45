package service

import "errors"

var (
	// ErrParticipantNotFound is returned when an update references an email
	// that was never registered.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrExamNotFound is returned when no attempt exists for the given id or
	// participant.
	ErrExamNotFound = errors.New("exam not found")
	// ErrExamAlreadyExists signals the per-day attempt policy: the
	// participant already has an attempt on that calendar day.
	ErrExamAlreadyExists = errors.New("an exam already exists for this participant today")
	// ErrInvalidEmail is returned for syntactically invalid email addresses.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrMissingRecipient is returned when a certificate request has no
	// recipient name.
	ErrMissingRecipient = errors.New("recipient name is required")
	// ErrInvalidScore is returned when a score falls outside the 0–10 scale.
	ErrInvalidScore = errors.New("score must be between 0 and 10")
	// ErrInvalidCorrectCount is returned when the correct-answer count is
	// negative or exceeds the number of submitted answers.
	ErrInvalidCorrectCount = errors.New("correct count must be non-negative and not exceed the number of answers")
	// ErrMailDelivery wraps SMTP transport failures.
	ErrMailDelivery = errors.New("failed to send email")
)
