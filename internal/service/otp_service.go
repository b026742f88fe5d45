package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"

	"github.com/rs/zerolog/log"
	"github.com/tuanvo/exam-portal/internal/mailer"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// OTPService generates and emails 5-digit registration codes. The code is
// returned to the caller, which hands it back to the client for client-side
// comparison. That trust model is deliberately weak and is kept as-is; this
// is not an authentication boundary.
type OTPService interface {
	SendOTP(email string) (string, error)
}

type otpService struct {
	mailer mailer.Mailer
}

func NewOTPService(m mailer.Mailer) OTPService {
	return &otpService{mailer: m}
}

func (s *otpService) SendOTP(email string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}

	code, err := generateOTP()
	if err != nil {
		log.Error().Err(err).Msg("SendOTP: code generation failed")
		return "", fmt.Errorf("error generating OTP: %w", err)
	}

	text := fmt.Sprintf("Your OTP code is: %s. It is valid for 10 minutes.", code)
	html := fmt.Sprintf("<p>Your OTP code is: <strong>%s</strong>. It is valid for 10 minutes.</p>", code)
	if err := s.mailer.Send(email, "Registration Verification Code", text, html); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return code, nil
}

// generateOTP draws a uniform 5-digit code in [10000, 99999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()+10000), nil
}
