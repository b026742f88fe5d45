package service

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tuanvo/exam-portal/config"
	"github.com/tuanvo/exam-portal/internal/mailer"
)

var certificateTmpl = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    .certificate {
      border: 4px double #2c3e50;
      padding: 30px;
      max-width: 700px;
      margin: 20px auto;
      font-family: 'Open Sans', sans-serif;
      text-align: center;
      background: linear-gradient(135deg, #f5f7fa 0%, #c3cfe2 100%);
      border-radius: 10px;
    }
    .header {
      font-size: 32px;
      font-weight: bold;
      color: #2c3e50;
      text-transform: uppercase;
      letter-spacing: 2px;
    }
    .date { font-size: 16px; color: #555; font-style: italic; }
    .recipient {
      font-size: 36px;
      font-weight: bold;
      color: #1a3c34;
      margin: 20px 0;
      border-bottom: 2px solid #1a3c34;
      display: inline-block;
      padding: 5px 20px;
    }
    .course { font-size: 20px; color: #333; margin: 10px 0; }
    .score {
      font-size: 24px;
      color: #d35400;
      font-weight: bold;
      background: #fff3e0;
      padding: 10px 20px;
      border: 1px dashed #d35400;
      border-radius: 5px;
      display: inline-block;
    }
    .review-link { margin: 20px 0; font-size: 18px; }
    .review-link a {
      color: #2980b9;
      text-decoration: none;
      font-weight: bold;
      padding: 8px 16px;
      border: 2px solid #2980b9;
      border-radius: 5px;
    }
    .issuer { font-size: 16px; color: #7f8c8d; margin-top: 20px; font-style: italic; }
    .signature { margin-top: 30px; font-size: 18px; color: #2980b9; font-style: italic; }
  </style>
</head>
<body>
  <div class="certificate">
    <div class="header">Test Result</div>
    <p class="date">{{.Date}}</p>
    <div class="recipient">{{.RecipientName}}</div>
    <div class="course">Congratulations! You have successfully completed the assessment.</div>
    <div class="score">Your score: {{.Score}} / 10</div>
    {{if .ReviewURL}}
    <div class="review-link">
      <a href="{{.ReviewURL}}" target="_blank">Review your work</a>
    </div>
    {{end}}
    <div class="issuer">Issued by</div>
    <div class="signature">Exam Portal Training Team</div>
  </div>
</body>
</html>`))

type certificateData struct {
	Date          string
	RecipientName string
	Score         string
	ReviewURL     string
}

// CertificateService renders and emails the result certificate after a
// successful submission.
type CertificateService interface {
	SendCertificate(email, recipientName string, score float64, examRef string) error
}

type certificateService struct {
	mailer  mailer.Mailer
	baseURL string
}

func NewCertificateService(m mailer.Mailer, cfg *config.Config) CertificateService {
	return &certificateService{mailer: m, baseURL: strings.TrimRight(cfg.Server.BaseURL, "/")}
}

func (s *certificateService) SendCertificate(email, recipientName string, score float64, examRef string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if recipientName == "" {
		return ErrMissingRecipient
	}
	if score < 0 || score > 10 {
		return ErrInvalidScore
	}

	data := certificateData{
		Date:          time.Now().Format("January 2, 2006"),
		RecipientName: recipientName,
		Score:         fmt.Sprintf("%.1f", score),
	}
	if examRef != "" && s.baseURL != "" {
		data.ReviewURL = fmt.Sprintf("%s/reviewbaithi/%s", s.baseURL, examRef)
	}

	var html strings.Builder
	if err := certificateTmpl.Execute(&html, data); err != nil {
		log.Error().Err(err).Msg("SendCertificate: template render failed")
		return fmt.Errorf("error rendering certificate: %w", err)
	}

	text := fmt.Sprintf("Congratulations %s! Your score: %.1f / 10.", recipientName, score)
	if err := s.mailer.Send(email, "Your Exam Certificate", text, html.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}
