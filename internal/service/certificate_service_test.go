package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/tuanvo/exam-portal/config"
	"github.com/tuanvo/exam-portal/internal/service"
)

func newCertificateFixture(baseURL string) (service.CertificateService, *fakeMailer) {
	m := &fakeMailer{}
	cfg := &config.Config{Server: config.Server{BaseURL: baseURL}}
	return service.NewCertificateService(m, cfg), m
}

func TestSendCertificateRendersResult(t *testing.T) {
	svc, m := newCertificateFixture("https://exam.example.com/")

	err := svc.SendCertificate("alice@example.com", "Alice Nguyen", 8.5, "ref-123")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if len(m.to) != 1 || m.to[0] != "alice@example.com" {
		t.Fatalf("mail went to %v", m.to)
	}

	html := m.htmls[0]
	if !strings.Contains(html, "Alice Nguyen") {
		t.Fatal("certificate missing recipient name")
	}
	if !strings.Contains(html, "8.5") {
		t.Fatal("certificate missing score")
	}
	if !strings.Contains(html, "https://exam.example.com/reviewbaithi/ref-123") {
		t.Fatal("certificate missing review link")
	}
	if !strings.Contains(m.texts[0], "8.5") {
		t.Fatal("plain-text body missing score")
	}
}

func TestSendCertificateWithoutRef(t *testing.T) {
	svc, m := newCertificateFixture("https://exam.example.com")

	if err := svc.SendCertificate("bob@example.com", "Bob", 6, ""); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if strings.Contains(m.htmls[0], "reviewbaithi") {
		t.Fatal("certificate must omit the review link without a reference")
	}
}

func TestSendCertificateValidation(t *testing.T) {
	svc, m := newCertificateFixture("https://exam.example.com")

	cases := []struct {
		name  string
		email string
		who   string
		score float64
		want  error
	}{
		{"bad email", "nope", "Alice", 5, service.ErrInvalidEmail},
		{"missing recipient", "alice@example.com", "", 5, service.ErrMissingRecipient},
		{"score below range", "alice@example.com", "Alice", -0.5, service.ErrInvalidScore},
		{"score above range", "alice@example.com", "Alice", 11, service.ErrInvalidScore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.SendCertificate(tc.email, tc.who, tc.score, ""); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if len(m.to) != 0 {
		t.Fatalf("invalid input must not send mail, got %d", len(m.to))
	}
}

func TestSendCertificateDeliveryFailure(t *testing.T) {
	m := &fakeMailer{err: errors.New("connection reset")}
	cfg := &config.Config{Server: config.Server{BaseURL: ""}}
	svc := service.NewCertificateService(m, cfg)

	if err := svc.SendCertificate("carol@example.com", "Carol", 7, "ref"); !errors.Is(err, service.ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}
}
