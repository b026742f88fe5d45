package user_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tuanvo/exam-portal/internal/controller/user"
	"github.com/tuanvo/exam-portal/internal/dto"
	"github.com/tuanvo/exam-portal/internal/service"
)

type fakeOTPSvc struct {
	code  string
	err   error
	calls int
}

func (f *fakeOTPSvc) SendOTP(email string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.code, nil
}

type fakeCertificateSvc struct {
	err   error
	calls int
	email string
	who   string
	score float64
	ref   string
}

func (f *fakeCertificateSvc) SendCertificate(email, recipientName string, score float64, examRef string) error {
	f.calls++
	f.email = email
	f.who = recipientName
	f.score = score
	f.ref = examRef
	return f.err
}

func newNotificationRouter(otp service.OTPService, certs service.CertificateService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := user.NewNotificationController(otp, certs)

	router := gin.New()
	router.POST("/api/v1/send-otp", ctrl.SendOTP)
	router.POST("/api/v1/send-certificate", ctrl.SendCertificate)
	return router
}

func TestSendOTPReturnsCode(t *testing.T) {
	otp := &fakeOTPSvc{code: "12345"}
	router := newNotificationRouter(otp, &fakeCertificateSvc{})

	w := postJSON(t, router, "/api/v1/send-otp", `{"email":"alice@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	var resp dto.SendOTPResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.OTP != "12345" || resp.Email != "alice@example.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSendOTPMissingEmail(t *testing.T) {
	otp := &fakeOTPSvc{code: "12345"}
	router := newNotificationRouter(otp, &fakeCertificateSvc{})

	w := postJSON(t, router, "/api/v1/send-otp", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body)
	}
	if otp.calls != 0 {
		t.Fatal("missing email must not reach the service")
	}
}

func TestSendOTPInvalidEmail(t *testing.T) {
	otp := &fakeOTPSvc{err: service.ErrInvalidEmail}
	router := newNotificationRouter(otp, &fakeCertificateSvc{})

	w := postJSON(t, router, "/api/v1/send-otp", `{"email":"nope@"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body)
	}
}

func TestSendOTPDeliveryError(t *testing.T) {
	otp := &fakeOTPSvc{err: errors.New("smtp down")}
	router := newNotificationRouter(otp, &fakeCertificateSvc{})

	w := postJSON(t, router, "/api/v1/send-otp", `{"email":"alice@example.com"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body)
	}
}

func TestSendCertificatePassesFields(t *testing.T) {
	certs := &fakeCertificateSvc{}
	router := newNotificationRouter(&fakeOTPSvc{}, certs)

	w := postJSON(t, router, "/api/v1/send-certificate",
		`{"email":"alice@example.com","recipientName":"Alice","score":8.5,"examRef":"ref-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if certs.calls != 1 || certs.email != "alice@example.com" || certs.who != "Alice" {
		t.Fatalf("service got wrong identity: %+v", certs)
	}
	if certs.score != 8.5 || certs.ref != "ref-1" {
		t.Fatalf("service got wrong result: score=%v ref=%q", certs.score, certs.ref)
	}
}

func TestSendCertificateZeroScoreAllowed(t *testing.T) {
	certs := &fakeCertificateSvc{}
	router := newNotificationRouter(&fakeOTPSvc{}, certs)

	w := postJSON(t, router, "/api/v1/send-certificate",
		`{"email":"bob@example.com","recipientName":"Bob","score":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if certs.calls != 1 || certs.score != 0 {
		t.Fatalf("zero score must pass through, got %+v", certs)
	}
}

func TestSendCertificateMissingScore(t *testing.T) {
	certs := &fakeCertificateSvc{}
	router := newNotificationRouter(&fakeOTPSvc{}, certs)

	w := postJSON(t, router, "/api/v1/send-certificate",
		`{"email":"bob@example.com","recipientName":"Bob"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body)
	}
	if certs.calls != 0 {
		t.Fatal("missing score must not reach the service")
	}
}

func TestSendCertificateValidationErrors(t *testing.T) {
	for _, svcErr := range []error{service.ErrInvalidEmail, service.ErrMissingRecipient, service.ErrInvalidScore} {
		certs := &fakeCertificateSvc{err: svcErr}
		router := newNotificationRouter(&fakeOTPSvc{}, certs)

		w := postJSON(t, router, "/api/v1/send-certificate",
			`{"email":"alice@example.com","recipientName":"Alice","score":5}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("error %v: expected 400, got %d", svcErr, w.Code)
		}
	}
}

func TestSendCertificateDeliveryError(t *testing.T) {
	certs := &fakeCertificateSvc{err: errors.New("smtp down")}
	router := newNotificationRouter(&fakeOTPSvc{}, certs)

	w := postJSON(t, router, "/api/v1/send-certificate",
		`{"email":"alice@example.com","recipientName":"Alice","score":5}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body)
	}
}
