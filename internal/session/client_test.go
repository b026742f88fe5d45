package session_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tuanvo/exam-portal/internal/dto"
	"github.com/tuanvo/exam-portal/internal/model"
	"github.com/tuanvo/exam-portal/internal/session"
)

func TestAPIClientFinalizeExam(t *testing.T) {
	var got dto.SaveExamRequest
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Exam saved successfully","examId":7}`))
	}))
	defer server.Close()

	client := session.NewAPIClient(server.URL + "/")
	submittedAt := time.Date(2026, 3, 10, 9, 14, 0, 0, time.UTC)
	answers := []model.QuestionAnswer{{ID: 1, Prompt: "Q1", Selected: "A", Correct: "A"}}

	if err := client.FinalizeExam("alice@example.com", 7.5, 15, answers, submittedAt); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if gotPath != "/api/v1/save-exam" {
		t.Fatalf("posted to %q", gotPath)
	}
	if got.Email != "alice@example.com" {
		t.Fatalf("email wrong: %q", got.Email)
	}
	// No hoTen means the server treats this as finalizing an existing attempt.
	if got.FullName != "" {
		t.Fatalf("expected no hoTen, got %q", got.FullName)
	}
	if got.Score == nil || *got.Score != 7.5 || got.CorrectCount == nil || *got.CorrectCount != 15 {
		t.Fatalf("result wrong: score=%v correct=%v", got.Score, got.CorrectCount)
	}
	if len(got.Questions) != 1 || got.Questions[0].Prompt != "Q1" {
		t.Fatalf("answers wrong: %+v", got.Questions)
	}
	if got.SubmittedAt != "2026-03-10T09:14:00Z" {
		t.Fatalf("submit time wrong: %q", got.SubmittedAt)
	}
}

func TestAPIClientSendCertificate(t *testing.T) {
	var got dto.SendCertificateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/send-certificate" {
			t.Errorf("posted to %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Certificate sent to your email"}`))
	}))
	defer server.Close()

	client := session.NewAPIClient(server.URL)
	if err := client.SendCertificate("alice@example.com", "Alice", 7.5); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got.Email != "alice@example.com" || got.RecipientName != "Alice" {
		t.Fatalf("identity wrong: %+v", got)
	}
	if got.Score == nil || *got.Score != 7.5 {
		t.Fatalf("score wrong: %v", got.Score)
	}
}

func TestAPIClientSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"exam not found"}`))
	}))
	defer server.Close()

	client := session.NewAPIClient(server.URL)
	err := client.FinalizeExam("ghost@example.com", 5, 10, nil, time.Now())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "exam not found") {
		t.Fatalf("expected server message in error, got %v", err)
	}
}

func TestAPIClientUnreachableServer(t *testing.T) {
	client := session.NewAPIClient("http://127.0.0.1:1")
	if err := client.SendCertificate("alice@example.com", "Alice", 5); err == nil {
		t.Fatal("expected a transport error")
	}
}
