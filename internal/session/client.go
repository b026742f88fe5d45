package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tuanvo/exam-portal/internal/dto"
	"github.com/tuanvo/exam-portal/internal/model"
)

// APIClient is the HTTP implementation of Recorder and CertificateSender,
// speaking to a running exam-portal server. Calls are fire-and-await with no
// retry; a non-2xx reply surfaces the server's error message.
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *APIClient) FinalizeExam(email string, score float64, correctCount int, answers []model.QuestionAnswer, submittedAt time.Time) error {
	req := dto.SaveExamRequest{
		Email:        email,
		Score:        &score,
		CorrectCount: &correctCount,
		Questions:    answers,
		SubmittedAt:  submittedAt.Format(time.RFC3339),
	}
	return c.post("/api/v1/save-exam", req)
}

func (c *APIClient) SendCertificate(email, recipientName string, score float64) error {
	req := dto.SendCertificateRequest{
		Email:         email,
		RecipientName: recipientName,
		Score:         &score,
	}
	return c.post("/api/v1/send-certificate", req)
}

func (c *APIClient) post(path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.HTTPClient.Post(c.BaseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errBody dto.ErrorResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
		return fmt.Errorf("%s: %s", path, errBody.Message)
	}
	return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
}
