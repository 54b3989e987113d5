package docgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shiftcrew/staffing-backend-go/internal/config"
)

// Client talks to the document generation service that renders signed
// timesheet PDFs.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.DocGenConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// APIError represents an error response from the document service
type APIError struct {
	StatusCode int
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("docgen API error [%d] %s: %s", e.StatusCode, e.ErrorCode, e.Message)
}

type generateRequest struct {
	TimesheetID      string `json:"timesheet_id"`
	SignaturePayload string `json:"signature_payload"`
	SignerName       string `json:"signer_name"`
}

type generateResponse struct {
	DocumentURL string `json:"document_url"`
}

// GenerateSignedTimesheet renders a signed timesheet PDF and returns
// the URL where the document can be downloaded.
func (c *Client) GenerateSignedTimesheet(ctx context.Context, timesheetID, signaturePayload, signerName string) (string, error) {
	body, err := json.Marshal(generateRequest{
		TimesheetID:      timesheetID,
		SignaturePayload: signaturePayload,
		SignerName:       signerName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal docgen request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/timesheets/generate", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build docgen request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("docgen request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr := json.NewDecoder(resp.Body).Decode(apiErr); decodeErr != nil {
			apiErr.Message = "unexpected response from document service"
		}
		return "", apiErr
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode docgen response: %w", err)
	}

	return result.DocumentURL, nil
}
