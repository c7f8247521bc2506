package rubricgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"acadmin/model"
)

// RequestTimeout bounds the generator call. There is no retry: if the
// service does not answer within the window the request fails outright.
const RequestTimeout = 90 * time.Second

// Client handles communication with the PDF-to-rubric generation service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// GenerateResponse is the structured rubric returned by the service.
type GenerateResponse struct {
	Name     string                  `json:"name"`
	Criteria []model.RubricCriterion `json:"criteria"`
}

// NewClient creates a new rubric generator client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// GenerateFromPDF posts a PDF to the generator and returns the structured
// rubric it produced.
func (c *Client) GenerateFromPDF(ctx context.Context, pdfBytes []byte, filename string) (*GenerateResponse, error) {
	// Create multipart form
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := part.Write(pdfBytes); err != nil {
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/generate", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rubric service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rubric service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(genResp.Criteria) == 0 {
		return nil, fmt.Errorf("rubric service returned no criteria")
	}

	return &genResp, nil
}
