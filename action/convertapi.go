package action

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultConvertBaseURL is the hosted conversion endpoint.
const DefaultConvertBaseURL = "https://v2.convertapi.com"

// ConvertClient talks to the ConvertAPI compression endpoint.
type ConvertClient struct {
	httpClient *http.Client
	baseURL    string
	secret     string
}

// NewConvertClient creates a client for the PDF compression service.
// Returns nil when no secret is configured so callers can feature-gate.
func NewConvertClient(secret, baseURL string) *ConvertClient {
	if secret == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = DefaultConvertBaseURL
	}
	return &ConvertClient{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		baseURL:    baseURL,
		secret:     secret,
	}
}

type convertResponse struct {
	Files []struct {
		FileName string `json:"FileName"`
		FileData string `json:"FileData"`
	} `json:"Files"`
}

// CompressPDF uploads the file at path for compression and overwrites it
// with the compressed result.
func (c *ConvertClient) CompressPDF(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("File", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read PDF: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload: %w", err)
	}

	url := fmt.Sprintf("%s/convert/pdf/to/compress?Secret=%s", c.baseURL, c.secret)
	req, err := http.NewRequest(http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("conversion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("conversion service returned %d: %s", resp.StatusCode, string(msg))
	}

	var converted convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&converted); err != nil {
		return fmt.Errorf("failed to decode conversion response: %w", err)
	}
	if len(converted.Files) == 0 {
		return fmt.Errorf("conversion service returned no files")
	}

	data, err := base64.StdEncoding.DecodeString(converted.Files[0].FileData)
	if err != nil {
		return fmt.Errorf("failed to decode compressed file: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write compressed PDF: %w", err)
	}
	return nil
}
