// Package media implements the ingestion pipeline that turns an uploaded
// binary into a stable, durably addressable URL on the external media store.
package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/stories-service/internal/config"
)

// ErrNoPayload is returned when the binary payload is empty or absent.
var ErrNoPayload = errors.New("no payload provided")

// Uploader forwards a binary payload to the external media store and returns
// its stable URL. Implementations hold the whole payload in memory for the
// duration of one request.
type Uploader interface {
	Upload(ctx context.Context, payload []byte, mimeType string) (string, error)
}

// Client uploads to a Cloudinary-style upload API: a signed multipart POST
// requesting automatic resource type detection, scoped to a fixed folder.
// The store's response carries the secure delivery URL; the client does not
// retain it after returning.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	now        func() time.Time
}

// NewClient constructs an upload client from configuration.
func NewClient(cfg config.MediaConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    cfg.BaseURL,
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		folder:     cfg.Folder,
		now:        time.Now,
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// Upload sends the payload and returns the store's stable secure URL. An
// empty payload fails with ErrNoPayload before any network call; any
// collaborator failure is reported without a partial write.
func (c *Client) Upload(ctx context.Context, payload []byte, mimeType string) (string, error) {
	if len(payload) == 0 {
		return "", ErrNoPayload
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	publicID := uuid.NewString()
	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	fields := map[string]string{
		"api_key":   c.apiKey,
		"folder":    c.folder,
		"public_id": publicID,
		"timestamp": timestamp,
		"signature": c.sign(publicID, timestamp),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	// The payload travels as a data URI, the form the upload API accepts for
	// in-memory binaries. Resource type detection is left to the store via
	// the "auto" upload path.
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(payload))
	if err := writer.WriteField("file", dataURI); err != nil {
		return "", fmt.Errorf("write file field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	url := fmt.Sprintf("%s/%s/auto/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("media store request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("media store returned status %d: %s", resp.StatusCode, respBody)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode media store response: %w", err)
	}
	if result.SecureURL == "" {
		return "", errors.New("media store response missing secure_url")
	}
	return result.SecureURL, nil
}

// sign computes the request signature over the sorted upload parameters, as
// the upload API requires: sha1(params + api_secret).
func (c *Client) sign(publicID, timestamp string) string {
	toSign := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s%s", c.folder, publicID, timestamp, c.apiSecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(toSign)))
}
