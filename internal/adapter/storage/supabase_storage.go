package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"formations-backend/internal/config"
	"formations-backend/internal/domain"
)

// SupabaseStorageAdapter implements domain.FileStorage against a
// Supabase-compatible storage HTTP API. Objects are written whole; there
// is no multipart or resumable upload.
type SupabaseStorageAdapter struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewSupabaseStorageAdapter creates a storage adapter from config.
func NewSupabaseStorageAdapter(cfg config.StorageConfig) domain.FileStorage {
	return &SupabaseStorageAdapter{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type storageError struct {
	Message string `json:"message"`
	Error_  string `json:"error"`
}

// Upload writes the object and returns its public URL.
func (s *SupabaseStorageAdapter) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	uploadURL := fmt.Sprintf("%s/object/%s/%s", s.baseURL, s.bucket, escapePath(objectPath))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	// Replace an existing object at the same path instead of failing.
	req.Header.Set("x-upsert", "true")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", parseStorageError(resp)
	}

	return fmt.Sprintf("%s/object/public/%s/%s", s.baseURL, s.bucket, escapePath(objectPath)), nil
}

// Delete removes the object. A missing object is not an error.
func (s *SupabaseStorageAdapter) Delete(ctx context.Context, objectPath string) error {
	deleteURL := fmt.Sprintf("%s/object/%s/%s", s.baseURL, s.bucket, escapePath(objectPath))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return parseStorageError(resp)
	}
	return nil
}

func parseStorageError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var se storageError
	if err := json.Unmarshal(body, &se); err == nil && se.Message != "" {
		return fmt.Errorf("storage service returned %d: %s", resp.StatusCode, se.Message)
	}
	return fmt.Errorf("storage service returned %d", resp.StatusCode)
}

func escapePath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}
