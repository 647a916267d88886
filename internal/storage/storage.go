// internal/storage/storage.go
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"sanctra-backend/internal/config"
)

// Store persists generated media in an S3-compatible bucket and turns
// provider results (remote URLs or data URIs) into bytes first.
type Store struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	httpClient    *http.Client
	logger        *zap.Logger
}

func New(cfg config.StorageConfig, logger *zap.Logger) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		logger:        logger,
	}, nil
}

// Materialize resolves a provider result into raw bytes plus a content
// type: data URIs are decoded in place, anything else is fetched.
func (s *Store) Materialize(ctx context.Context, rawURL string) ([]byte, string, error) {
	if strings.HasPrefix(rawURL, "data:") {
		return decodeDataURI(rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download generated media: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download generated media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download generated media: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download generated media: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func decodeDataURI(uri string) ([]byte, string, error) {
	header, encoded, found := strings.Cut(uri, ",")
	if !found {
		return nil, "", fmt.Errorf("malformed data URI")
	}

	contentType := "application/octet-stream"
	if rest, ok := strings.CutPrefix(header, "data:"); ok {
		if mime, _, ok := strings.Cut(rest, ";"); ok && mime != "" {
			contentType = mime
		}
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URI: %w", err)
	}

	return data, contentType, nil
}

// Upload writes the bytes under objectName and returns the public URL.
func (s *Store) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	s.logger.Debug("artifact stored",
		zap.String("object", objectName),
		zap.Int("bytes", len(data)),
		zap.String("contentType", contentType))

	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, objectName), nil
}
