// Package archive stores raw webhook payloads in S3 for audit and replay.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/NaimTheDev/connectly-app/internal/config"
	"github.com/NaimTheDev/connectly-app/internal/utils"
)

// Service handles webhook payload archival.
type Service struct {
	client     *s3.Client
	bucketName string
}

// NewService creates a new archive service.
func NewService(ctx context.Context, appCfg *appConfig.Config) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Service{
		client:     s3.NewFromConfig(cfg),
		bucketName: appCfg.ArchiveBucket,
	}, nil
}

// Enabled reports whether an archive bucket is configured.
func (s *Service) Enabled() bool {
	return s.bucketName != ""
}

// StoreWebhookPayload writes the raw request body under a date-partitioned
// key. Callers treat failures as best-effort: the webhook response never
// depends on the archive write.
func (s *Service) StoreWebhookPayload(ctx context.Context, correlationID string, body []byte) error {
	if !s.Enabled() {
		return nil
	}

	key := "webhooks/" + time.Now().UTC().Format("2006/01/02") + "/" + correlationID + ".json"

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive webhook payload: %w", err)
	}

	utils.GetLogger().Info("Archived webhook payload",
		utils.String("bucket", s.bucketName),
		utils.String("key", key),
		utils.Int("size", len(body)),
	)

	return nil
}
