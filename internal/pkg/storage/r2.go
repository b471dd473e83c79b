package storage

import (
	"context"
	"fmt"
)

// R2Config holds Cloudflare R2 connection configuration
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	PublicURL       string // e.g. https://cdn.example.com
}

// NewR2Storage creates an S3Storage pointed at a Cloudflare R2 account
func NewR2Storage(ctx context.Context, cfg R2Config) (*S3Storage, error) {
	publicURL := cfg.PublicURL
	if publicURL == "" {
		// Default r2.dev URL (works if public access is enabled)
		publicURL = fmt.Sprintf("https://pub-%s.r2.dev", cfg.AccountID)
	}

	return NewS3Storage(ctx, S3Config{
		Endpoint:  fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID),
		Region:    "auto",
		Bucket:    cfg.BucketName,
		AccessKey: cfg.AccessKeyID,
		SecretKey: cfg.AccessKeySecret,
		PublicURL: publicURL,
	})
}
