package s3_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanreports/internal/config"
	"cleanreports/internal/storage/s3"
)

func testS3Config() *config.S3Config {
	return &config.S3Config{
		Region:        "ap-northeast-1",
		Bucket:        "report-photos",
		Endpoint:      "http://localhost:9000",
		AccessKey:     "test-access",
		SecretKey:     "test-secret",
		PresignExpiry: 900,
	}
}

func TestNewPhotoSigner_RequiresBucket(t *testing.T) {
	cfg := testS3Config()
	cfg.Bucket = ""
	_, err := s3.NewPhotoSigner(context.Background(), cfg)
	assert.Error(t, err)
}

func TestPhotoSigner_GetPresignedURL(t *testing.T) {
	signer, err := s3.NewPhotoSigner(context.Background(), testS3Config())
	require.NoError(t, err)

	url, err := signer.GetPresignedURL(context.Background(), "/reports/r1/photo 1.jpg")
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/report-photos/reports/r1/photo%201.jpg")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestPhotoSigner_EmptyKey(t *testing.T) {
	signer, err := s3.NewPhotoSigner(context.Background(), testS3Config())
	require.NoError(t, err)

	_, err = signer.GetPresignedURL(context.Background(), "/")
	assert.Error(t, err)
}
