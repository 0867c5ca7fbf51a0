package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"marketAPI/internal/config"
)

var (
	ErrUpload = errors.New("image upload error")
	ErrDelete = errors.New("image deletion error")
)

const objectPrefix = "market"

// Storage is the remote image store. Images are addressed by the public
// URL returned from UploadImage.
type Storage interface {
	UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, imageURL string) error
}

type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type MinIOClient struct {
	client    objectStore
	bucket    string
	publicURL string
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MinIO.BucketName, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinIO.BucketName, err)
		}
		log.Printf("created bucket %s", cfg.MinIO.BucketName)
	}

	return newMinIOClient(client, cfg.MinIO.BucketName, cfg.MinIO.PublicURL), nil
}

func newMinIOClient(client objectStore, bucket, publicURL string) *MinIOClient {
	return &MinIOClient{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

func (m *MinIOClient) UploadImage(ctx context.Context, fileName string, file io.Reader, size int64) (string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now()
	objectName := fmt.Sprintf("%s/%d/%02d/%s%s",
		objectPrefix,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	return m.publicURL + "/" + m.bucket + "/" + objectName, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, imageURL string) error {
	objectName, err := ObjectNameFromURL(m.bucket, imageURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}

	err = m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{GovernanceBypass: true})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}

	return nil
}

// ObjectNameFromURL derives the object key from a URL produced by
// UploadImage: everything after the first "/<bucket>/" path segment.
func ObjectNameFromURL(bucket, imageURL string) (string, error) {
	marker := "/" + bucket + "/"

	idx := strings.Index(imageURL, marker)
	if idx == -1 {
		return "", fmt.Errorf("url %q is not in bucket %s", imageURL, bucket)
	}

	objectName := imageURL[idx+len(marker):]
	if objectName == "" {
		return "", fmt.Errorf("url %q has no object name", imageURL)
	}

	return objectName, nil
}
