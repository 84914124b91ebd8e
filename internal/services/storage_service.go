package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"streamhub-backend/internal/apperr"
	"streamhub-backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// StorageService stores uploaded images (posters, avatars) in an
// S3-compatible bucket. Uploads are validated against an extension
// allow-list and a maximum size before any bytes hit the wire, and object
// names are made unique so uploads can never overwrite each other.
type StorageService struct {
	client      *minio.Client
	bucket      string
	publicURL   string
	maxFileSize int64
	allowedExts map[string]bool
	logger      *logrus.Logger
}

func NewStorageService(cfg *config.MinIOConfig, uploads config.UploadConfig, logger *logrus.Logger) (*StorageService, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("Object storage client initialized")

	allowed := make(map[string]bool, len(uploads.AllowedExtensions))
	for _, ext := range uploads.AllowedExtensions {
		allowed[strings.ToLower(ext)] = true
	}

	service := &StorageService{
		client:      minioClient,
		bucket:      cfg.BucketName,
		publicURL:   cfg.PublicURL,
		maxFileSize: uploads.MaxFileSize,
		allowedExts: allowed,
		logger:      logger,
	}

	if err := service.ensureBucket(context.Background()); err != nil {
		logger.WithError(err).Warn("Failed to configure bucket, but continuing...")
	}

	return service, nil
}

func (s *StorageService) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: "us-east-1"}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	s.logger.WithField("bucket", s.bucket).Info("Bucket policy set to public read")
	return nil
}

// ValidateUpload rejects empty, oversized, or disallowed files before the
// upload starts.
func (s *StorageService) ValidateUpload(filename string, size int64) error {
	if size <= 0 {
		return apperr.BadRequest("Uploaded file is empty")
	}
	if size > s.maxFileSize {
		return apperr.BadRequest(fmt.Sprintf("File exceeds the maximum size of %d bytes", s.maxFileSize))
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !s.allowedExts[ext] {
		return apperr.BadRequest(fmt.Sprintf("File extension %q is not allowed", ext))
	}
	return nil
}

// UploadFile validates and stores the file, returning its public URL.
func (s *StorageService) UploadFile(ctx context.Context, filename, contentType string, size int64, reader io.Reader) (string, error) {
	if err := s.ValidateUpload(filename, size); err != nil {
		return "", err
	}

	objectPath := s.uniqueName(filename)
	_, err := s.client.PutObject(ctx, s.bucket, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.WithError(err).WithField("objectPath", objectPath).Error("Failed to upload file")
		return "", apperr.Internal(err)
	}

	s.logger.WithFields(logrus.Fields{
		"filename":   filename,
		"objectPath": objectPath,
		"size":       size,
	}).Info("File uploaded successfully")

	return s.objectURL(objectPath), nil
}

// PresignedPutURL returns a short-lived direct-upload URL plus the public
// URL the object will have once uploaded.
func (s *StorageService) PresignedPutURL(filename string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !s.allowedExts[ext] {
		return "", "", apperr.BadRequest(fmt.Sprintf("File extension %q is not allowed", ext))
	}

	objectPath := s.uniqueName(filename)
	expiry := 15 * time.Minute

	presignedURL, err := s.client.PresignedPutObject(context.Background(), s.bucket, objectPath, expiry)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return "", "", apperr.Internal(err)
	}

	s.logger.WithFields(logrus.Fields{
		"filename":   filename,
		"objectPath": objectPath,
		"expiry":     expiry,
	}).Info("Generated presigned URL")

	return presignedURL.String(), s.objectURL(objectPath), nil
}

func (s *StorageService) DeleteFile(objectPath string) error {
	if strings.Contains(objectPath, "http") {
		parts := strings.Split(objectPath, "/")
		if len(parts) > 0 {
			objectPath = parts[len(parts)-1]
		}
	}

	objectPath = strings.TrimPrefix(objectPath, s.bucket+"/")

	err := s.client.RemoveObject(context.Background(), s.bucket, objectPath, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.WithError(err).WithField("objectPath", objectPath).Error("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.WithField("objectPath", objectPath).Info("File deleted from object storage")
	return nil
}

func (s *StorageService) uniqueName(filename string) string {
	ext := filepath.Ext(filename)
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filename), ext)
	return fmt.Sprintf("%s_%s%s", nameWithoutExt, uuid.New().String()[:8], ext)
}

func (s *StorageService) objectURL(objectPath string) string {
	publicBase := strings.TrimPrefix(s.publicURL, "https://")
	publicBase = strings.TrimPrefix(publicBase, "http://")

	if idx := strings.Index(publicBase, "/"); idx != -1 {
		publicBase = publicBase[:idx]
	}

	protocol := "http://"
	if strings.HasPrefix(s.publicURL, "https://") {
		protocol = "https://"
	}

	return fmt.Sprintf("%s%s/%s/%s", protocol, publicBase, s.bucket, objectPath)
}
