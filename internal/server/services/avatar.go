package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/alumnilink/internal/common"
	sc "github.com/dmitrijs2005/alumnilink/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const avatarKeyPrefix = "avatars/"

var avatarContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// AvatarUpload is a presigned upload target for a profile picture.
type AvatarUpload struct {
	Key string
	URL string
}

// AvatarService hands out presigned object storage URLs for profile
// pictures. Bytes never pass through the API server.
type AvatarService struct {
	config *sc.Config
}

func NewAvatarService(config *sc.Config) *AvatarService {
	return &AvatarService{config: config}
}

// AvatarKey returns a fresh storage key owned by userID.
func AvatarKey(userID string) string {
	return fmt.Sprintf("%s%s/%v", avatarKeyPrefix, userID, uuid.New())
}

func (s *AvatarService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns a key under the user's prefix and a PUT URL for it.
func (s *AvatarService) PresignUpload(ctx context.Context, userID, contentType string) (*AvatarUpload, error) {
	if !s.config.StorageEnabled() {
		return nil, common.ErrStorageDisabled
	}
	if contentType == "" {
		return nil, fmt.Errorf("%w: content type is required", common.ErrValidation)
	}
	if !avatarContentTypes[contentType] {
		return nil, fmt.Errorf("%w: unsupported content type %q", common.ErrValidation, contentType)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := AvatarKey(userID)

	in := &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}

	req, err := presignPutObject(presignClient, ctx, in, s3.WithPresignExpires(s.validity()))
	if err != nil {
		return nil, err
	}

	return &AvatarUpload{Key: key, URL: req.URL}, nil
}

// PresignDownload returns a GET URL for an avatar key. Keys outside the
// avatar prefix are reported as not found.
func (s *AvatarService) PresignDownload(ctx context.Context, key string) (string, error) {
	if !s.config.StorageEnabled() {
		return "", common.ErrStorageDisabled
	}
	if !strings.HasPrefix(key, avatarKeyPrefix) || strings.Contains(key, "..") {
		return "", common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.validity()))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *AvatarService) validity() time.Duration {
	if s.config.AvatarURLValidity > 0 {
		return s.config.AvatarURLValidity
	}
	return 15 * time.Minute
}
