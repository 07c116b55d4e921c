package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/Mostakim52/khuje-nao/internal/config"
	"github.com/Mostakim52/khuje-nao/pkg/utils"
)

// MediaStore uploads item images to an S3-compatible bucket (Cloudflare R2)
// and hands back a stable public URL. Deletion works off that URL.
type MediaStore interface {
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// AllowedImage reports whether the filename carries an accepted image
// extension and returns its content type.
func AllowedImage(filename string) (string, bool) {
	ct, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ct, ok
}

type r2Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewR2Store builds the media store from app config.
func NewR2Store(ctx context.Context) (MediaStore, error) {
	cfg := appConfig.AppConfig
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithEndpointResolverWithOptions(r2Resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	publicURL := cfg.R2PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.R2BucketName)
	}

	return &r2Store{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.R2BucketName,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *r2Store) Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	ext := filepath.Ext(filename)
	key := fmt.Sprintf("lost-items/%s%s", utils.GenerateID(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

func (s *r2Store) Delete(ctx context.Context, fileURL string) error {
	key := strings.TrimPrefix(fileURL, s.publicURL+"/")
	if key == fileURL || key == "" {
		return fmt.Errorf("url %q does not belong to this store", fileURL)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
