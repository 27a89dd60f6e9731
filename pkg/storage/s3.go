package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"movie-catalog/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewS3Storage(ctx context.Context, config utils.StorageConfig) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
	}
	if config.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKey, config.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// S3-compatible endpoints such as minio
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  config.Bucket,
	}, nil
}

func (s *S3Storage) SaveTemp(ctx context.Context, name string, body io.Reader, size int64, contentType string) error {
	if err := ValidName(name); err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(TempKey(name)),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *S3Storage) MoveToPermanent(ctx context.Context, name string) (string, error) {
	if err := ValidName(name); err != nil {
		return "", err
	}

	target := MovieKey(name)
	if err := s.move(ctx, TempKey(name), target, types.ObjectCannedACLPublicRead); err != nil {
		return "", err
	}
	return target, nil
}

func (s *S3Storage) RestoreTemp(ctx context.Context, name string) error {
	if err := ValidName(name); err != nil {
		return err
	}
	return s.move(ctx, MovieKey(name), TempKey(name), types.ObjectCannedACLPrivate)
}

// move copies source to target, then deletes source.
func (s *S3Storage) move(ctx context.Context, source, target string, acl types.ObjectCannedACL) error {
	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(s.bucket + "/" + source),
		Key:        aws.String(target),
		ACL:        acl,
	})
	if err != nil {
		if isMissingObject(err) {
			return ErrNotFound
		}
		return fmt.Errorf("copy object: %w", err)
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(source),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", source, err)
	}
	return nil
}

// isMissingObject matches NoSuchKey whether or not the SDK modeled it; a
// failed CopyObject source usually arrives as a bare 404 API error.
func isMissingObject(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

func (s *S3Storage) PresignUpload(ctx context.Context, name string, expires time.Duration) (string, error) {
	if err := ValidName(name); err != nil {
		return "", err
	}

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(TempKey(name)),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("presign put object: %w", err)
	}
	return req.URL, nil
}

func (s *S3Storage) ListTemp(ctx context.Context) ([]string, error) {
	prefix := TempPrefix + "/"
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			name := path.Base(aws.ToString(obj.Key))
			if name == "" || name == "temp" {
				continue
			}
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *S3Storage) DeleteTemp(ctx context.Context, name string) error {
	if err := ValidName(name); err != nil {
		return err
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(TempKey(name)),
	}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
