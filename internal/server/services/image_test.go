package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/stockbook-app/stockbook/internal/server/config"
)

func newImageService() *ImageService {
	return NewImageService(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "stockbook",
	})
}

func stubPresignStack(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func TestGetPresignedPutUrl_Success(t *testing.T) {
	svc := newImageService()
	stubPresignStack(t)

	var capturedKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if *in.Bucket != "stockbook" {
			t.Fatalf("bucket not applied: %q", *in.Bucket)
		}
		capturedKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "http://signed/" + *in.Key}, nil
	}

	key, url, err := svc.GetPresignedPutUrl(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != capturedKey {
		t.Fatalf("key mismatch: %q vs %q", key, capturedKey)
	}
	if !strings.HasPrefix(key, "images/") {
		t.Fatalf("storage key not date-partitioned: %q", key)
	}
	if url != "http://signed/"+key {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestGetPresignedGetUrl_Success(t *testing.T) {
	svc := newImageService()
	stubPresignStack(t)

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://signed/" + *in.Key}, nil
	}

	url, err := svc.GetPresignedGetUrl(context.Background(), "images/x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "http://signed/images/x" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestGetPresignedPutUrl_ErrorFromClientFactory(t *testing.T) {
	svc := newImageService()

	orig := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = orig }()
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, _, err := svc.GetPresignedPutUrl(context.Background())
	if err == nil || err.Error() != "load-fail" {
		t.Fatalf("want load-fail, got %v", err)
	}
}
