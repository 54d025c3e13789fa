// Where: internal/infra/remote/s3.go
// What: S3 artifact fetcher for function and layer code.
// Why: Templates reference deployment artifacts that must be pulled locally.
package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/samscope/samscope/internal/domain/provider"
)

const defaultAWSRegion = "us-east-1"

// Options configures the S3 client. The zero value uses the default AWS
// credential chain; Endpoint switches to a local S3-compatible store with
// path-style addressing.
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// OptionsFromEnv reads the SAMSCOPE_S3_* variables.
func OptionsFromEnv() Options {
	return Options{
		Endpoint:  os.Getenv("SAMSCOPE_S3_ENDPOINT"),
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("SAMSCOPE_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("SAMSCOPE_S3_SECRET_KEY"),
	}
}

// S3API is the slice of the SDK client the fetcher needs.
type S3API interface {
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher downloads template artifacts.
type Fetcher interface {
	Download(ctx context.Context, location provider.S3Location, dest string) error
}

type s3Fetcher struct {
	client S3API
}

// NewFetcher builds a Fetcher over a configured S3 client.
func NewFetcher(ctx context.Context, opts Options) (Fetcher, error) {
	client, err := newS3Client(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &s3Fetcher{client: client}, nil
}

// NewFetcherWithClient wires a prebuilt client, for tests.
func NewFetcherWithClient(client S3API) Fetcher {
	return &s3Fetcher{client: client}
}

func newS3Client(ctx context.Context, opts Options) (*s3.Client, error) {
	region := opts.Region
	if region == "" {
		region = defaultAWSRegion
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKey != "" || opts.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if opts.Endpoint != "" {
			options.BaseEndpoint = aws.String(opts.Endpoint)
			options.UsePathStyle = true
		}
	})
	return client, nil
}

// Download fetches the object into dest, creating parent directories. A
// pinned object version is honored when the location carries one.
func (f *s3Fetcher) Download(ctx context.Context, location provider.S3Location, dest string) error {
	if location.Bucket == "" || location.Key == "" {
		return fmt.Errorf("s3 location needs bucket and key")
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(location.Bucket),
		Key:    aws.String(location.Key),
	}
	if location.Version != "" {
		input.VersionId = aws.String(location.Version)
	}

	resp, err := f.client.GetObject(ctx, input)
	if err != nil {
		return fmt.Errorf("get s3://%s/%s: %w", location.Bucket, location.Key, err)
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}

// ParseS3URI splits an s3://bucket/key[?versionId=v] URI into a location.
func ParseS3URI(uri string) (provider.S3Location, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return provider.S3Location{}, fmt.Errorf("%s is not an s3 uri", uri)
	}

	var version string
	if rest, version, ok = cutQueryVersion(rest); !ok {
		return provider.S3Location{}, fmt.Errorf("%s has an unsupported query", uri)
	}

	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return provider.S3Location{}, fmt.Errorf("%s is missing bucket or key", uri)
	}
	return provider.S3Location{Bucket: bucket, Key: key, Version: version}, nil
}

func cutQueryVersion(rest string) (string, string, bool) {
	path, query, found := strings.Cut(rest, "?")
	if !found {
		return path, "", true
	}
	version, ok := strings.CutPrefix(query, "versionId=")
	if !ok || version == "" {
		return path, "", false
	}
	return path, version, true
}
