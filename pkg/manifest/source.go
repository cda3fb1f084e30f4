package manifest

import (
	"context"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/routematch/internal/errors"
)

// Source loads a manifest.
type Source interface {
	Load(ctx context.Context) (*Manifest, error)
	// Name identifies the source in error locations.
	Name() string
}

// FileSource reads a manifest from the local filesystem. The format follows
// the file extension.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s FileSource) Name() string { return s.Path }

// Load reads and decodes the file.
func (s FileSource) Load(ctx context.Context) (*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	format, err := FormatFor(s.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.New("M100").
			WithDetail("Cannot read " + s.Path).
			Wrap(err)
	}
	return Decode(data, format)
}

// ObjectGetter is the subset of *s3.Client used by S3Source.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a manifest object from S3. The format follows the key's
// extension.
type S3Source struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

// Name returns the s3:// URL of the object.
func (s S3Source) Name() string { return "s3://" + path.Join(s.Bucket, s.Key) }

// Load fetches and decodes the object.
func (s S3Source) Load(ctx context.Context) (*Manifest, error) {
	format, err := FormatFor(s.Key)
	if err != nil {
		return nil, err
	}

	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, errors.New("M100").
			WithDetail("Cannot fetch " + s.Name()).
			Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.New("M100").
			WithDetail("Cannot read " + s.Name()).
			Wrap(err)
	}
	return Decode(data, format)
}

// NewS3Client creates an S3 client for region. Credentials come from the
// standard AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// environment variables. A non-empty endpoint targets an S3-compatible
// store (MinIO, LocalStack) using path-style addressing.
func NewS3Client(region, endpoint string) *s3.Client {
	return s3.New(s3.Options{
		Region:       region,
		Credentials:  aws.NewCredentialsCache(envCredentials()),
		BaseEndpoint: optionalString(endpoint),
		UsePathStyle: endpoint != "",
	})
}

func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "EnvironmentVariables",
		}
		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
			return aws.Credentials{}, errors.New("M100").
				WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set to read manifests from S3")
		}
		return creds, nil
	})
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
