package export

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Client abstracts the S3 API operations used by [S3Sink]. The
// [s3.Client] type satisfies this interface.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink archives transcripts to Amazon S3 or any S3-compatible object
// store (MinIO, R2, etc.). The caller configures the client with
// credentials, region, and endpoint.
type S3Sink struct {
	client S3Client
	bucket string
	prefix string
}

// NewS3Sink creates an S3-backed Sink. Prefix is prepended to all
// object keys; pass "" for no prefix.
func NewS3Sink(client S3Client, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Sink) key(path string) string {
	if s.prefix == "" {
		return path
	}
	return s.prefix + "/" + path
}

// Put returns a writer that streams data to S3 via PutObject. A
// background goroutine performs the upload, reading from an [io.Pipe];
// Close blocks until the upload finishes and returns any S3 error.
func (s *S3Sink) Put(ctx context.Context, path string) (io.WriteCloser, error) {
	pr, pw := io.Pipe()
	w := &s3Writer{pw: pw, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		_, w.uploadErr = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key(path)),
			Body:   pr,
		})
		// Unblock pending writes if the upload failed early.
		pr.CloseWithError(w.uploadErr)
	}()
	return w, nil
}

// s3Writer streams data to a background PutObject call through an
// io.Pipe.
type s3Writer struct {
	pw        *io.PipeWriter
	done      chan struct{}
	uploadErr error
}

func (w *s3Writer) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *s3Writer) Close() error {
	w.pw.Close()
	<-w.done
	return classifyS3Error(w.uploadErr)
}

// classifyS3Error turns the common misconfiguration errors into
// readable messages; everything else passes through.
func classifyS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return fmt.Errorf("bucket does not exist: %w", err)
		case "AccessDenied":
			return fmt.Errorf("access denied: %w", err)
		}
	}
	return err
}

var _ Sink = (*S3Sink)(nil)
