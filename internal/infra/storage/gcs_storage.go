// Package storage provides the object storage implementation for book files.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/gcsblob" // register the gs:// bucket scheme
	"gocloud.dev/gcerrors"

	"pustaka/config"
	"pustaka/internal/domain/service"
	"pustaka/internal/errors"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// blobStorage implements service.FileStorage on top of a Go CDK blob bucket.
// Objects are publicly readable; callers keep only the public URL.
type blobStorage struct {
	bucket        *blob.Bucket
	bucketName    string
	publicBaseURL string
	logger        *slog.Logger
}

// New opens the configured bucket and manages its lifetime through fx.
func New(params Params) (service.FileStorage, error) {
	if params.Config.Storage == nil || params.Config.Storage.Bucket == "" {
		return nil, errors.New("storage bucket must be configured")
	}

	bucket, err := blob.OpenBucket(context.Background(), "gs://"+params.Config.Storage.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open storage bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{
		bucket:        bucket,
		bucketName:    params.Config.Storage.Bucket,
		publicBaseURL: strings.TrimRight(params.Config.Storage.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload streams the content to the bucket under the given key and returns
// the public URL of the stored object.
func (s *blobStorage) Upload(ctx context.Context, key, contentType string, content io.Reader) (string, error) {
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		// Abort the write so no partial object becomes visible.
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write object")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize object")
	}

	publicURL := fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucketName, key)
	s.logger.InfoContext(ctx, "object uploaded",
		slog.String("key", key),
		slog.String("url", publicURL),
	)

	return publicURL, nil
}

// Delete removes the object behind a public URL. Unknown objects are treated
// as already deleted.
func (s *blobStorage) Delete(ctx context.Context, publicURL string) error {
	key, err := s.keyFromPublicURL(publicURL)
	if err != nil {
		return err
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrap(err, "failed to delete object")
	}

	return nil
}

func (s *blobStorage) keyFromPublicURL(publicURL string) (string, error) {
	prefix := fmt.Sprintf("%s/%s/", s.publicBaseURL, s.bucketName)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", errors.Errorf("url %q does not belong to bucket %q", publicURL, s.bucketName)
	}

	key := strings.TrimPrefix(publicURL, prefix)
	if key == "" {
		return "", errors.Errorf("url %q has no object key", publicURL)
	}

	return key, nil
}
