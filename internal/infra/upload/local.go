// Package upload stores review images and hands back public URLs. Two
// backends exist: a local blob bucket served by the HTTP layer under
// /uploads, and the hosted UploadThing service.
package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tastebud/internal/domain/service"
	"tastebud/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
)

type localUploader struct {
	bucket *blob.Bucket
}

// NewLocalUploader opens a file-backed blob bucket rooted at dir. Keys are
// random, so concurrent uploads of the same filename never collide.
func NewLocalUploader(lc fx.Lifecycle, dir string) (service.Uploader, error) {
	if dir == "" {
		return nil, errors.New("upload.dir is required for the local driver")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create upload directory")
	}

	bucket, err := fileblob.OpenBucket(dir, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open upload bucket")
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &localUploader{bucket: bucket}, nil
}

// Upload writes the image under a fresh random key and returns the relative
// URL the HTTP layer serves it from.
func (u *localUploader) Upload(ctx context.Context, data []byte, fileName, contentType string) (string, error) {
	key := uuid.New().String() + filepath.Ext(fileName)

	opts := &blob.WriterOptions{ContentType: contentType}
	if err := u.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", errors.Wrap(err, "failed to write upload")
	}

	return fmt.Sprintf("/uploads/%s", key), nil
}
