package service

import "context"

// Uploader stores a review image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, fileName, contentType string) (string, error)
}
