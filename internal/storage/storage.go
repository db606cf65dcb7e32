// Package storage archives raw utterance audio in object storage.
package storage

import (
	"context"
	"io"
)

const ContentTypeWAV = "audio/wav"

// Uploader stores one object and reports where it landed.
type Uploader interface {
	Upload(ctx context.Context, objectName, contentType string, r io.Reader) (storedPath string, err error)
}
