// Package upload parses multipart image submissions, fingerprints their
// content, and builds object-store keys.
package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

// AllowedTypes are the MIME types accepted for artwork images.
var AllowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ErrMissingFile is returned when the request has no file part and one is required.
var ErrMissingFile = errors.New("image file is required")

// ErrInvalidMediaType is returned when the declared MIME type is not allowed.
var ErrInvalidMediaType = errors.New("invalid file type, only JPEG, PNG, or GIF is allowed")

// ErrPayloadTooLarge is returned when the file exceeds the configured size limit.
var ErrPayloadTooLarge = errors.New("file exceeds the maximum allowed size")

// RawAsset is a fully buffered, validated upload.
type RawAsset struct {
	Bytes        []byte
	MimeType     string
	OriginalName string
}

// Intake parses the named multipart file field from the request.
//
// The MIME type is checked before any bytes are read, and the size limit is
// enforced while reading (not after), so an oversized body never occupies
// more than maxBytes+1 of memory. When required is false a missing file part
// yields (nil, nil), which is how metadata-only updates pass through.
func Intake(r *http.Request, field string, required bool, maxBytes int64) (*RawAsset, error) {
	// ParseMultipartForm spills parts beyond the memory threshold to disk;
	// the per-file cap is enforced on the read below.
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			if required {
				return nil, ErrMissingFile
			}
			return nil, nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrPayloadTooLarge
		}
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		if required {
			return nil, ErrMissingFile
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read file field %q: %w", field, err)
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !AllowedTypes[mimeType] {
		return nil, ErrInvalidMediaType
	}
	if header.Size > maxBytes {
		return nil, ErrPayloadTooLarge
	}

	// header.Size comes from the client; re-enforce the cap on the actual read.
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("buffer upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrPayloadTooLarge
	}

	return &RawAsset{
		Bytes:        data,
		MimeType:     mimeType,
		OriginalName: header.Filename,
	}, nil
}
