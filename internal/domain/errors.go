package domain

import "errors"

var (
	ErrFileRead             = errors.New("file read failed")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingImages        = errors.New("both model and garment images are required")
	ErrSubmitInFlight       = errors.New("a try-on request is already in flight")
	ErrProcessingFailed     = errors.New("failed to process images")
	ErrNoImageProduced      = errors.New("service did not return an image")
	ErrStaleResult          = errors.New("result discarded after reset")
	ErrNoResult             = errors.New("no result available")
	ErrSessionNotFound      = errors.New("session not found")
)
