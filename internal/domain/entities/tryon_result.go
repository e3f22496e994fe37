package entities

import (
	"time"

	"mannequin/internal/domain/valueobjects"
)

type TryOnResult struct {
	requestID  TryOnRequestID
	image      *valueobjects.UploadedImage
	commentary string
	createdAt  time.Time
}

// NewTryOnResult wraps the synthesized image. commentary holds any text parts
// the service returned alongside it; it is never shown to the user.
func NewTryOnResult(requestID TryOnRequestID, image *valueobjects.UploadedImage, commentary string) *TryOnResult {
	return &TryOnResult{
		requestID:  requestID,
		image:      image,
		commentary: commentary,
		createdAt:  time.Now(),
	}
}

func (r *TryOnResult) RequestID() TryOnRequestID {
	return r.requestID
}

func (r *TryOnResult) Image() *valueobjects.UploadedImage {
	return r.image
}

func (r *TryOnResult) Commentary() string {
	return r.commentary
}

func (r *TryOnResult) CreatedAt() time.Time {
	return r.createdAt
}

func (r *TryOnResult) HasImage() bool {
	return r.image != nil
}

// DataURL is the displayable reference of the synthesized image.
func (r *TryOnResult) DataURL() valueobjects.DataURL {
	if r.image == nil {
		return ""
	}
	return r.image.DataURL()
}
