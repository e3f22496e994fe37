package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"mannequin/internal/domain"
	"mannequin/internal/domain/valueobjects"
)

type TryOnRequestID string

type TryOnRequest struct {
	id           TryOnRequestID
	modelImage   *valueobjects.UploadedImage
	garmentImage *valueobjects.UploadedImage
	parameters   *valueobjects.TryOnParameters
	createdAt    time.Time
}

func NewTryOnRequest(
	modelImage *valueobjects.UploadedImage,
	garmentImage *valueobjects.UploadedImage,
	parameters *valueobjects.TryOnParameters,
) (*TryOnRequest, error) {
	if modelImage == nil {
		return nil, fmt.Errorf("model image is required: %w", domain.ErrMissingImages)
	}

	if garmentImage == nil {
		return nil, fmt.Errorf("garment image is required: %w", domain.ErrMissingImages)
	}

	if parameters == nil {
		parameters = valueobjects.DefaultTryOnParameters()
	}

	return &TryOnRequest{
		id:           TryOnRequestID("req_" + uuid.NewString()),
		modelImage:   modelImage,
		garmentImage: garmentImage,
		parameters:   parameters,
		createdAt:    time.Now(),
	}, nil
}

func (r *TryOnRequest) ID() TryOnRequestID {
	return r.id
}

func (r *TryOnRequest) ModelImage() *valueobjects.UploadedImage {
	return r.modelImage
}

func (r *TryOnRequest) GarmentImage() *valueobjects.UploadedImage {
	return r.garmentImage
}

func (r *TryOnRequest) Parameters() *valueobjects.TryOnParameters {
	return r.parameters
}

func (r *TryOnRequest) CreatedAt() time.Time {
	return r.createdAt
}
