package repositories

import (
	"context"

	"mannequin/internal/domain/entities"
)

// SynthesisService sends one try-on request to the external generative service.
type SynthesisService interface {
	Synthesize(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error)

	Close() error
}
