package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/repositories"
	"mannequin/internal/infra"
)

type TryOnDomainService struct {
	synthesis repositories.SynthesisService
	logger    *infra.Logger
}

func NewTryOnDomainService(synthesis repositories.SynthesisService, logger *infra.Logger) *TryOnDomainService {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &TryOnDomainService{
		synthesis: synthesis,
		logger:    logger,
	}
}

// ProcessTryOn runs exactly one synthesis call. Callers only ever see
// ErrNoImageProduced or ErrProcessingFailed; the underlying cause is logged.
func (s *TryOnDomainService) ProcessTryOn(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	if err := s.validateRequest(request); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	result, err := s.synthesis.Synthesize(ctx, request)
	if err != nil {
		if errors.Is(err, domain.ErrNoImageProduced) {
			s.logger.Warn().
				Str("request_id", string(request.ID())).
				Msg("synthesis: service answered without an image part")
			return nil, domain.ErrNoImageProduced
		}
		s.logger.Error().
			Err(err).
			Str("request_id", string(request.ID())).
			Bool("quota", s.isQuotaError(err)).
			Msg("synthesis: remote call failed")
		return nil, domain.ErrProcessingFailed
	}

	if result == nil || !result.HasImage() {
		s.logger.Warn().
			Str("request_id", string(request.ID())).
			Msg("synthesis: empty result")
		return nil, domain.ErrNoImageProduced
	}

	s.logger.Debug().
		Str("request_id", string(request.ID())).
		Str("media_type", string(result.Image().MediaType())).
		Int("bytes", result.Image().Size()).
		Msg("synthesis: image received")

	return result, nil
}

func (s *TryOnDomainService) validateRequest(request *entities.TryOnRequest) error {
	if request == nil {
		return fmt.Errorf("request is required")
	}

	if request.ModelImage() == nil || request.GarmentImage() == nil {
		return domain.ErrMissingImages
	}

	return nil
}

func (s *TryOnDomainService) isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, "resource_exhausted")
}
