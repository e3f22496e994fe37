package external

import (
	"context"
	"time"

	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/repositories"
	"mannequin/internal/infra"
)

// StubSynthesisService works offline: it answers every request with the
// model photo after an optional delay.
type StubSynthesisService struct {
	delay  time.Duration
	logger *infra.Logger
}

func NewStubSynthesisService(delay time.Duration, logger *infra.Logger) repositories.SynthesisService {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &StubSynthesisService{
		delay:  delay,
		logger: logger,
	}
}

func (s *StubSynthesisService) Synthesize(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	s.logger.Debug().Str("request_id", string(request.ID())).Dur("delay", s.delay).Msg("stub: synthesize")

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return entities.NewTryOnResult(request.ID(), request.ModelImage(), "stub backend"), nil
}

func (s *StubSynthesisService) Close() error {
	return nil
}
