package cli

import (
	"context"
	"fmt"

	"mannequin/internal/application/progress"
	"mannequin/internal/application/usecases"
	"mannequin/internal/config"
	"mannequin/internal/domain/repositories"
	domainservices "mannequin/internal/domain/services"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/i18n"
	"mannequin/internal/infra"
	"mannequin/internal/infrastructure/external"
	infraservices "mannequin/internal/infrastructure/services"
)

// newSynthesisService picks the backend named by SYNTHESIS_BACKEND.
func newSynthesisService(ctx context.Context, cfg *config.Config, logger *infra.Logger) (repositories.SynthesisService, error) {
	switch cfg.SynthesisBackend {
	case config.BackendGemini:
		pool := infraservices.NewGenAIClientPool(&repositories.AIClientConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.GeminiBaseURL,
		})
		return external.NewGeminiSynthesisService(pool, logger), nil
	case config.BackendVertex:
		service, err := external.NewVertexSynthesisService(ctx, cfg.VertexProject, cfg.VertexLocation, logger)
		if err != nil {
			return nil, err
		}
		return service, nil
	case config.BackendStub:
		return external.NewStubSynthesisService(cfg.StubDelay, logger), nil
	default:
		return nil, fmt.Errorf("unknown synthesis backend %q", cfg.SynthesisBackend)
	}
}

func newTryOnUseCase(cfg *config.Config, synthesis repositories.SynthesisService, logger *infra.Logger) (*usecases.TryOnUseCase, error) {
	params, err := valueobjects.NewTryOnParameters(cfg.GeminiModel, cfg.TryOnInstruction)
	if err != nil {
		return nil, fmt.Errorf("invalid try-on parameters: %w", err)
	}
	domainService := domainservices.NewTryOnDomainService(synthesis, logger)
	return usecases.NewTryOnUseCase(domainService, params), nil
}

// controllerFactory builds one controller per session. The indicator rotates
// message keys; they are localized where they are displayed.
func controllerFactory(tryOn *usecases.TryOnUseCase, cfg *config.Config, logger *infra.Logger) func() (*usecases.Controller, error) {
	keys := make([]string, len(i18n.StatusKeys))
	for i, k := range i18n.StatusKeys {
		keys[i] = string(k)
	}
	return func() (*usecases.Controller, error) {
		indicator, err := progress.NewIndicator(keys, cfg.ProgressInterval)
		if err != nil {
			return nil, err
		}
		return usecases.NewController(tryOn, indicator, logger), nil
	}
}
