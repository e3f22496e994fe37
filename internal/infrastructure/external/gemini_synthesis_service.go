package external

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/repositories"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/infra"
)

type GeminiSynthesisService struct {
	pool   repositories.GenAIClientPool
	logger *infra.Logger
}

func NewGeminiSynthesisService(pool repositories.GenAIClientPool, logger *infra.Logger) repositories.SynthesisService {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &GeminiSynthesisService{
		pool:   pool,
		logger: logger,
	}
}

func (s *GeminiSynthesisService) Synthesize(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	client, err := s.pool.GetGenAIClient(ctx)
	if err != nil {
		return nil, err
	}

	params := request.Parameters()
	s.logger.Info().
		Str("request_id", string(request.ID())).
		Str("model", params.Model()).
		Int("model_bytes", request.ModelImage().Size()).
		Int("garment_bytes", request.GarmentImage().Size()).
		Msg("gemini: generateContent")

	resp, err := client.Models.GenerateContent(ctx, params.Model(), buildContents(request), buildConfig(params))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	return resultFromResponse(request.ID(), resp)
}

func (s *GeminiSynthesisService) Close() error {
	return s.pool.Close()
}

// buildContents orders the parts as model photo, garment photo, instruction.
func buildContents(request *entities.TryOnRequest) []*genai.Content {
	parts := []*genai.Part{
		inlinePart(request.ModelImage()),
		inlinePart(request.GarmentImage()),
		genai.NewPartFromText(request.Parameters().Instruction()),
	}
	return []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
}

func inlinePart(img *valueobjects.UploadedImage) *genai.Part {
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: string(img.MediaType()),
			Data:     img.Data(),
		},
	}
}

func buildConfig(params *valueobjects.TryOnParameters) *genai.GenerateContentConfig {
	modalities := params.ResponseModalities()
	out := make([]string, len(modalities))
	for i, m := range modalities {
		out[i] = string(m)
	}
	return &genai.GenerateContentConfig{
		ResponseModalities: out,
	}
}

// resultFromResponse takes the first inline image of the first candidate.
// Text parts are kept as commentary only.
func resultFromResponse(requestID entities.TryOnRequestID, resp *genai.GenerateContentResponse) (*entities.TryOnResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: empty response", domain.ErrNoImageProduced)
	}

	var texts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		if part.InlineData != nil {
			data := part.InlineData.Data
			img := valueobjects.NewUploadedImage(data, valueobjects.ResolveMediaType(part.InlineData.MIMEType, data))
			return entities.NewTryOnResult(requestID, img, strings.Join(texts, "\n")), nil
		}
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return nil, fmt.Errorf("%w: %d text part(s) only", domain.ErrNoImageProduced, len(texts))
}
