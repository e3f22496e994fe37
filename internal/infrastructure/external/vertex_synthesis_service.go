package external

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/repositories"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/infra"
	"mannequin/model"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// VertexSynthesisService calls the Vertex AI generateContent REST endpoint
// with a bearer token from Application Default Credentials.
type VertexSynthesisService struct {
	projectID   string
	location    string
	baseURL     string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
	logger      *infra.Logger
}

type VertexOption func(*VertexSynthesisService)

func WithTokenSource(ts oauth2.TokenSource) VertexOption {
	return func(s *VertexSynthesisService) { s.tokenSource = ts }
}

func WithBaseURL(baseURL string) VertexOption {
	return func(s *VertexSynthesisService) { s.baseURL = strings.TrimRight(baseURL, "/") }
}

func WithHTTPClient(client *http.Client) VertexOption {
	return func(s *VertexSynthesisService) { s.httpClient = client }
}

func NewVertexSynthesisService(ctx context.Context, projectID, location string, logger *infra.Logger, opts ...VertexOption) (*VertexSynthesisService, error) {
	if projectID == "" {
		return nil, fmt.Errorf("vertex project is required")
	}
	if location == "" {
		location = "us-central1"
	}
	if logger == nil {
		logger = infra.NopLogger()
	}

	s := &VertexSynthesisService{
		projectID:  projectID,
		location:   location,
		baseURL:    vertexBaseURL(location),
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.tokenSource == nil {
		ts, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
		s.tokenSource = ts
	}
	s.tokenSource = oauth2.ReuseTokenSource(nil, s.tokenSource)

	return s, nil
}

func vertexBaseURL(location string) string {
	if location == "global" {
		return "https://aiplatform.googleapis.com/v1"
	}
	return fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1", location)
}

func (s *VertexSynthesisService) endpoint(modelName string) string {
	return fmt.Sprintf("%s/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		s.baseURL, s.projectID, s.location, modelName)
}

func (s *VertexSynthesisService) Synthesize(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	token, err := s.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	reqBody, err := json.Marshal(buildRESTRequest(request))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	params := request.Parameters()
	s.logger.Info().
		Str("request_id", string(request.ID())).
		Str("model", params.Model()).
		Str("location", s.location).
		Msg("vertex: generateContent")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(params.Model()), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	token.SetAuthHeader(httpReq)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr model.ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API request failed with status %d (%s): %s", resp.StatusCode, apiErr.Error.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var parsed model.GenerateContentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return resultFromRESTResponse(request.ID(), &parsed)
}

func (s *VertexSynthesisService) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

func buildRESTRequest(request *entities.TryOnRequest) model.GenerateContentRequest {
	params := request.Parameters()
	modalities := params.ResponseModalities()
	names := make([]string, len(modalities))
	for i, m := range modalities {
		names[i] = string(m)
	}

	return model.GenerateContentRequest{
		Contents: []model.Content{{
			Role: "user",
			Parts: []model.Part{
				restInlinePart(request.ModelImage()),
				restInlinePart(request.GarmentImage()),
				{Text: params.Instruction()},
			},
		}},
		GenerationConfig: &model.GenerationConfig{ResponseModalities: names},
	}
}

func restInlinePart(img *valueobjects.UploadedImage) model.Part {
	return model.Part{
		InlineData: &model.InlineData{
			MimeType: string(img.MediaType()),
			Data:     img.Base64(),
		},
	}
}

func resultFromRESTResponse(requestID entities.TryOnRequestID, resp *model.GenerateContentResponse) (*entities.TryOnResult, error) {
	inline, text := resp.FirstInlineData()
	if inline == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w: blocked (%s)", domain.ErrNoImageProduced, resp.PromptFeedback.BlockReason)
		}
		return nil, fmt.Errorf("%w: no inline data part", domain.ErrNoImageProduced)
	}

	data, err := base64.StdEncoding.DecodeString(inline.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	img := valueobjects.NewUploadedImage(data, valueobjects.ResolveMediaType(inline.MimeType, data))
	return entities.NewTryOnResult(requestID, img, text), nil
}
