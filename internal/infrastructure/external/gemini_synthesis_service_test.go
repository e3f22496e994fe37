package external

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"

	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/repositories"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/infrastructure/services"
)

var onePixelPNG, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChAI9jz22jQAAAABJRU5ErkJggg==")

func newTestRequest(t *testing.T) *entities.TryOnRequest {
	t.Helper()
	model := valueobjects.NewUploadedImage(onePixelPNG, valueobjects.MediaTypePNG)
	garment := valueobjects.NewUploadedImage([]byte{0xff, 0xd8, 0xff}, valueobjects.MediaTypeJPEG)
	request, err := entities.NewTryOnRequest(model, garment, nil)
	if err != nil {
		t.Fatalf("NewTryOnRequest() error = %v", err)
	}
	return request
}

func TestBuildContents(t *testing.T) {
	request := newTestRequest(t)
	contents := buildContents(request)

	if len(contents) != 1 || contents[0].Role != genai.RoleUser {
		t.Fatalf("expected a single user content")
	}
	parts := contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MIMEType != "image/png" {
		t.Errorf("first part should be the model photo")
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MIMEType != "image/jpeg" {
		t.Errorf("second part should be the garment photo")
	}
	if parts[2].Text != valueobjects.DefaultInstruction {
		t.Errorf("third part should be the instruction")
	}

	config := buildConfig(request.Parameters())
	if strings.Join(config.ResponseModalities, ",") != "IMAGE,TEXT" {
		t.Errorf("unexpected modalities %v", config.ResponseModalities)
	}
}

func TestResultFromResponse(t *testing.T) {
	tests := []struct {
		name      string
		resp      *genai.GenerateContentResponse
		wantImage bool
		wantErr   error
	}{
		{
			name: "first inline part wins",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{
					{Text: "here you go"},
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: onePixelPNG}},
					{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte{0xff}}},
				}},
			}}},
			wantImage: true,
		},
		{
			name: "text only",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "sorry"}}},
			}}},
			wantErr: domain.ErrNoImageProduced,
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: domain.ErrNoImageProduced,
		},
		{
			name:    "nil response",
			wantErr: domain.ErrNoImageProduced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := resultFromResponse("req_1", tt.resp)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Image().MediaType() != valueobjects.MediaTypePNG {
				t.Errorf("media type = %s", result.Image().MediaType())
			}
			if result.Commentary() != "here you go" {
				t.Errorf("commentary = %q", result.Commentary())
			}
			want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(onePixelPNG)
			if result.DataURL().String() != want {
				t.Errorf("data URL = %s", result.DataURL())
			}
		})
	}
}

func TestGeminiSynthesisService_Synthesize(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"candidates":[{"content":{"role":"model","parts":[{"inlineData":{"mimeType":"image/png","data":%q}}]}}]}`,
			base64.StdEncoding.EncodeToString(onePixelPNG))
	}))
	defer server.Close()

	pool := services.NewGenAIClientPool(&repositories.AIClientConfig{APIKey: "test-key", BaseURL: server.URL + "/"})
	service := NewGeminiSynthesisService(pool, nil)
	defer service.Close()

	result, err := service.Synthesize(context.Background(), newTestRequest(t))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !result.HasImage() {
		t.Fatalf("expected an image")
	}
	if !strings.HasSuffix(gotPath, valueobjects.DefaultModel+":generateContent") {
		t.Errorf("unexpected request path %s", gotPath)
	}
}

func TestGeminiSynthesisService_RemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
	}))
	defer server.Close()

	pool := services.NewGenAIClientPool(&repositories.AIClientConfig{APIKey: "test-key", BaseURL: server.URL + "/"})
	service := NewGeminiSynthesisService(pool, nil)

	_, err := service.Synthesize(context.Background(), newTestRequest(t))
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, domain.ErrNoImageProduced) {
		t.Errorf("a remote failure is not a missing image: %v", err)
	}
}
