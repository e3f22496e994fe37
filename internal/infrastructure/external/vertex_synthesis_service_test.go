package external

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"mannequin/internal/domain"
	"mannequin/model"
)

func newVertexTestService(t *testing.T, handler http.HandlerFunc) *VertexSynthesisService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := NewVertexSynthesisService(context.Background(), "demo-project", "europe-west4", nil,
		WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token", TokenType: "Bearer"})),
		WithBaseURL(server.URL+"/v1/"),
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewVertexSynthesisService() error = %v", err)
	}
	return service
}

func TestVertexSynthesisService_Synthesize(t *testing.T) {
	var captured model.GenerateContentRequest
	service := newVertexTestService(t, func(w http.ResponseWriter, r *http.Request) {
		wantPath := "/v1/projects/demo-project/locations/europe-west4/publishers/google/models/gemini-2.5-flash-image-preview:generateContent"
		if r.URL.Path != wantPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode body: %v", err)
		}
		fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":"done"},{"inlineData":{"mimeType":"image/png","data":%q}}]}}]}`,
			base64.StdEncoding.EncodeToString(onePixelPNG))
	})

	request := newTestRequest(t)
	result, err := service.Synthesize(context.Background(), request)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if string(result.Image().Data()) != string(onePixelPNG) {
		t.Errorf("image bytes were not decoded")
	}
	if result.Commentary() != "done" {
		t.Errorf("commentary = %q", result.Commentary())
	}

	parts := captured.Contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if parts[0].InlineData.Data != request.ModelImage().Base64() || parts[1].InlineData.MimeType != "image/jpeg" {
		t.Errorf("image parts out of order")
	}
	if parts[2].Text == "" {
		t.Errorf("instruction missing")
	}
	if strings.Join(captured.GenerationConfig.ResponseModalities, ",") != "IMAGE,TEXT" {
		t.Errorf("modalities = %v", captured.GenerationConfig.ResponseModalities)
	}
}

func TestVertexSynthesisService_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantNoImage bool
	}{
		{"text only", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"no"}]}}]}`, true},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, true},
		{"server error", http.StatusInternalServerError, `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`, false},
		{"garbage", http.StatusOK, `not json`, false},
		{"bad base64", http.StatusOK, `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"***"}}]}}]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newVertexTestService(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := service.Synthesize(context.Background(), newTestRequest(t))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, domain.ErrNoImageProduced); got != tt.wantNoImage {
				t.Errorf("ErrNoImageProduced = %v, want %v (%v)", got, tt.wantNoImage, err)
			}
		})
	}
}

func TestVertexBaseURL(t *testing.T) {
	if got := vertexBaseURL("global"); got != "https://aiplatform.googleapis.com/v1" {
		t.Errorf("global = %s", got)
	}
	if got := vertexBaseURL("us-central1"); got != "https://us-central1-aiplatform.googleapis.com/v1" {
		t.Errorf("regional = %s", got)
	}
	if _, err := NewVertexSynthesisService(context.Background(), "", "", nil); err == nil {
		t.Errorf("expected error without project")
	}
}
