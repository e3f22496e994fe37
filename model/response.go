package model

import "strings"

// GenerateContentRequest is the body of a Vertex AI / Gemini generateContent call.
type GenerateContentRequest struct {
	Contents         []Content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part carries either text or inline binary data, never both.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData holds base64 encoded bytes with their media type.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type GenerationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

// GenerateContentResponse represents the response structure of generateContent
type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	ModelVersion   string          `json:"modelVersion,omitempty"`
}

type Candidate struct {
	Content      *Content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// ErrorResponse is the Google API error envelope returned with non-2xx statuses.
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// FirstInlineData scans the parts of the first candidate in order and returns
// the first one carrying inline data, plus all text seen in that candidate.
func (r *GenerateContentResponse) FirstInlineData() (*InlineData, string) {
	if r == nil || len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return nil, ""
	}

	var texts []string
	var found *InlineData
	for _, part := range r.Candidates[0].Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
		if found == nil && part.InlineData != nil {
			found = part.InlineData
		}
	}
	return found, strings.Join(texts, "\n")
}
