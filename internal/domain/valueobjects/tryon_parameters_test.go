package valueobjects

import (
	"testing"
)

func TestNewTryOnParameters(t *testing.T) {
	tests := []struct {
		name        string
		model       string
		instruction string
		wantErr     bool
	}{
		{
			name:        "valid parameters",
			model:       "gemini-2.5-flash-image-preview",
			instruction: "dress the model",
			wantErr:     false,
		},
		{
			name:        "empty model",
			model:       "  ",
			instruction: "dress the model",
			wantErr:     true,
		},
		{
			name:        "empty instruction",
			model:       "gemini-2.5-flash-image-preview",
			instruction: "",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTryOnParameters(tt.model, tt.instruction)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTryOnParameters() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultTryOnParameters(t *testing.T) {
	params := DefaultTryOnParameters()

	if params.Model() != DefaultModel {
		t.Errorf("Expected model %s, got %s", DefaultModel, params.Model())
	}

	if params.Instruction() != DefaultInstruction {
		t.Errorf("Expected default instruction, got %q", params.Instruction())
	}

	modalities := params.ResponseModalities()
	if len(modalities) != 2 || modalities[0] != ModalityImage || modalities[1] != ModalityText {
		t.Errorf("Expected [IMAGE TEXT], got %v", modalities)
	}
}

func TestTryOnParameters_ResponseModalitiesIsACopy(t *testing.T) {
	params := DefaultTryOnParameters()
	modalities := params.ResponseModalities()
	modalities[0] = ModalityText

	if params.ResponseModalities()[0] != ModalityImage {
		t.Errorf("ResponseModalities() exposed internal slice")
	}
}
