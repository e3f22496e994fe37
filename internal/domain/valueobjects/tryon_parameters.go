package valueobjects

import (
	"fmt"
	"strings"
)

type Modality string

const (
	ModalityImage Modality = "IMAGE"
	ModalityText  Modality = "TEXT"
)

const (
	DefaultModel = "gemini-2.5-flash-image-preview"

	DefaultInstruction = "Using the person in the first image as the model and the clothing item from the second image, " +
		"generate a new image where the person is realistically wearing that clothing. " +
		"The background should be clean and simple, matching the original model's photo. " +
		"The final output must only be the generated image of the person wearing the clothes."
)

// TryOnParameters carries the static parts of a synthesis request.
type TryOnParameters struct {
	model              string
	instruction        string
	responseModalities []Modality
}

func NewTryOnParameters(model, instruction string) (*TryOnParameters, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, fmt.Errorf("model must not be empty")
	}

	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return nil, fmt.Errorf("instruction must not be empty")
	}

	return &TryOnParameters{
		model:              model,
		instruction:        instruction,
		responseModalities: []Modality{ModalityImage, ModalityText},
	}, nil
}

func DefaultTryOnParameters() *TryOnParameters {
	params, _ := NewTryOnParameters(DefaultModel, DefaultInstruction)
	return params
}

func (p *TryOnParameters) Model() string {
	return p.model
}

func (p *TryOnParameters) Instruction() string {
	return p.instruction
}

func (p *TryOnParameters) ResponseModalities() []Modality {
	out := make([]Modality, len(p.responseModalities))
	copy(out, p.responseModalities)
	return out
}
