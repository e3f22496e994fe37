package usecases

import (
	"context"
	"fmt"

	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/services"
	"mannequin/internal/domain/valueobjects"
)

type TryOnUseCase struct {
	domainService *services.TryOnDomainService
	parameters    *valueobjects.TryOnParameters
}

func NewTryOnUseCase(
	domainService *services.TryOnDomainService,
	parameters *valueobjects.TryOnParameters,
) *TryOnUseCase {
	if parameters == nil {
		parameters = valueobjects.DefaultTryOnParameters()
	}
	return &TryOnUseCase{
		domainService: domainService,
		parameters:    parameters,
	}
}

type TryOnInput struct {
	ModelImage   *valueobjects.UploadedImage
	GarmentImage *valueobjects.UploadedImage
}

type TryOnOutput struct {
	RequestID entities.TryOnRequestID
	Result    *entities.TryOnResult
}

// Execute makes exactly one synthesis attempt for the given pair of photos.
func (uc *TryOnUseCase) Execute(ctx context.Context, input TryOnInput) (*TryOnOutput, error) {
	request, err := entities.NewTryOnRequest(input.ModelImage, input.GarmentImage, uc.parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	result, err := uc.domainService.ProcessTryOn(ctx, request)
	if err != nil {
		return nil, err
	}

	return &TryOnOutput{
		RequestID: request.ID(),
		Result:    result,
	}, nil
}

func (uc *TryOnUseCase) Parameters() *valueobjects.TryOnParameters {
	return uc.parameters
}
