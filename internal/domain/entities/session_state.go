package entities

import "mannequin/internal/domain/valueobjects"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseReady
	PhaseLoading
	PhaseResult
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseLoading:
		return "loading"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

type FailureKind string

const (
	FailureModelRead        FailureKind = "model-read"
	FailureGarmentRead      FailureKind = "garment-read"
	FailureUnsupportedType  FailureKind = "unsupported-type"
	FailureMissingImages    FailureKind = "missing-images"
	FailureProcessingFailed FailureKind = "processing-failed"
	FailureNoImage          FailureKind = "no-image"
	FailureUnknown          FailureKind = "unknown"
)

type outcome int

const (
	outcomeNone outcome = iota
	outcomeLoading
	outcomeResult
	outcomeFailure
)

// SessionState is an immutable snapshot of one browser session. The outcome
// discriminant makes loading, result and failure mutually exclusive; the
// result is only set in PhaseResult and the failure only in PhaseError.
type SessionState struct {
	modelImage   *valueobjects.UploadedImage
	garmentImage *valueobjects.UploadedImage
	outcome      outcome
	result       *TryOnResult
	failure      FailureKind
}

func (s SessionState) Phase() Phase {
	switch s.outcome {
	case outcomeLoading:
		return PhaseLoading
	case outcomeResult:
		return PhaseResult
	case outcomeFailure:
		return PhaseError
	}
	if s.HasBothImages() {
		return PhaseReady
	}
	return PhaseIdle
}

func (s SessionState) ModelImage() *valueobjects.UploadedImage {
	return s.modelImage
}

func (s SessionState) GarmentImage() *valueobjects.UploadedImage {
	return s.garmentImage
}

func (s SessionState) HasBothImages() bool {
	return s.modelImage != nil && s.garmentImage != nil
}

func (s SessionState) IsLoading() bool {
	return s.outcome == outcomeLoading
}

func (s SessionState) Result() *TryOnResult {
	if s.outcome != outcomeResult {
		return nil
	}
	return s.result
}

func (s SessionState) Failure() FailureKind {
	if s.outcome != outcomeFailure {
		return ""
	}
	return s.failure
}

// CanSubmit mirrors the submit affordance: both images present and nothing in flight.
func (s SessionState) CanSubmit() bool {
	return s.HasBothImages() && !s.IsLoading()
}

func (s SessionState) WithModelImage(img *valueobjects.UploadedImage) SessionState {
	s.modelImage = img
	return s.clearFailure()
}

func (s SessionState) WithGarmentImage(img *valueobjects.UploadedImage) SessionState {
	s.garmentImage = img
	return s.clearFailure()
}

// Loading clears any previous result or failure.
func (s SessionState) Loading() SessionState {
	s.outcome = outcomeLoading
	s.result = nil
	s.failure = ""
	return s
}

func (s SessionState) WithResult(result *TryOnResult) SessionState {
	s.outcome = outcomeResult
	s.result = result
	s.failure = ""
	return s
}

// WithFailure keeps the image selections so the user can retry without re-uploading.
func (s SessionState) WithFailure(kind FailureKind) SessionState {
	s.outcome = outcomeFailure
	s.failure = kind
	s.result = nil
	return s
}

func (s SessionState) clearFailure() SessionState {
	if s.outcome == outcomeFailure {
		s.outcome = outcomeNone
		s.failure = ""
	}
	return s
}
