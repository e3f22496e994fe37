package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/domain/valueobjects"
	"mannequin/internal/i18n"
)

type ImageView struct {
	DataURL   string `json:"data_url"`
	MediaType string `json:"media_type"`
}

// StateView is the JSON rendering of a session's state.
type StateView struct {
	Phase         string     `json:"phase"`
	ModelImage    *ImageView `json:"model_image"`
	GarmentImage  *ImageView `json:"garment_image"`
	ResultImage   *ImageView `json:"result_image"`
	Loading       bool       `json:"loading"`
	Error         string     `json:"error,omitempty"`
	StatusMessage string     `json:"status_message,omitempty"`
	CanSubmit     bool       `json:"can_submit"`
}

func newImageView(img *valueobjects.UploadedImage) *ImageView {
	if img == nil {
		return nil
	}
	return &ImageView{
		DataURL:   img.DataURL().String(),
		MediaType: string(img.MediaType()),
	}
}

func newStateView(state entities.SessionState, l *i18n.Localizer, statusKey string) StateView {
	view := StateView{
		Phase:        state.Phase().String(),
		ModelImage:   newImageView(state.ModelImage()),
		GarmentImage: newImageView(state.GarmentImage()),
		Loading:      state.IsLoading(),
		Error:        l.Failure(state.Failure()),
		CanSubmit:    state.CanSubmit(),
	}
	if result := state.Result(); result != nil {
		view.ResultImage = newImageView(result.Image())
	}
	if view.Loading && statusKey != "" {
		view.StatusMessage = l.T(i18n.Key(statusKey))
	}
	return view
}

// statusFor maps controller errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrFileRead), errors.Is(err, domain.ErrMissingImages):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSubmitInFlight), errors.Is(err, domain.ErrStaleResult):
		return http.StatusConflict
	case errors.Is(err, domain.ErrProcessingFailed), errors.Is(err, domain.ErrNoImageProduced):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrNoResult), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func sendError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
