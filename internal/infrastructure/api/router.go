package api

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"

	"mannequin/internal/application/services"
	"mannequin/internal/infra"
)

type RouterConfig struct {
	Sessions      *SessionManager
	Uploads       *services.UploadService
	DefaultLocale string
	Logger        *infra.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	uploads := cfg.Uploads
	if uploads == nil {
		uploads = services.NewUploadService(0)
	}

	tryOn := NewTryOnHandler(cfg.Sessions, uploads)
	progress := NewProgressHandler(cfg.Sessions)
	page := NewPageHandler(cfg.Sessions)

	r := mux.NewRouter()
	r.Use(
		middleware.RealIP,
		RequestID(logger),
		AccessLog,
		middleware.Recoverer,
		Locale(cfg.DefaultLocale),
	)

	r.HandleFunc("/", page.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/healthz", tryOn.HandleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", tryOn.HandleState).Methods(http.MethodGet)
	api.HandleFunc("/model-photo", tryOn.HandleModelPhoto).Methods(http.MethodPost)
	api.HandleFunc("/garment-photo", tryOn.HandleGarmentPhoto).Methods(http.MethodPost)
	api.HandleFunc("/tryon", tryOn.HandleTryOn).Methods(http.MethodPost)
	api.HandleFunc("/reset", tryOn.HandleReset).Methods(http.MethodPost)
	api.HandleFunc("/result/download", tryOn.HandleDownload).Methods(http.MethodGet)
	api.HandleFunc("/progress", progress.HandleProgress).Methods(http.MethodGet)

	return r
}
