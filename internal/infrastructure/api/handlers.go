package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"mannequin/internal/application/services"
	"mannequin/internal/application/usecases"
	"mannequin/internal/domain"
	"mannequin/internal/domain/entities"
	"mannequin/internal/i18n"
)

const DownloadFilename = "virtual-try-on.png"

type TryOnHandler struct {
	sessions *SessionManager
	uploads  *services.UploadService
}

func NewTryOnHandler(sessions *SessionManager, uploads *services.UploadService) *TryOnHandler {
	return &TryOnHandler{
		sessions: sessions,
		uploads:  uploads,
	}
}

func (h *TryOnHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *TryOnHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	h.respond(w, r, ctrl, ctrl.State(), nil)
}

func (h *TryOnHandler) HandleModelPhoto(w http.ResponseWriter, r *http.Request) {
	h.handlePhoto(w, r, entities.FailureModelRead, (*usecases.Controller).SelectModelPhoto)
}

func (h *TryOnHandler) HandleGarmentPhoto(w http.ResponseWriter, r *http.Request) {
	h.handlePhoto(w, r, entities.FailureGarmentRead, (*usecases.Controller).SelectGarmentPhoto)
}

type selectFunc func(*usecases.Controller, io.Reader, string) (entities.SessionState, error)

func (h *TryOnHandler) handlePhoto(w http.ResponseWriter, r *http.Request, readFailure entities.FailureKind, selectPhoto selectFunc) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	defer h.uploads.Cleanup(r)

	upload, err := h.uploads.ParsePhoto(r)
	if err != nil {
		// Record the read failure in the session like any other unreadable file.
		state, err := selectPhoto(ctrl, errReader{err}, "")
		h.respondFailure(w, r, ctrl, state, err, readFailure)
		return
	}
	defer upload.Close()

	zerolog.Ctx(r.Context()).Debug().
		Str("filename", upload.Filename).
		Str("declared_type", upload.DeclaredType).
		Int64("size", upload.Size).
		Msg("photo upload")

	state, err := selectPhoto(ctrl, upload.File, upload.DeclaredType)
	h.respondFailure(w, r, ctrl, state, err, readFailure)
}

func (h *TryOnHandler) HandleTryOn(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	state, err := ctrl.Submit(r.Context())
	if err != nil && !errors.Is(err, domain.ErrSubmitInFlight) && !errors.Is(err, domain.ErrStaleResult) {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("phase", state.Phase().String()).Msg("try-on failed")
	}
	h.respond(w, r, ctrl, state, err)
}

func (h *TryOnHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	h.respond(w, r, ctrl, ctrl.Reset(), nil)
}

func (h *TryOnHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	result := ctrl.State().Result()
	if result == nil || !result.HasImage() {
		sendError(w, domain.ErrNoResult.Error(), statusFor(domain.ErrNoResult))
		return
	}

	img := result.Image()
	w.Header().Set("Content-Type", string(img.MediaType()))
	w.Header().Set("Content-Disposition", `attachment; filename="`+DownloadFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data())
}

func (h *TryOnHandler) controller(w http.ResponseWriter, r *http.Request) (*usecases.Controller, bool) {
	ctrl, err := h.sessions.Resolve(w, r)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("session unavailable")
		sendError(w, LocalizerFrom(r.Context()).T(i18n.ErrUnknown), http.StatusInternalServerError)
		return nil, false
	}
	return ctrl, true
}

// respondFailure is respond for photo selections: a selection rejected while
// a request is loading leaves no failure in the state, so the message is
// derived from the error instead.
func (h *TryOnHandler) respondFailure(w http.ResponseWriter, r *http.Request, ctrl *usecases.Controller, state entities.SessionState, err error, readFailure entities.FailureKind) {
	if err == nil || state.Failure() != "" {
		h.respond(w, r, ctrl, state, err)
		return
	}
	l := LocalizerFrom(r.Context())
	status, _ := ctrl.Progress()
	view := newStateView(state, l, status)
	kind := entities.FailureUnsupportedType
	if errors.Is(err, domain.ErrFileRead) {
		kind = readFailure
	}
	view.Error = l.Failure(kind)
	writeJSON(w, statusFor(err), view)
}

func (h *TryOnHandler) respond(w http.ResponseWriter, r *http.Request, ctrl *usecases.Controller, state entities.SessionState, err error) {
	status, _ := ctrl.Progress()
	writeJSON(w, statusFor(err), newStateView(state, LocalizerFrom(r.Context()), status))
}

type errReader struct{ err error }

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
