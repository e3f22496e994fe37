package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"mannequin/internal/i18n"
)

const (
	progressPoll  = 250 * time.Millisecond
	progressWrite = 10 * time.Second
)

type progressFrame struct {
	Phase         string `json:"phase"`
	Loading       bool   `json:"loading"`
	StatusMessage string `json:"status_message,omitempty"`
}

type ProgressHandler struct {
	sessions *SessionManager
	upgrader websocket.Upgrader
	poll     time.Duration
}

func NewProgressHandler(sessions *SessionManager) *ProgressHandler {
	return &ProgressHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		poll: progressPoll,
	}
}

// HandleProgress streams the session's phase and localized status message,
// sending a frame whenever either changes.
func (h *ProgressHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	ctrl, err := h.sessions.Resolve(w, r)
	if err != nil {
		logger.Error().Err(err).Msg("session unavailable")
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Upgrade writes its own response, so a freshly minted cookie must be passed along.
	header := http.Header{}
	if cookies := w.Header().Values("Set-Cookie"); len(cookies) > 0 {
		header["Set-Cookie"] = cookies
	}
	conn, err := h.upgrader.Upgrade(w, r, header)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	l := LocalizerFrom(r.Context())
	ticker := time.NewTicker(h.poll)
	defer ticker.Stop()

	var last progressFrame
	first := true
	for {
		statusKey, loading := ctrl.Progress()
		frame := progressFrame{
			Phase:   ctrl.State().Phase().String(),
			Loading: loading,
		}
		if loading {
			frame.StatusMessage = l.T(i18n.Key(statusKey))
		}

		if first || frame != last {
			_ = conn.SetWriteDeadline(time.Now().Add(progressWrite))
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
			last, first = frame, false
		}

		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
