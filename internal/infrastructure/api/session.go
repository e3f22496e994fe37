package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"mannequin/internal/application/usecases"
	"mannequin/internal/domain"
	domainrepos "mannequin/internal/domain/repositories"
)

const SessionCookie = "mannequin_session"

// ControllerFactory builds the controller for a new browser session.
type ControllerFactory func() (*usecases.Controller, error)

type SessionManager struct {
	repo    domainrepos.SessionRepository[*usecases.Controller]
	factory ControllerFactory
	secure  bool
}

func NewSessionManager(repo domainrepos.SessionRepository[*usecases.Controller], factory ControllerFactory, secure bool) *SessionManager {
	return &SessionManager{
		repo:    repo,
		factory: factory,
		secure:  secure,
	}
}

// Resolve returns the controller bound to the request's session cookie,
// creating a fresh session (and setting the cookie on w) when there is none.
func (m *SessionManager) Resolve(w http.ResponseWriter, r *http.Request) (*usecases.Controller, error) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		ctrl, err := m.repo.FindByID(r.Context(), domainrepos.SessionID(cookie.Value))
		if err == nil {
			return ctrl, nil
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
	}

	ctrl, err := m.factory()
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	if err := m.repo.Save(r.Context(), domainrepos.SessionID(id), ctrl); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return ctrl, nil
}
