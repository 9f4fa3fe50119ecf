package controllers

import (
	"net/http"
	"nutriscan/internal/models"
	"nutriscan/internal/providers"
	"nutriscan/internal/services"
)

type SessionController struct {
	logger  providers.Logger
	session services.SessionServiceInterface
}

func NewSessionController(logger providers.Logger, session services.SessionServiceInterface) *SessionController {
	return &SessionController{
		logger:  logger,
		session: session,
	}
}

type loginRequest struct {
	Owner bool `json:"owner"`
}

type subscriptionRequest struct {
	Status string `json:"status" validate:"required|in:none,trial,active"`
}

type sessionResponse struct {
	models.SessionState
	IsLocked bool `json:"isLocked"`
}

func respondSession(w http.ResponseWriter, s models.SessionState) {
	writeJSON(w, http.StatusOK, sessionResponse{SessionState: s, IsLocked: s.IsLocked()})
}

func (sc *SessionController) Current(w http.ResponseWriter, r *http.Request) {
	respondSession(w, sc.session.Current())
}

func (sc *SessionController) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}
	respondSession(w, sc.session.Login(payload.Owner))
}

func (sc *SessionController) SetSubscription(w http.ResponseWriter, r *http.Request) {
	var payload subscriptionRequest
	if err := decodeBody(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}
	s, err := sc.session.SetSubscription(models.SubscriptionStatus(payload.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	respondSession(w, s)
}

func (sc *SessionController) Unlock(w http.ResponseWriter, r *http.Request) {
	respondSession(w, sc.session.Unlock())
}
