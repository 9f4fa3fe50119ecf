package services

import (
	"nutriscan/internal/models"
	"nutriscan/internal/providers"
	"nutriscan/internal/storage/interfaces"
	"nutriscan/internal/structures"
	"sync"
)

// unlockQuota is granted by the developer bypass on the paywall.
const unlockQuota = 9999

type SessionServiceInterface interface {
	Current() models.SessionState
	Login(asOwner bool) models.SessionState
	RecordAnalysisUsed() models.SessionState
	IsLocked() bool
	SetSubscription(status models.SubscriptionStatus) (models.SessionState, error)
	Unlock() models.SessionState
}

type SessionService struct {
	kv         interfaces.KeyValueStore
	logger     providers.Logger
	freeQuota  int
	ownerQuota int
	mu         sync.Mutex
}

func NewSessionService(conf *structures.Config, kv interfaces.KeyValueStore, logger providers.Logger) SessionServiceInterface {
	return &SessionService{
		kv:         kv,
		logger:     logger,
		freeQuota:  conf.Entitlement.FreeQuota,
		ownerQuota: conf.Entitlement.OwnerQuota,
	}
}

func (s *SessionService) load() models.SessionState {
	session := models.DefaultSession(s.freeQuota)
	stored := session
	if readJSON(s.kv, s.logger, KeyUserSession, &stored) {
		session = stored
	}
	return session
}

func (s *SessionService) save(session models.SessionState) models.SessionState {
	writeJSON(s.kv, s.logger, KeyUserSession, session)
	return session
}

func (s *SessionService) Current() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *SessionService) Login(asOwner bool) models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	quota := s.freeQuota
	if asOwner {
		quota = s.ownerQuota
	}
	s.logger.Infof(providers.TypeApp, "Logged in (owner=%t, quota=%d)", asOwner, quota)
	return s.save(models.SessionState{
		IsLoggedIn:         true,
		IsOwner:            asOwner,
		AnalysesRemaining:  quota,
		SubscriptionStatus: models.SubscriptionNone,
	})
}

func (s *SessionService) RecordAnalysisUsed() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.load()
	if session.IsOwner {
		return session
	}
	return s.save(session.UseAnalysis())
}

func (s *SessionService) IsLocked() bool {
	return s.Current().IsLocked()
}

func (s *SessionService) SetSubscription(status models.SubscriptionStatus) (models.SessionState, error) {
	status, err := models.ParseSubscriptionStatus(string(status))
	if err != nil {
		return models.SessionState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.load()
	session.SubscriptionStatus = status
	return s.save(session), nil
}

func (s *SessionService) Unlock() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.load()
	session.IsOwner = true
	session.AnalysesRemaining = unlockQuota
	session.SubscriptionStatus = models.SubscriptionActive
	s.logger.Warnf(providers.TypeApp, "Entitlement bypass enabled")
	return s.save(session)
}
