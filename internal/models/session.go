package models

import "errors"

var ErrInvalidSubscription = errors.New("unknown subscription status")

type SubscriptionStatus string

const (
	SubscriptionNone   SubscriptionStatus = "none"
	SubscriptionTrial  SubscriptionStatus = "trial"
	SubscriptionActive SubscriptionStatus = "active"
)

func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	switch status := SubscriptionStatus(s); status {
	case SubscriptionNone, SubscriptionTrial, SubscriptionActive:
		return status, nil
	}
	return "", ErrInvalidSubscription
}

// SessionState gates new analyses. The counter only moves down between logins.
type SessionState struct {
	IsLoggedIn         bool               `json:"isLoggedIn"`
	IsOwner            bool               `json:"isOwner"`
	AnalysesRemaining  int                `json:"analysesRemaining"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
}

func DefaultSession(freeQuota int) SessionState {
	return SessionState{
		AnalysesRemaining:  freeQuota,
		SubscriptionStatus: SubscriptionNone,
	}
}

func (s SessionState) IsLocked() bool {
	return !s.IsOwner && s.AnalysesRemaining <= 0 && s.SubscriptionStatus != SubscriptionActive
}

// UseAnalysis decrements the counter of non-owner sessions, never below zero.
func (s SessionState) UseAnalysis() SessionState {
	if s.IsOwner {
		return s
	}
	s.AnalysesRemaining = max(0, s.AnalysesRemaining-1)
	return s
}
