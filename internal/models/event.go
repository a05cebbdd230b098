package models

import (
	"encoding/json"
	"time"
)

const (
	EventUserSignedUp        = "user_signed_up"
	EventUserLoggedIn        = "user_logged_in"
	EventOnboardingCompleted = "onboarding_completed"
	EventCompanyUpdated      = "company_updated"
	EventAccountDeleted      = "account_deleted"
	EventCreditsPurchased    = "credits_purchased"
	EventCreditsGranted      = "credits_granted"
	EventVacancyCreated      = "vacancy_created"
	EventVacancyUpdated      = "vacancy_updated"
	EventVacancyDeleted      = "vacancy_deleted"
	EventVacancySubmitted    = "vacancy_submitted"
	EventVacancyRepublished  = "vacancy_republished"
	EventVacancyUnpublished  = "vacancy_unpublished"
	EventMediaUploaded       = "media_uploaded"
	EventMediaDeleted        = "media_deleted"
)

// Event is one entry of the append-only audit log.
type Event struct {
	ID         string          `json:"id"`
	EmployerID string          `json:"employer_id,omitempty"`
	UserID     string          `json:"user_id,omitempty"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
