package models

import "time"

// Session is the authenticated identity carried by a dashboard JWT.
type Session struct {
	UserID     string     `json:"user_id"`
	EmployerID string     `json:"employer_id,omitempty"`
	Status     UserStatus `json:"status"`
	ExpiresAt  time.Time  `json:"exp"`
}

func (s Session) Active() bool {
	return s.Status == UserStatusActive && s.EmployerID != ""
}

// LoginResult is returned when a session token is (re)issued.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
