package models

import "time"

type UserStatus string

const (
	UserStatusPendingOnboarding UserStatus = "pending_onboarding"
	UserStatusActive            UserStatus = "active"
)

type User struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name,omitempty"`
	Status     UserStatus `json:"status"`
	EmployerID string     `json:"employer_id,omitempty"`
	RoleID     string     `json:"role_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type Employer struct {
	ID           string     `json:"id"`
	CompanyName  string     `json:"company_name"`
	KvKNumber    string     `json:"kvk_number"`
	ContactEmail string     `json:"contact_email"`
	Phone        string     `json:"phone,omitempty"`
	Website      string     `json:"website,omitempty"`
	Description  string     `json:"description,omitempty"`
	Address      string     `json:"address,omitempty"`
	PostalCode   string     `json:"postal_code,omitempty"`
	City         string     `json:"city,omitempty"`
	LogoURL      string     `json:"logo_url,omitempty"`
	DeletedAt    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Account is what the dashboard shows on the account page.
type Account struct {
	User     *User     `json:"user"`
	Employer *Employer `json:"employer,omitempty"`
	Wallet   *Wallet   `json:"wallet,omitempty"`
}

type OnboardingInput struct {
	CompanyName  string `json:"company_name"`
	KvKNumber    string `json:"kvk_number"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
	Description  string `json:"description"`
	Address      string `json:"address"`
	PostalCode   string `json:"postal_code"`
	City         string `json:"city"`
}

// CompanyInput is a partial profile update; nil fields are left untouched.
// The KvK number is fixed after onboarding.
type CompanyInput struct {
	CompanyName  *string `json:"company_name"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
	Website      *string `json:"website"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	PostalCode   *string `json:"postal_code"`
	City         *string `json:"city"`
}
