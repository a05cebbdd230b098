package models

import "time"

type VacancyStatus string

const (
	VacancyConcept          VacancyStatus = "concept"
	VacancyAwaitingApproval VacancyStatus = "awaiting_approval"
	VacancyPublished        VacancyStatus = "published"
	VacancyExpired          VacancyStatus = "expired"
	VacancyUnpublished      VacancyStatus = "unpublished"
	VacancyNeedsAdjustment  VacancyStatus = "needs_adjustment"
)

func (s VacancyStatus) Valid() bool {
	switch s {
	case VacancyConcept, VacancyAwaitingApproval, VacancyPublished,
		VacancyExpired, VacancyUnpublished, VacancyNeedsAdjustment:
		return true
	}
	return false
}

// Editable reports whether the employer may still change the content.
func (s VacancyStatus) Editable() bool {
	return s == VacancyConcept || s == VacancyNeedsAdjustment
}

type InputType string

const (
	InputSelfService  InputType = "self_service"
	InputWeDoItForYou InputType = "we_do_it_for_you"
)

func (t InputType) Valid() bool {
	return t == InputSelfService || t == InputWeDoItForYou
}

type Vacancy struct {
	ID              string        `json:"id"`
	EmployerID      string        `json:"employer_id"`
	Status          VacancyStatus `json:"status"`
	InputType       InputType     `json:"input_type"`
	PackageID       string        `json:"package_id,omitempty"`
	SelectedUpsells []string      `json:"selected_upsells"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	Location        string        `json:"location,omitempty"`
	EmploymentType  string        `json:"employment_type,omitempty"`
	HoursPerWeek    int           `json:"hours_per_week,omitempty"`
	SalaryMin       int           `json:"salary_min,omitempty"`
	SalaryMax       int           `json:"salary_max,omitempty"`
	ClosingDate     *time.Time    `json:"closing_date,omitempty"`
	ApplicationURL  string        `json:"application_url,omitempty"`
	ContactEmail    string        `json:"contact_email,omitempty"`
	IntakeNotes     string        `json:"intake_notes,omitempty"`
	SubmittedAt     *time.Time    `json:"submitted_at,omitempty"`
	LastPublishedAt *time.Time    `json:"last_published_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// VacancyInput carries create/update payloads. Nil fields are left untouched
// on update. ClosingDate is a calendar date formatted as 2006-01-02.
type VacancyInput struct {
	InputType       *InputType `json:"input_type"`
	PackageID       *string    `json:"package_id"`
	SelectedUpsells *[]string  `json:"selected_upsells"`
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location"`
	EmploymentType  *string    `json:"employment_type"`
	HoursPerWeek    *int       `json:"hours_per_week"`
	SalaryMin       *int       `json:"salary_min"`
	SalaryMax       *int       `json:"salary_max"`
	ClosingDate     *string    `json:"closing_date"`
	ApplicationURL  *string    `json:"application_url"`
	ContactEmail    *string    `json:"contact_email"`
	IntakeNotes     *string    `json:"intake_notes"`
}

type SubmitResult struct {
	VacancyID     string        `json:"vacancy_id"`
	Status        VacancyStatus `json:"status"`
	CreditsSpent  int64         `json:"credits_spent"`
	Balance       int64         `json:"balance"`
	TransactionID string        `json:"transaction_id,omitempty"`
}
