package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserExists               = errors.New("user already exists")
	ErrEmployerNotFound         = errors.New("employer not found")
	ErrEmployerExists           = errors.New("employer already exists")
	ErrWalletNotFound           = errors.New("wallet not found")
	ErrWalletExists             = errors.New("wallet already exists")
	ErrVacancyNotFound          = errors.New("vacancy not found")
	ErrMediaNotFound            = errors.New("media asset not found")
	ErrPackageNotFound          = errors.New("package not found")
	ErrUpsellNotFound           = errors.New("upsell not found")
	ErrBundleNotFound           = errors.New("credit bundle not found")
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrNilUser                  = errors.New("user is nil")
	ErrNilWallet                = errors.New("wallet is nil")
	ErrNilVacancy               = errors.New("vacancy is nil")
	ErrNilTransaction           = errors.New("transaction is nil")
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")
	ErrInvalidAmount            = errors.New("amount must be positive")
	ErrInsufficientCredits      = errors.New("insufficient credits")
	ErrConcurrentUpdate         = errors.New("record was modified concurrently")
	ErrInvalidStatus            = errors.New("operation not allowed in current status")
	ErrClosingDateNotInFuture   = errors.New("closing date must be in the future")
	ErrSubmissionInProgress     = errors.New("submission already in progress")
	ErrInvalidMediaType         = errors.New("invalid media type")
	ErrUnsupportedFileType      = errors.New("unsupported file type")
	ErrFileTooLarge             = errors.New("file too large")
	ErrGalleryLimitReached      = errors.New("gallery limit reached")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrForbidden                = errors.New("forbidden")
	ErrOnboardingRequired       = errors.New("onboarding not completed")
	ErrAlreadyOnboarded         = errors.New("onboarding already completed")
	ErrRateLimited              = errors.New("too many requests")
	ErrInvalidInput             = errors.New("invalid input")
	ErrInternal                 = errors.New("internal error")
)

// ValidationError lists the request fields that are missing or invalid.
type ValidationError struct {
	Fields []string
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// InsufficientCreditsError reports how many credits an operation lacked.
type InsufficientCreditsError struct {
	Required  int64
	Available int64
}

func (e *InsufficientCreditsError) Shortage() int64 {
	return e.Required - e.Available
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, available %d", e.Required, e.Available)
}

func (e *InsufficientCreditsError) Unwrap() error {
	return ErrInsufficientCredits
}
