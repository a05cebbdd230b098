package handler

import (
	"errors"
	"net/http"

	"github.com/honeynil/employer-dashboard/internal/infrastructure/observability"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
)

type errorResponse struct {
	Error     string   `json:"error"`
	Message   string   `json:"message"`
	Fields    []string `json:"fields,omitempty"`
	Required  *int64   `json:"required,omitempty"`
	Available *int64   `json:"available,omitempty"`
	Shortage  *int64   `json:"shortage,omitempty"`
}

type errorKind struct {
	target error
	status int
	code   string
}

// errorKinds is checked in order; the first match wins.
var errorKinds = []errorKind{
	{pkgerrors.ErrInsufficientCredits, http.StatusBadRequest, "insufficient_credits"},
	{pkgerrors.ErrClosingDateNotInFuture, http.StatusBadRequest, "closing_date_not_in_future"},
	{pkgerrors.ErrInvalidMediaType, http.StatusBadRequest, "invalid_media_type"},
	{pkgerrors.ErrUnsupportedFileType, http.StatusBadRequest, "unsupported_file_type"},
	{pkgerrors.ErrFileTooLarge, http.StatusBadRequest, "file_too_large"},
	{pkgerrors.ErrGalleryLimitReached, http.StatusBadRequest, "gallery_limit_reached"},
	{pkgerrors.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{pkgerrors.ErrInvalidInput, http.StatusBadRequest, "validation_failed"},
	{pkgerrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{pkgerrors.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
	{pkgerrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{pkgerrors.ErrOnboardingRequired, http.StatusForbidden, "onboarding_required"},
	{pkgerrors.ErrUserNotFound, http.StatusNotFound, "not_found"},
	{pkgerrors.ErrEmployerNotFound, http.StatusNotFound, "not_found"},
	{pkgerrors.ErrWalletNotFound, http.StatusNotFound, "not_found"},
	{pkgerrors.ErrVacancyNotFound, http.StatusNotFound, "not_found"},
	{pkgerrors.ErrMediaNotFound, http.StatusNotFound, "not_found"},
	{pkgerrors.ErrTransactionNotFound, http.StatusNotFound, "not_found"},
	{pkgerrors.ErrEmployerExists, http.StatusConflict, "already_exists"},
	{pkgerrors.ErrUserExists, http.StatusConflict, "already_exists"},
	{pkgerrors.ErrAlreadyOnboarded, http.StatusConflict, "already_onboarded"},
	{pkgerrors.ErrInvalidStatus, http.StatusConflict, "invalid_status"},
	{pkgerrors.ErrSubmissionInProgress, http.StatusConflict, "submission_in_progress"},
	{pkgerrors.ErrConcurrentUpdate, http.StatusConflict, "concurrent_update"},
	{pkgerrors.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
}

func classify(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

// writeError renders err with its status and Dutch message. It matches
// auth.ErrorWriter so middleware failures look like handler failures.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	resp := errorResponse{Error: code, Message: pkgerrors.Message(err)}

	var validation *pkgerrors.ValidationError
	if errors.As(err, &validation) {
		resp.Fields = validation.Fields
	}
	var insufficient *pkgerrors.InsufficientCreditsError
	if errors.As(err, &insufficient) {
		required, available, shortage := insufficient.Required, insufficient.Available, insufficient.Shortage()
		resp.Required, resp.Available, resp.Shortage = &required, &available, &shortage
	}

	logger := observability.WithContext(r.Context(), "method", r.Method, "path", r.URL.Path)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Info("request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, resp)
}
