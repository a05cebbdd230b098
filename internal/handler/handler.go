package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/honeynil/employer-dashboard/internal/infrastructure/auth"
	"github.com/honeynil/employer-dashboard/internal/models"
	service "github.com/honeynil/employer-dashboard/internal/services"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
)

type Handler struct {
	auth      service.AuthService
	accounts  service.AccountService
	wallets   service.WalletService
	vacancies service.VacancyService
	media     service.MediaService
	catalog   service.CatalogService
	// maxUploadBytes bounds the multipart body of a media upload.
	maxUploadBytes int64
}

func NewHandler(
	authService service.AuthService,
	accounts service.AccountService,
	wallets service.WalletService,
	vacancies service.VacancyService,
	media service.MediaService,
	catalog service.CatalogService,
	maxUploadBytes int64,
) *Handler {
	return &Handler{
		auth:           authService,
		accounts:       accounts,
		wallets:        wallets,
		vacancies:      vacancies,
		media:          media,
		catalog:        catalog,
		maxUploadBytes: maxUploadBytes,
	}
}

// ErrorWriter exposes writeError to middleware built outside this package.
func (h *Handler) ErrorWriter() auth.ErrorWriter {
	return h.writeError
}

func (h *Handler) RegisterPublicRoutes(r *mux.Router) {
	r.HandleFunc("/auth/magic-link", h.RequestMagicLink).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify", h.VerifyMagicLink).Methods(http.MethodPost)
	r.HandleFunc("/catalog", h.GetCatalog).Methods(http.MethodGet)
}

// RegisterProtectedRoutes expects r to authenticate requests already. Users
// that have not finished onboarding only reach logout, onboarding and their
// own account.
func (h *Handler) RegisterProtectedRoutes(r *mux.Router) {
	r.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	r.HandleFunc("/onboarding", h.CompleteOnboarding).Methods(http.MethodPost)
	r.HandleFunc("/account", h.GetAccount).Methods(http.MethodGet)
	r.HandleFunc("/account", h.DeleteAccount).Methods(http.MethodDelete)

	active := auth.RequireActive(h.writeError)
	handle := func(path string, fn http.HandlerFunc, methods ...string) {
		r.Handle(path, active(fn)).Methods(methods...)
	}

	handle("/account", h.UpdateCompany, http.MethodPatch)

	handle("/wallet", h.GetWallet, http.MethodGet)
	handle("/wallet/transactions", h.GetTransactionHistory, http.MethodGet)
	handle("/wallet/purchase", h.PurchaseCredits, http.MethodPost)

	handle("/media", h.ListMedia, http.MethodGet)
	handle("/media", h.UploadMedia, http.MethodPost)
	handle("/media/{id}", h.UpdateMedia, http.MethodPatch)
	handle("/media/{id}", h.DeleteMedia, http.MethodDelete)

	handle("/vacancies", h.ListVacancies, http.MethodGet)
	handle("/vacancies", h.CreateVacancy, http.MethodPost)
	handle("/vacancies/{id}", h.GetVacancy, http.MethodGet)
	handle("/vacancies/{id}", h.UpdateVacancy, http.MethodPut)
	handle("/vacancies/{id}", h.DeleteVacancy, http.MethodDelete)
	handle("/vacancies/{id}/submit", h.SubmitVacancy, http.MethodPost)
	handle("/vacancies/{id}/publish", h.RepublishVacancy, http.MethodPost)
	handle("/vacancies/{id}/unpublish", h.UnpublishVacancy, http.MethodPost)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", pkgerrors.ErrInvalidInput, err)
	}
	return nil
}

func session(r *http.Request) models.Session {
	s, _ := auth.SessionFromContext(r.Context())
	return s
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func (h *Handler) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.auth.RequestMagicLink(r.Context(), req.Email); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (h *Handler) VerifyMagicLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.auth.VerifyMagicLink(r.Context(), req.Email, req.Token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), session(r).UserID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalog.Catalog(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var in models.OnboardingInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.accounts.CompleteOnboarding(r.Context(), session(r).UserID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetAccount(r.Context(), session(r).UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var in models.CompanyInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	s := session(r)
	employer, err := h.accounts.UpdateCompany(r.Context(), s.EmployerID, s.UserID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, employer)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteAccount(r.Context(), session(r).UserID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.wallets.GetForEmployer(r.Context(), session(r).EmployerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

func (h *Handler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.wallets.History(r.Context(), session(r).EmployerID, queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}

func (h *Handler) PurchaseCredits(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BundleID string `json:"bundle_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	s := session(r)
	result, err := h.wallets.Purchase(r.Context(), s.EmployerID, s.UserID, req.BundleID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
