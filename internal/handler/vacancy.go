package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/honeynil/employer-dashboard/internal/models"
)

func (h *Handler) ListVacancies(w http.ResponseWriter, r *http.Request) {
	status := models.VacancyStatus(r.URL.Query().Get("status"))
	vacancies, err := h.vacancies.List(r.Context(), session(r).EmployerID, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vacancies": vacancies})
}

func (h *Handler) CreateVacancy(w http.ResponseWriter, r *http.Request) {
	var in models.VacancyInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	s := session(r)
	vacancy, err := h.vacancies.Create(r.Context(), s.EmployerID, s.UserID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, vacancy)
}

func (h *Handler) GetVacancy(w http.ResponseWriter, r *http.Request) {
	vacancy, err := h.vacancies.Get(r.Context(), session(r).EmployerID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vacancy)
}

func (h *Handler) UpdateVacancy(w http.ResponseWriter, r *http.Request) {
	var in models.VacancyInput
	if err := decodeJSON(r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	s := session(r)
	vacancy, err := h.vacancies.Update(r.Context(), s.EmployerID, s.UserID, mux.Vars(r)["id"], in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vacancy)
}

func (h *Handler) DeleteVacancy(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	if err := h.vacancies.Delete(r.Context(), s.EmployerID, s.UserID, mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SubmitVacancy(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	result, err := h.vacancies.Submit(r.Context(), s.EmployerID, s.UserID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) RepublishVacancy(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	vacancy, err := h.vacancies.Republish(r.Context(), s.EmployerID, s.UserID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vacancy)
}

func (h *Handler) UnpublishVacancy(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	vacancy, err := h.vacancies.Unpublish(r.Context(), s.EmployerID, s.UserID, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vacancy)
}
