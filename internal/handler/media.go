package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/honeynil/employer-dashboard/internal/models"
	pkgerrors "github.com/honeynil/employer-dashboard/pkg/errors"
)

// multipartOverhead covers form fields and part headers around the file.
const multipartOverhead = 1 << 20

func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	mediaType := models.MediaType(r.URL.Query().Get("type"))
	assets, err := h.media.List(r.Context(), session(r).EmployerID, mediaType)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"media": assets})
}

// UploadMedia takes a multipart form with fields type, alt_text and file.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, pkgerrors.ErrFileTooLarge)
			return
		}
		h.writeError(w, r, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidInput, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, r, pkgerrors.NewValidationError("file"))
		return
	}
	defer file.Close()

	s := session(r)
	asset, err := h.media.Upload(r.Context(), s.EmployerID, s.UserID, models.MediaUpload{
		Type:        models.MediaType(r.FormValue("type")),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
		AltText:     r.FormValue("alt_text"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (h *Handler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AltText string `json:"alt_text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	asset, err := h.media.UpdateAltText(r.Context(), session(r).EmployerID, mux.Vars(r)["id"], req.AltText)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	s := session(r)
	if err := h.media.Delete(r.Context(), s.EmployerID, s.UserID, mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
