package curso

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

type Handler struct {
	service      Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewHandler(
	service Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *Handler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *Handler) CreateCurso(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nome string `json:"nome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	curso, err := h.service.CreateCurso(req.Nome)
	if err != nil {
		if errors.Is(err, ErrNomeLength) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create curso")
		return
	}

	h.respondJSON(w, http.StatusCreated, curso)
}

func (h *Handler) GetCursos(w http.ResponseWriter, r *http.Request) {
	cursos, err := h.service.GetCursos()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve cursos")
		return
	}
	h.respondJSON(w, http.StatusOK, cursos)
}

func (h *Handler) GetCurso(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid curso id")
		return
	}

	curso, err := h.service.GetCurso(id)
	if err != nil {
		if errors.Is(err, ErrCursoNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve curso")
		return
	}
	h.respondJSON(w, http.StatusOK, curso)
}
