package topico

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sebuszqo/HouseholdBudget/internal/academics/disciplina"
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

func (h *Handler) CreateTopico(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(int)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Nome         string `json:"nome"`
		DisciplinaID int    `json:"disciplina_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	topico, err := h.service.CreateTopico(req.Nome, req.DisciplinaID, userID)
	if err != nil {
		switch {
		case errors.Is(err, disciplina.ErrDisciplinaNotFound), errors.Is(err, ErrUsuarioNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNomeLength):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to create topico")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, topico)
}

func (h *Handler) GetTopicos(w http.ResponseWriter, r *http.Request) {
	page := 1
	pageSize := 10
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			h.respondError(w, http.StatusBadRequest, "Invalid page value")
			return
		}
		page = p
	}
	if pageSizeStr := r.URL.Query().Get("pageSize"); pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps < 1 {
			h.respondError(w, http.StatusBadRequest, "Invalid pageSize value")
			return
		}
		pageSize = ps
	}

	var disciplinaID *int
	if disciplinaIDStr := r.URL.Query().Get("disciplinaId"); disciplinaIDStr != "" {
		id, err := strconv.Atoi(disciplinaIDStr)
		if err != nil || id <= 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid disciplinaId value")
			return
		}
		disciplinaID = &id
	}

	result, err := h.service.GetTopicos(page, pageSize, disciplinaID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve topicos")
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *Handler) DeleteTopico(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid topico id")
		return
	}

	if err := h.service.DeleteTopico(id); err != nil {
		if errors.Is(err, ErrTopicoNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete topico")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]int{"id": id})
}
