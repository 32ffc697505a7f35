package disciplina

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sebuszqo/HouseholdBudget/internal/academics/curso"
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

func (h *Handler) CreateDisciplina(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nome             string  `json:"nome"`
		Professor        string  `json:"professor"`
		CursoID          int     `json:"curso_id"`
		QuantidadeAlunos *int    `json:"quantidade_alunos"`
		Codigo           *string `json:"codigo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	disciplina, err := h.service.CreateDisciplina(req.Nome, req.Professor, req.CursoID, req.QuantidadeAlunos, req.Codigo)
	if err != nil {
		switch {
		case errors.Is(err, curso.ErrCursoNotFound):
			h.respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNomeLength), errors.Is(err, ErrProfessorLength), errors.Is(err, ErrCodigoLength):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.respondError(w, http.StatusInternalServerError, "Failed to create disciplina")
		}
		return
	}

	h.respondJSON(w, http.StatusCreated, disciplina)
}

func (h *Handler) GetDisciplinas(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := parsePagination(w, r, h.respondError)
	if !ok {
		return
	}

	result, err := h.service.GetDisciplinas(page, pageSize)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve disciplinas")
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *Handler) GetDisciplina(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid disciplina id")
		return
	}

	disciplina, err := h.service.GetDisciplina(id)
	if err != nil {
		if errors.Is(err, ErrDisciplinaNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve disciplina")
		return
	}
	h.respondJSON(w, http.StatusOK, disciplina)
}

func (h *Handler) DeleteDisciplina(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid disciplina id")
		return
	}

	if err := h.service.DeleteDisciplina(id); err != nil {
		if errors.Is(err, ErrDisciplinaNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete disciplina")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]int{"id": id})
}

func parsePagination(w http.ResponseWriter, r *http.Request, respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)) (int, int, bool) {
	page := 1
	pageSize := 10

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			respondError(w, http.StatusBadRequest, "Invalid page value")
			return 0, 0, false
		}
		page = p
	}
	if pageSizeStr := r.URL.Query().Get("pageSize"); pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps < 1 {
			respondError(w, http.StatusBadRequest, "Invalid pageSize value")
			return 0, 0, false
		}
		pageSize = ps
	}

	return page, pageSize, true
}
