package interfaces

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/application"
	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/HouseholdBudget/internal/budget/errors"
)

type PessoaServiceInterface interface {
	CreatePessoa(ctx context.Context, req domain.CreatePessoaRequest) (*domain.Pessoa, error)
	GetPessoas(ctx context.Context, page, pageSize int) (*application.PessoasListResponse, error)
	DeletePessoa(ctx context.Context, id int) (int, error)
}

type PessoaHandler struct {
	service      PessoaServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewPessoaHandler(
	service PessoaServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *PessoaHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &PessoaHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *PessoaHandler) CreatePessoa(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePessoaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pessoa, err := h.service.CreatePessoa(r.Context(), req)
	if err != nil {
		if validationErr, ok := budgetErrors.AsValidationError(err); ok {
			h.respondError(w, http.StatusBadRequest, "Validation errors occurred", validationErr.Messages)
			return
		}
		slog.Error("Error during pessoa creation", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create pessoa")
		return
	}

	h.respondJSON(w, http.StatusCreated, pessoa)
}

func (h *PessoaHandler) GetPessoas(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := parsePagination(w, r, h.respondError)
	if !ok {
		return
	}

	result, err := h.service.GetPessoas(r.Context(), page, pageSize)
	if err != nil {
		if budgetErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Error retrieving pessoas", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve pessoas")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func (h *PessoaHandler) DeletePessoa(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid pessoa id")
		return
	}

	deletedID, err := h.service.DeletePessoa(r.Context(), id)
	if err != nil {
		if budgetErrors.IsNotFoundError(err) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		if budgetErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Error during pessoa deletion", "error", err, "id", id)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete pessoa")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]int{"id": deletedID})
}
