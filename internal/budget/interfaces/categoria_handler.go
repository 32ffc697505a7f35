package interfaces

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/HouseholdBudget/internal/budget/errors"
)

type CategoriaServiceInterface interface {
	CreateCategoria(ctx context.Context, req domain.CreateCategoriaRequest) (*domain.Categoria, error)
	GetCategorias(ctx context.Context) ([]domain.Categoria, error)
}

type CategoriaHandler struct {
	service      CategoriaServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewCategoriaHandler(
	service CategoriaServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *CategoriaHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &CategoriaHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *CategoriaHandler) CreateCategoria(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCategoriaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	categoria, err := h.service.CreateCategoria(r.Context(), req)
	if err != nil {
		if validationErr, ok := budgetErrors.AsValidationError(err); ok {
			h.respondError(w, http.StatusBadRequest, "Validation errors occurred", validationErr.Messages)
			return
		}
		slog.Error("Error during categoria creation", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create categoria")
		return
	}

	h.respondJSON(w, http.StatusCreated, categoria)
}

func (h *CategoriaHandler) GetCategorias(w http.ResponseWriter, r *http.Request) {
	categorias, err := h.service.GetCategorias(r.Context())
	if err != nil {
		slog.Error("Error retrieving categorias", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve categorias")
		return
	}

	h.respondJSON(w, http.StatusOK, categorias)
}
