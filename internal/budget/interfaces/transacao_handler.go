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

type TransacaoServiceInterface interface {
	CreateTransacao(ctx context.Context, req domain.CreateTransacaoRequest) (*domain.TransacaoComNomes, error)
	GetTransacoes(ctx context.Context, page, pageSize int, pessoaID *int, tipo string) (*application.TransacoesListResponse, error)
}

type TransacaoHandler struct {
	service      TransacaoServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewTransacaoHandler(
	service TransacaoServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *TransacaoHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &TransacaoHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *TransacaoHandler) CreateTransacao(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTransacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	transacao, err := h.service.CreateTransacao(r.Context(), req)
	if err != nil {
		if validationErr, ok := budgetErrors.AsValidationError(err); ok {
			h.respondError(w, http.StatusBadRequest, "Validation errors occurred", validationErr.Messages)
			return
		}
		if budgetErrors.IsNotFoundError(err) {
			h.respondError(w, http.StatusNotFound, err.Error())
			return
		}
		slog.Error("Error during transaction creation", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, transacao)
}

func (h *TransacaoHandler) GetTransacoes(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := parsePagination(w, r, h.respondError)
	if !ok {
		return
	}

	tipo := r.URL.Query().Get("tipo")
	if tipo != "" && !domain.TipoTransacao(tipo).Valid() {
		h.respondError(w, http.StatusBadRequest, "Invalid transaction type")
		return
	}

	var pessoaID *int
	if pessoaIDStr := r.URL.Query().Get("pessoaId"); pessoaIDStr != "" {
		id, err := strconv.Atoi(pessoaIDStr)
		if err != nil || id <= 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid pessoaId value")
			return
		}
		pessoaID = &id
	}

	result, err := h.service.GetTransacoes(r.Context(), page, pageSize, pessoaID, tipo)
	if err != nil {
		if budgetErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Error retrieving transactions", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// parsePagination reads page and pageSize from the query string, defaulting
// to page 1 of 10 when absent. Values below 1 or non-integers are rejected.
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
