package interfaces

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/application"
)

type RelatorioServiceInterface interface {
	RelatorioPessoas(ctx context.Context) (*application.RelatorioPessoasResponse, error)
	RelatorioCategorias(ctx context.Context) (*application.RelatorioCategoriasResponse, error)
}

type RelatorioHandler struct {
	service      RelatorioServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewRelatorioHandler(
	service RelatorioServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *RelatorioHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &RelatorioHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *RelatorioHandler) GetRelatorioPessoas(w http.ResponseWriter, r *http.Request) {
	relatorio, err := h.service.RelatorioPessoas(r.Context())
	if err != nil {
		slog.Error("Error computing per-person report", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to compute report")
		return
	}

	h.respondJSON(w, http.StatusOK, relatorio)
}

func (h *RelatorioHandler) GetRelatorioCategorias(w http.ResponseWriter, r *http.Request) {
	relatorio, err := h.service.RelatorioCategorias(r.Context())
	if err != nil {
		slog.Error("Error computing per-category report", "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to compute report")
		return
	}

	h.respondJSON(w, http.StatusOK, relatorio)
}
