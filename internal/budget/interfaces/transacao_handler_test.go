package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/application"
	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/HouseholdBudget/internal/budget/errors"
)

func TestCreateTransacao_Created(t *testing.T) {
	mockService := &MockTransacaoService{
		transacao: &domain.TransacaoComNomes{
			Transacao: domain.Transacao{
				ID:          1,
				Descricao:   "Weekly groceries",
				Valor:       domain.Valor(15075),
				Tipo:        domain.TipoExpense,
				Data:        time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
				CategoriaID: 1,
				PessoaID:    1,
			},
			PessoaNome:         "Ana",
			CategoriaDescricao: "Groceries",
		},
	}
	handler := NewTransacaoHandler(mockService, respondJSON, respondError)

	body := `{"Descricao":"Weekly groceries","Valor":150.75,"Tipo":"Expense","CategoriaId":1,"PessoaId":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/transacoes", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.CreateTransacao(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Weekly groceries", response["Descricao"])
	assert.Equal(t, 150.75, response["Valor"])
	assert.Equal(t, "Ana", response["PessoaNome"])
}

func TestCreateTransacao_InvalidBody(t *testing.T) {
	handler := NewTransacaoHandler(&MockTransacaoService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/transacoes", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	handler.CreateTransacao(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestCreateTransacao_ValidationErrorsListed(t *testing.T) {
	mockService := &MockTransacaoService{
		err: budgetErrors.NewValidationError("Descricao is required", "Tipo must be 'Expense' or 'Income'"),
	}
	handler := NewTransacaoHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/transacoes", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.CreateTransacao(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "error", response["status"])
	assert.Len(t, response["errors"], 2)
}

func TestCreateTransacao_PessoaNotFound(t *testing.T) {
	mockService := &MockTransacaoService{err: budgetErrors.NewNotFoundError("pessoa", 99)}
	handler := NewTransacaoHandler(mockService, respondJSON, respondError)

	body := `{"Descricao":"abc","Valor":"10","Tipo":"Expense","CategoriaId":1,"PessoaId":99}`
	req := httptest.NewRequest(http.MethodPost, "/api/transacoes", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.CreateTransacao(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "pessoa with id 99 not found", response["message"])
}

func TestGetTransacoes_ParsesQueryParameters(t *testing.T) {
	mockService := &MockTransacaoService{
		list: &application.TransacoesListResponse{
			MaxPage:    3,
			TotalCount: 25,
			PageCount:  10,
			Transacoes: []domain.TransacaoComNomes{},
		},
	}
	handler := NewTransacaoHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/transacoes?page=2&pageSize=10&pessoaId=7&tipo=Income", nil)
	w := httptest.NewRecorder()
	handler.GetTransacoes(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 2, mockService.lastPage)
	assert.Equal(t, 10, mockService.lastPageSize)
	require.NotNil(t, mockService.lastPessoaID)
	assert.Equal(t, 7, *mockService.lastPessoaID)
	assert.Equal(t, "Income", mockService.lastTipo)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, float64(3), response["maxPage"])
	assert.Equal(t, float64(25), response["totalCount"])
}

func TestGetTransacoes_DefaultsPagination(t *testing.T) {
	mockService := &MockTransacaoService{list: &application.TransacoesListResponse{Transacoes: []domain.TransacaoComNomes{}}}
	handler := NewTransacaoHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/transacoes", nil)
	w := httptest.NewRecorder()
	handler.GetTransacoes(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, 1, mockService.lastPage)
	assert.Equal(t, 10, mockService.lastPageSize)
	assert.Nil(t, mockService.lastPessoaID)
}

func TestGetTransacoes_BadQueryParameters(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"zero page", "?page=0"},
		{"non-integer page", "?page=abc"},
		{"zero pageSize", "?pageSize=0"},
		{"negative pageSize", "?pageSize=-5"},
		{"unknown tipo", "?tipo=Transfer"},
		{"non-integer pessoaId", "?pessoaId=xyz"},
		{"non-positive pessoaId", "?pessoaId=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransacaoHandler(&MockTransacaoService{}, respondJSON, respondError)
			req := httptest.NewRequest(http.MethodGet, "/api/transacoes"+tt.query, nil)
			w := httptest.NewRecorder()
			handler.GetTransacoes(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
		})
	}
}

func TestGetTransacoes_ServiceFailure(t *testing.T) {
	handler := NewTransacaoHandler(&MockTransacaoService{shouldFail: true}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/transacoes", nil)
	w := httptest.NewRecorder()
	handler.GetTransacoes(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
}
