package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/application"
	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/HouseholdBudget/internal/budget/errors"
)

func TestCreatePessoa_Created(t *testing.T) {
	mockService := &MockPessoaService{pessoa: &domain.Pessoa{ID: 1, Nome: "Maria", Idade: 28}}
	handler := NewPessoaHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/pessoas", strings.NewReader(`{"Nome":"Maria","Idade":28}`))
	w := httptest.NewRecorder()
	handler.CreatePessoa(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var pessoa domain.Pessoa
	require.NoError(t, json.NewDecoder(res.Body).Decode(&pessoa))
	assert.Equal(t, 1, pessoa.ID)
	assert.Equal(t, "Maria", pessoa.Nome)
}

func TestCreatePessoa_ValidationError(t *testing.T) {
	mockService := &MockPessoaService{err: budgetErrors.NewValidationError("Nome is required")}
	handler := NewPessoaHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/pessoas", strings.NewReader(`{"Idade":28}`))
	w := httptest.NewRecorder()
	handler.CreatePessoa(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Validation errors occurred", response["message"])
}

func TestGetPessoas_OK(t *testing.T) {
	mockService := &MockPessoaService{
		list: &application.PessoasListResponse{
			MaxPage:    1,
			TotalCount: 2,
			PageCount:  2,
			Items: []domain.Pessoa{
				{ID: 1, Nome: "Ana", Idade: 35},
				{ID: 2, Nome: "Pedro", Idade: 15},
			},
		},
	}
	handler := NewPessoaHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/pessoas?page=1&pageSize=10", nil)
	w := httptest.NewRecorder()
	handler.GetPessoas(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, float64(2), response["totalCount"])
	assert.Len(t, response["items"], 2)
}

func TestGetPessoas_BadPagination(t *testing.T) {
	handler := NewPessoaHandler(&MockPessoaService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/pessoas?page=-1", nil)
	w := httptest.NewRecorder()
	handler.GetPessoas(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestDeletePessoa_OK(t *testing.T) {
	mockService := &MockPessoaService{}
	handler := NewPessoaHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodDelete, "/api/pessoas/3", nil)
	req.SetPathValue("id", "3")
	w := httptest.NewRecorder()
	handler.DeletePessoa(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 3, mockService.deletedID)

	var response map[string]int
	require.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, 3, response["id"])
}

func TestDeletePessoa_NotFound(t *testing.T) {
	mockService := &MockPessoaService{err: budgetErrors.NewNotFoundError("pessoa", 9)}
	handler := NewPessoaHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodDelete, "/api/pessoas/9", nil)
	req.SetPathValue("id", "9")
	w := httptest.NewRecorder()
	handler.DeletePessoa(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestDeletePessoa_InvalidID(t *testing.T) {
	handler := NewPessoaHandler(&MockPessoaService{}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodDelete, "/api/pessoas/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()
	handler.DeletePessoa(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}
