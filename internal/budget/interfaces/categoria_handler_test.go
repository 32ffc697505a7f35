package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/HouseholdBudget/internal/budget/errors"
)

func TestCreateCategoria_Created(t *testing.T) {
	mockService := &MockCategoriaService{
		categoria: &domain.Categoria{ID: 1, Descricao: "Groceries", Finalidade: domain.FinalidadeExpense},
	}
	handler := NewCategoriaHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/categorias", strings.NewReader(`{"Descricao":"Groceries","Finalidade":"Expense"}`))
	w := httptest.NewRecorder()
	handler.CreateCategoria(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var categoria domain.Categoria
	require.NoError(t, json.NewDecoder(res.Body).Decode(&categoria))
	assert.Equal(t, "Groceries", categoria.Descricao)
}

func TestCreateCategoria_Duplicate(t *testing.T) {
	mockService := &MockCategoriaService{
		err: budgetErrors.NewValidationError("a categoria with this Descricao already exists"),
	}
	handler := NewCategoriaHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodPost, "/api/categorias", strings.NewReader(`{"Descricao":"groceries","Finalidade":"Expense"}`))
	w := httptest.NewRecorder()
	handler.CreateCategoria(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestGetCategorias_OK(t *testing.T) {
	mockService := &MockCategoriaService{
		categorias: []domain.Categoria{
			{ID: 1, Descricao: "Groceries", Finalidade: domain.FinalidadeExpense},
			{ID: 2, Descricao: "Salary", Finalidade: domain.FinalidadeIncome},
		},
	}
	handler := NewCategoriaHandler(mockService, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/categorias", nil)
	w := httptest.NewRecorder()
	handler.GetCategorias(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var categorias []domain.Categoria
	require.NoError(t, json.NewDecoder(res.Body).Decode(&categorias))
	assert.Len(t, categorias, 2)
}

func TestGetCategorias_ServiceFailure(t *testing.T) {
	handler := NewCategoriaHandler(&MockCategoriaService{shouldFail: true}, respondJSON, respondError)

	req := httptest.NewRequest(http.MethodGet, "/api/categorias", nil)
	w := httptest.NewRecorder()
	handler.GetCategorias(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)
}
