package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/HouseholdBudget/internal/budget/errors"
	"github.com/sebuszqo/HouseholdBudget/internal/budget/infrastructure"
)

func TestCreateCategoria_Success(t *testing.T) {
	repo := &infrastructure.MockCategoriaRepository{}
	service := NewCategoriaService(repo)

	categoria, err := service.CreateCategoria(context.Background(), domain.CreateCategoriaRequest{
		Descricao:  "Groceries",
		Finalidade: "Expense",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, categoria.ID)
	assert.Equal(t, domain.FinalidadeExpense, categoria.Finalidade)
}

func TestCreateCategoria_DuplicateDescricaoCaseInsensitive(t *testing.T) {
	repo := &infrastructure.MockCategoriaRepository{
		Categorias: []domain.Categoria{{ID: 1, Descricao: "Groceries", Finalidade: domain.FinalidadeExpense}},
	}
	service := NewCategoriaService(repo)

	_, err := service.CreateCategoria(context.Background(), domain.CreateCategoriaRequest{
		Descricao:  "GROCERIES",
		Finalidade: "Expense",
	})

	require.Error(t, err)
	assert.True(t, budgetErrors.IsValidationError(err))
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateCategoria_Validation(t *testing.T) {
	service := NewCategoriaService(&infrastructure.MockCategoriaRepository{})

	tests := []struct {
		name string
		req  domain.CreateCategoriaRequest
		want string
	}{
		{"descricao too short", domain.CreateCategoriaRequest{Descricao: "ab", Finalidade: "Both"}, "between 3 and 50"},
		{"missing descricao", domain.CreateCategoriaRequest{Finalidade: "Both"}, "Descricao is required"},
		{"bad finalidade", domain.CreateCategoriaRequest{Descricao: "Taxes", Finalidade: "Mixed"}, "Finalidade must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateCategoria(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, budgetErrors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGetCategorias_EmptyIsNotNil(t *testing.T) {
	service := NewCategoriaService(&infrastructure.MockCategoriaRepository{})

	categorias, err := service.GetCategorias(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, categorias)
	assert.Empty(t, categorias)
}
