package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/HouseholdBudget/internal/budget/errors"
	"github.com/sebuszqo/HouseholdBudget/internal/budget/infrastructure"
)

func TestCreatePessoa_Success(t *testing.T) {
	repo := &infrastructure.MockPessoaRepository{}
	service := NewPessoaService(repo, &infrastructure.MockTransacaoRepository{})

	pessoa, err := service.CreatePessoa(context.Background(), domain.CreatePessoaRequest{Nome: "Maria", Idade: 28})

	require.NoError(t, err)
	assert.Equal(t, 1, pessoa.ID)
	assert.Equal(t, "Maria", pessoa.Nome)
}

func TestCreatePessoa_Validation(t *testing.T) {
	service := NewPessoaService(&infrastructure.MockPessoaRepository{}, &infrastructure.MockTransacaoRepository{})

	tests := []struct {
		name string
		req  domain.CreatePessoaRequest
		want string
	}{
		{"empty nome", domain.CreatePessoaRequest{Nome: "  ", Idade: 20}, "Nome is required"},
		{"negative idade", domain.CreatePessoaRequest{Nome: "Ana", Idade: -1}, "Idade must be between 0 and 150"},
		{"idade too large", domain.CreatePessoaRequest{Nome: "Ana", Idade: 151}, "Idade must be between 0 and 150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreatePessoa(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, budgetErrors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCreatePessoa_ZeroIdadeAllowed(t *testing.T) {
	service := NewPessoaService(&infrastructure.MockPessoaRepository{}, &infrastructure.MockTransacaoRepository{})

	pessoa, err := service.CreatePessoa(context.Background(), domain.CreatePessoaRequest{Nome: "Bebe", Idade: 0})

	require.NoError(t, err)
	assert.Equal(t, 0, pessoa.Idade)
}

func TestGetPessoas_Pagination(t *testing.T) {
	repo := &infrastructure.MockPessoaRepository{}
	for i := 1; i <= 7; i++ {
		repo.Pessoas = append(repo.Pessoas, domain.Pessoa{ID: i, Nome: "P", Idade: 30})
	}
	service := NewPessoaService(repo, &infrastructure.MockTransacaoRepository{})

	result, err := service.GetPessoas(context.Background(), 3, 3)

	require.NoError(t, err)
	assert.Equal(t, 3, result.MaxPage)
	assert.Equal(t, 7, result.TotalCount)
	assert.Equal(t, 1, result.PageCount)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 7, result.Items[0].ID)
}

func TestGetPessoas_InvalidPagination(t *testing.T) {
	service := NewPessoaService(&infrastructure.MockPessoaRepository{}, &infrastructure.MockTransacaoRepository{})

	_, err := service.GetPessoas(context.Background(), 0, 5)
	assert.True(t, budgetErrors.IsValidationError(err))
}

func TestDeletePessoa_CascadesTransactions(t *testing.T) {
	pessoaRepo := &infrastructure.MockPessoaRepository{
		Pessoas: []domain.Pessoa{{ID: 1, Nome: "Ana", Idade: 35}},
	}
	transacaoRepo := &infrastructure.MockTransacaoRepository{
		Transacoes: []domain.TransacaoComNomes{
			{Transacao: domain.Transacao{ID: 1, PessoaID: 1, Data: time.Now()}},
			{Transacao: domain.Transacao{ID: 2, PessoaID: 1, Data: time.Now()}},
			{Transacao: domain.Transacao{ID: 3, PessoaID: 2, Data: time.Now()}},
		},
	}
	service := NewPessoaService(pessoaRepo, transacaoRepo)

	id, err := service.DeletePessoa(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.Equal(t, []int{1}, pessoaRepo.Deleted)
	assert.Equal(t, 1, transacaoRepo.Committed)
	// Only the unrelated person's transaction survives.
	require.Len(t, transacaoRepo.Transacoes, 1)
	assert.Equal(t, 3, transacaoRepo.Transacoes[0].ID)
}

func TestDeletePessoa_NotFound(t *testing.T) {
	service := NewPessoaService(&infrastructure.MockPessoaRepository{}, &infrastructure.MockTransacaoRepository{})

	_, err := service.DeletePessoa(context.Background(), 9)

	require.Error(t, err)
	assert.True(t, budgetErrors.IsNotFoundError(err))
}

func TestDeletePessoa_RollbackOnCommitFailure(t *testing.T) {
	pessoaRepo := &infrastructure.MockPessoaRepository{
		Pessoas: []domain.Pessoa{{ID: 1, Nome: "Ana", Idade: 35}},
	}
	transacaoRepo := &infrastructure.MockTransacaoRepository{CommitErr: assert.AnError}
	service := NewPessoaService(pessoaRepo, transacaoRepo)

	_, err := service.DeletePessoa(context.Background(), 1)

	require.Error(t, err)
	assert.Equal(t, 1, transacaoRepo.RolledBack)
}
