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

func newTransacaoFixture() (*TransacaoService, *infrastructure.MockTransacaoRepository, *infrastructure.MockPessoaRepository, *infrastructure.MockCategoriaRepository) {
	transacaoRepo := &infrastructure.MockTransacaoRepository{}
	pessoaRepo := &infrastructure.MockPessoaRepository{
		Pessoas: []domain.Pessoa{
			{ID: 1, Nome: "Ana", Idade: 35},
			{ID: 2, Nome: "Pedro", Idade: 15},
		},
	}
	categoriaRepo := &infrastructure.MockCategoriaRepository{
		Categorias: []domain.Categoria{
			{ID: 1, Descricao: "Groceries", Finalidade: domain.FinalidadeExpense},
			{ID: 2, Descricao: "Salary", Finalidade: domain.FinalidadeIncome},
			{ID: 3, Descricao: "Transfers", Finalidade: domain.FinalidadeBoth},
		},
	}
	service := NewTransacaoService(transacaoRepo, pessoaRepo, categoriaRepo)
	return service, transacaoRepo, pessoaRepo, categoriaRepo
}

func validCreateRequest() domain.CreateTransacaoRequest {
	return domain.CreateTransacaoRequest{
		Descricao:   "Weekly groceries",
		Valor:       "150.75",
		Tipo:        "Expense",
		CategoriaID: 1,
		PessoaID:    1,
	}
}

func TestCreateTransacao_Success(t *testing.T) {
	service, transacaoRepo, _, _ := newTransacaoFixture()
	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	result, err := service.CreateTransacao(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, 1, result.ID)
	assert.Equal(t, domain.Valor(15075), result.Valor)
	assert.Equal(t, domain.TipoExpense, result.Tipo)
	assert.Equal(t, fixed, result.Data)
	assert.Equal(t, "Ana", result.PessoaNome)
	assert.Equal(t, "Groceries", result.CategoriaDescricao)
	assert.Equal(t, 1, transacaoRepo.Committed)
	assert.Equal(t, 0, transacaoRepo.RolledBack)
}

func TestCreateTransacao_CollectsAllStructuralViolations(t *testing.T) {
	service, _, _, _ := newTransacaoFixture()

	req := domain.CreateTransacaoRequest{
		Descricao:   "ab",
		Valor:       "-5",
		Tipo:        "Transfer",
		CategoriaID: 0,
		PessoaID:    -1,
	}
	_, err := service.CreateTransacao(context.Background(), req)

	require.Error(t, err)
	var validationErr *budgetErrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Messages, 5)
}

func TestCreateTransacao_RejectsThreeDecimalPlaces(t *testing.T) {
	service, transacaoRepo, _, _ := newTransacaoFixture()

	req := validCreateRequest()
	req.Valor = "10.123"
	_, err := service.CreateTransacao(context.Background(), req)

	require.Error(t, err)
	assert.True(t, budgetErrors.IsValidationError(err))
	assert.Equal(t, 0, transacaoRepo.Committed)
}

func TestCreateTransacao_RejectsZeroAmount(t *testing.T) {
	service, _, _, _ := newTransacaoFixture()

	req := validCreateRequest()
	req.Valor = "0.00"
	_, err := service.CreateTransacao(context.Background(), req)

	require.Error(t, err)
	assert.True(t, budgetErrors.IsValidationError(err))
}

func TestCreateTransacao_PessoaNotFound(t *testing.T) {
	service, _, _, _ := newTransacaoFixture()

	req := validCreateRequest()
	req.PessoaID = 99
	_, err := service.CreateTransacao(context.Background(), req)

	require.Error(t, err)
	assert.True(t, budgetErrors.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "pessoa with id 99 not found")
}

func TestCreateTransacao_CategoriaNotFound(t *testing.T) {
	service, _, _, _ := newTransacaoFixture()

	req := validCreateRequest()
	req.CategoriaID = 42
	_, err := service.CreateTransacao(context.Background(), req)

	require.Error(t, err)
	assert.True(t, budgetErrors.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "categoria with id 42 not found")
}

func TestCreateTransacao_MinorCannotRecordIncome(t *testing.T) {
	service, transacaoRepo, _, _ := newTransacaoFixture()

	req := validCreateRequest()
	req.PessoaID = 2
	req.Tipo = "Income"
	req.CategoriaID = 2
	_, err := service.CreateTransacao(context.Background(), req)

	require.Error(t, err)
	assert.True(t, budgetErrors.IsValidationError(err))
	assert.Contains(t, err.Error(), "minors may only record expenses")
	assert.Equal(t, 0, transacaoRepo.Committed)
}

func TestCreateTransacao_MinorCanRecordExpense(t *testing.T) {
	service, _, _, _ := newTransacaoFixture()

	req := validCreateRequest()
	req.PessoaID = 2
	result, err := service.CreateTransacao(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Pedro", result.PessoaNome)
}

func TestCreateTransacao_CategoriaIncompatibleWithTipo(t *testing.T) {
	service, _, _, _ := newTransacaoFixture()

	req := validCreateRequest()
	req.Tipo = "Income"
	req.CategoriaID = 1
	_, err := service.CreateTransacao(context.Background(), req)

	require.Error(t, err)
	assert.True(t, budgetErrors.IsValidationError(err))
	assert.Contains(t, err.Error(), "cannot be used for Income transactions")
}

func TestCreateTransacao_BothCategoriaAcceptsEitherTipo(t *testing.T) {
	service, _, _, _ := newTransacaoFixture()

	for _, tipo := range []string{"Expense", "Income"} {
		req := validCreateRequest()
		req.Tipo = tipo
		req.CategoriaID = 3
		_, err := service.CreateTransacao(context.Background(), req)
		require.NoError(t, err, "tipo %s", tipo)
	}
}

func TestCreateTransacao_MinorCheckedBeforeCompatibility(t *testing.T) {
	service, _, _, _ := newTransacaoFixture()

	// Both rules are violated; the minor restriction fires first.
	req := validCreateRequest()
	req.PessoaID = 2
	req.Tipo = "Income"
	req.CategoriaID = 1
	_, err := service.CreateTransacao(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "minors may only record expenses")
}

func TestCreateTransacao_RollbackOnCommitFailure(t *testing.T) {
	service, transacaoRepo, _, _ := newTransacaoFixture()
	transacaoRepo.CommitErr = assert.AnError

	_, err := service.CreateTransacao(context.Background(), validCreateRequest())

	require.Error(t, err)
	assert.Equal(t, 1, transacaoRepo.RolledBack)
}

func TestGetTransacoes_Pagination(t *testing.T) {
	service, transacaoRepo, _, _ := newTransacaoFixture()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 5; i++ {
		transacaoRepo.Transacoes = append(transacaoRepo.Transacoes, domain.TransacaoComNomes{
			Transacao: domain.Transacao{
				ID:    i,
				Valor: domain.Valor(i * 100),
				Tipo:  domain.TipoExpense,
				Data:  base.Add(time.Duration(i) * time.Hour),
			},
		})
	}

	result, err := service.GetTransacoes(context.Background(), 2, 2, nil, "")

	require.NoError(t, err)
	assert.Equal(t, 3, result.MaxPage)
	assert.Equal(t, 5, result.TotalCount)
	assert.Equal(t, 2, result.PageCount)
	require.Len(t, result.Transacoes, 2)
	// Newest first, so page 2 of size 2 holds IDs 3 and 2.
	assert.Equal(t, 3, result.Transacoes[0].ID)
	assert.Equal(t, 2, result.Transacoes[1].ID)
}

func TestGetTransacoes_FilterByPessoaAndTipo(t *testing.T) {
	service, transacaoRepo, _, _ := newTransacaoFixture()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	transacaoRepo.Transacoes = []domain.TransacaoComNomes{
		{Transacao: domain.Transacao{ID: 1, PessoaID: 1, Tipo: domain.TipoExpense, Data: base}},
		{Transacao: domain.Transacao{ID: 2, PessoaID: 1, Tipo: domain.TipoIncome, Data: base}},
		{Transacao: domain.Transacao{ID: 3, PessoaID: 2, Tipo: domain.TipoExpense, Data: base}},
	}

	pessoaID := 1
	result, err := service.GetTransacoes(context.Background(), 1, 10, &pessoaID, "Expense")

	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	require.Len(t, result.Transacoes, 1)
	assert.Equal(t, 1, result.Transacoes[0].ID)
}

func TestGetTransacoes_InvalidPagination(t *testing.T) {
	service, _, _, _ := newTransacaoFixture()

	_, err := service.GetTransacoes(context.Background(), 0, 10, nil, "")
	assert.True(t, budgetErrors.IsValidationError(err))

	_, err = service.GetTransacoes(context.Background(), 1, 0, nil, "")
	assert.True(t, budgetErrors.IsValidationError(err))
}

func TestGetTransacoes_EmptyPageBeyondEnd(t *testing.T) {
	service, transacaoRepo, _, _ := newTransacaoFixture()
	transacaoRepo.Transacoes = []domain.TransacaoComNomes{
		{Transacao: domain.Transacao{ID: 1, Tipo: domain.TipoExpense, Data: time.Now()}},
	}

	result, err := service.GetTransacoes(context.Background(), 5, 10, nil, "")

	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, 0, result.PageCount)
	assert.NotNil(t, result.Transacoes)
	assert.Empty(t, result.Transacoes)
}
