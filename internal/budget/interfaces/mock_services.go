package interfaces

import (
	"context"
	"errors"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/application"
	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
)

var errMockService = errors.New("service error")

type MockTransacaoService struct {
	transacao  *domain.TransacaoComNomes
	list       *application.TransacoesListResponse
	err        error
	shouldFail bool

	lastPage     int
	lastPageSize int
	lastPessoaID *int
	lastTipo     string
}

func (m *MockTransacaoService) CreateTransacao(_ context.Context, _ domain.CreateTransacaoRequest) (*domain.TransacaoComNomes, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.shouldFail {
		return nil, errMockService
	}
	return m.transacao, nil
}

func (m *MockTransacaoService) GetTransacoes(_ context.Context, page, pageSize int, pessoaID *int, tipo string) (*application.TransacoesListResponse, error) {
	m.lastPage = page
	m.lastPageSize = pageSize
	m.lastPessoaID = pessoaID
	m.lastTipo = tipo
	if m.err != nil {
		return nil, m.err
	}
	if m.shouldFail {
		return nil, errMockService
	}
	return m.list, nil
}

type MockPessoaService struct {
	pessoa     *domain.Pessoa
	list       *application.PessoasListResponse
	err        error
	shouldFail bool
	deletedID  int
}

func (m *MockPessoaService) CreatePessoa(_ context.Context, _ domain.CreatePessoaRequest) (*domain.Pessoa, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.shouldFail {
		return nil, errMockService
	}
	return m.pessoa, nil
}

func (m *MockPessoaService) GetPessoas(_ context.Context, page, pageSize int) (*application.PessoasListResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.shouldFail {
		return nil, errMockService
	}
	return m.list, nil
}

func (m *MockPessoaService) DeletePessoa(_ context.Context, id int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.shouldFail {
		return 0, errMockService
	}
	m.deletedID = id
	return id, nil
}

type MockCategoriaService struct {
	categoria  *domain.Categoria
	categorias []domain.Categoria
	err        error
	shouldFail bool
}

func (m *MockCategoriaService) CreateCategoria(_ context.Context, _ domain.CreateCategoriaRequest) (*domain.Categoria, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.shouldFail {
		return nil, errMockService
	}
	return m.categoria, nil
}

func (m *MockCategoriaService) GetCategorias(_ context.Context) ([]domain.Categoria, error) {
	if m.shouldFail {
		return nil, errMockService
	}
	return m.categorias, nil
}

type MockRelatorioService struct {
	pessoas    *application.RelatorioPessoasResponse
	categorias *application.RelatorioCategoriasResponse
	shouldFail bool
}

func (m *MockRelatorioService) RelatorioPessoas(_ context.Context) (*application.RelatorioPessoasResponse, error) {
	if m.shouldFail {
		return nil, errMockService
	}
	return m.pessoas, nil
}

func (m *MockRelatorioService) RelatorioCategorias(_ context.Context) (*application.RelatorioCategoriasResponse, error) {
	if m.shouldFail {
		return nil, errMockService
	}
	return m.categorias, nil
}
