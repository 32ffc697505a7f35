package infrastructure

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
)

// In-memory repository doubles for service tests. They honor the same
// ordering and filter semantics as the SQL implementations.

type MockPessoaRepository struct {
	Pessoas []domain.Pessoa
	Err     error
	Deleted []int
	nextID  int
}

func (m *MockPessoaRepository) Create(_ context.Context, pessoa *domain.Pessoa) error {
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	pessoa.ID = m.nextID
	m.Pessoas = append(m.Pessoas, *pessoa)
	return nil
}

func (m *MockPessoaRepository) GetByID(_ context.Context, id int) (*domain.Pessoa, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Pessoas {
		if m.Pessoas[i].ID == id {
			pessoa := m.Pessoas[i]
			return &pessoa, nil
		}
	}
	return nil, nil
}

func (m *MockPessoaRepository) GetPessoasAndCount(_ context.Context, page, pageSize int) ([]domain.Pessoa, int, int, error) {
	if m.Err != nil {
		return nil, 0, 0, m.Err
	}
	start := (page - 1) * pageSize
	if start >= len(m.Pessoas) {
		return nil, 0, len(m.Pessoas), nil
	}
	end := start + pageSize
	if end > len(m.Pessoas) {
		end = len(m.Pessoas)
	}
	pagePessoas := m.Pessoas[start:end]
	return pagePessoas, len(pagePessoas), len(m.Pessoas), nil
}

func (m *MockPessoaRepository) Delete(_ context.Context, _ *sql.Tx, id int) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Pessoas {
		if m.Pessoas[i].ID == id {
			m.Pessoas = append(m.Pessoas[:i], m.Pessoas[i+1:]...)
			break
		}
	}
	m.Deleted = append(m.Deleted, id)
	return nil
}

type MockCategoriaRepository struct {
	Categorias []domain.Categoria
	Err        error
	nextID     int
}

func (m *MockCategoriaRepository) Create(_ context.Context, categoria *domain.Categoria) error {
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	categoria.ID = m.nextID
	m.Categorias = append(m.Categorias, *categoria)
	return nil
}

func (m *MockCategoriaRepository) GetByID(_ context.Context, id int) (*domain.Categoria, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Categorias {
		if m.Categorias[i].ID == id {
			categoria := m.Categorias[i]
			return &categoria, nil
		}
	}
	return nil, nil
}

func (m *MockCategoriaRepository) GetAll(_ context.Context) ([]domain.Categoria, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categorias, nil
}

func (m *MockCategoriaRepository) ExistsByDescricao(_ context.Context, descricao string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for i := range m.Categorias {
		if strings.EqualFold(m.Categorias[i].Descricao, descricao) {
			return true, nil
		}
	}
	return false, nil
}

type MockTransacaoRepository struct {
	Transacoes []domain.TransacaoComNomes
	Err        error
	CommitErr  error
	Committed  int
	RolledBack int
	nextID     int
}

func (m *MockTransacaoRepository) Begin(_ context.Context) (*sql.Tx, error) {
	return nil, m.Err
}

func (m *MockTransacaoRepository) Commit(_ *sql.Tx) error {
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.Committed++
	return nil
}

func (m *MockTransacaoRepository) Rollback(_ *sql.Tx) {
	m.RolledBack++
}

func (m *MockTransacaoRepository) Create(_ context.Context, _ *sql.Tx, transacao *domain.Transacao) error {
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	transacao.ID = m.nextID
	m.Transacoes = append(m.Transacoes, domain.TransacaoComNomes{Transacao: *transacao})
	return nil
}

func (m *MockTransacaoRepository) DeleteByID(_ context.Context, _ *sql.Tx, id int) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Transacoes {
		if m.Transacoes[i].ID == id {
			m.Transacoes = append(m.Transacoes[:i], m.Transacoes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MockTransacaoRepository) DeleteAllForPessoa(_ context.Context, _ *sql.Tx, pessoaID int) error {
	if m.Err != nil {
		return m.Err
	}
	kept := m.Transacoes[:0]
	for _, t := range m.Transacoes {
		if t.PessoaID != pessoaID {
			kept = append(kept, t)
		}
	}
	m.Transacoes = kept
	return nil
}

func (m *MockTransacaoRepository) GetTransacoesAndCount(_ context.Context, page, pageSize int, pessoaID *int, tipo string) ([]domain.TransacaoComNomes, int, int, error) {
	if m.Err != nil {
		return nil, 0, 0, m.Err
	}

	var filtered []domain.TransacaoComNomes
	for _, t := range m.Transacoes {
		if pessoaID != nil && t.PessoaID != *pessoaID {
			continue
		}
		if domain.TipoTransacao(tipo).Valid() && t.Tipo != domain.TipoTransacao(tipo) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].Data.Equal(filtered[j].Data) {
			return filtered[i].Data.After(filtered[j].Data)
		}
		return filtered[i].ID > filtered[j].ID
	})

	totalCount := len(filtered)
	start := (page - 1) * pageSize
	if start >= totalCount {
		return nil, 0, totalCount, nil
	}
	end := start + pageSize
	if end > totalCount {
		end = totalCount
	}
	pageItems := filtered[start:end]
	return pageItems, len(pageItems), totalCount, nil
}

type MockRelatorioRepository struct {
	PessoaTotais    []domain.PessoaTotal
	CategoriaTotais []domain.CategoriaTotal
	Geral           domain.TotalGeral
	Err             error
}

func (m *MockRelatorioRepository) TotaisPorPessoa(_ context.Context) ([]domain.PessoaTotal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PessoaTotais, nil
}

func (m *MockRelatorioRepository) TotaisPorCategoria(_ context.Context) ([]domain.CategoriaTotal, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.CategoriaTotais, nil
}

func (m *MockRelatorioRepository) TotaisGerais(_ context.Context) (domain.TotalGeral, error) {
	if m.Err != nil {
		return domain.TotalGeral{}, m.Err
	}
	return m.Geral, nil
}
