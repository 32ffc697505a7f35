package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/HouseholdBudget/internal/budget/errors"
)

type TransacaoService struct {
	repo          domain.TransacaoRepository
	pessoaRepo    domain.PessoaRepository
	categoriaRepo domain.CategoriaRepository
	now           func() time.Time
}

func NewTransacaoService(repo domain.TransacaoRepository, pessoaRepo domain.PessoaRepository, categoriaRepo domain.CategoriaRepository) *TransacaoService {
	return &TransacaoService{
		repo:          repo,
		pessoaRepo:    pessoaRepo,
		categoriaRepo: categoriaRepo,
		now:           time.Now,
	}
}

// TransacoesListResponse is the paginated wire shape for transaction listings.
type TransacoesListResponse struct {
	MaxPage    int                        `json:"maxPage"`
	TotalCount int                        `json:"totalCount"`
	PageCount  int                        `json:"pageCount"`
	Transacoes []domain.TransacaoComNomes `json:"transacoes"`
}

// CreateTransacao gatekeeps transaction creation through an ordered rule
// chain, short-circuiting at the first failing stage: structural fields,
// person existence, category existence, the minor restriction, category/type
// compatibility and a final positivity check. Cheap checks run before the
// referential lookups.
func (s *TransacaoService) CreateTransacao(ctx context.Context, req domain.CreateTransacaoRequest) (*domain.TransacaoComNomes, error) {
	slog.Info("Validating transaction creation request",
		"descricao", req.Descricao, "tipo", req.Tipo, "pessoaId", req.PessoaID, "categoriaId", req.CategoriaID)

	valor, messages := req.Validate()
	if len(messages) > 0 {
		slog.Warn("Transaction creation request failed structural validation", "violations", len(messages))
		return nil, budgetErrors.NewValidationError(messages...)
	}

	pessoa, err := s.pessoaRepo.GetByID(ctx, req.PessoaID)
	if err != nil {
		return nil, err
	}
	if pessoa == nil {
		slog.Warn("Pessoa not found for transaction", "pessoaId", req.PessoaID)
		return nil, budgetErrors.NewNotFoundError("pessoa", req.PessoaID)
	}

	categoria, err := s.categoriaRepo.GetByID(ctx, req.CategoriaID)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		slog.Warn("Categoria not found for transaction", "categoriaId", req.CategoriaID)
		return nil, budgetErrors.NewNotFoundError("categoria", req.CategoriaID)
	}

	tipo := domain.TipoTransacao(req.Tipo)

	if pessoa.Menor() && tipo != domain.TipoExpense {
		slog.Warn("Minor attempted to record a non-expense transaction", "pessoaId", pessoa.ID, "idade", pessoa.Idade)
		return nil, budgetErrors.NewValidationError("minors may only record expenses")
	}

	if !categoria.Finalidade.Permits(tipo) {
		slog.Warn("Categoria incompatible with transaction type",
			"categoria", categoria.Descricao, "finalidade", categoria.Finalidade, "tipo", tipo)
		return nil, budgetErrors.NewValidationError(fmt.Sprintf(
			"categoria '%s' (%s) cannot be used for %s transactions",
			categoria.Descricao, categoria.Finalidade, tipo))
	}

	// Re-checked after the structural stage through the same predicate.
	if !valor.Positive() {
		return nil, budgetErrors.NewValidationError("Valor must be greater than zero")
	}

	transacao := domain.Transacao{
		Descricao:   req.Descricao,
		Valor:       valor,
		Tipo:        tipo,
		Data:        s.now().UTC(),
		CategoriaID: categoria.ID,
		PessoaID:    pessoa.ID,
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, tx, &transacao); err != nil {
		s.repo.Rollback(tx)
		return nil, err
	}
	if err := s.repo.Commit(tx); err != nil {
		s.repo.Rollback(tx)
		return nil, err
	}

	slog.Info("Transaction created", "id", transacao.ID, "pessoaId", transacao.PessoaID)

	return &domain.TransacaoComNomes{
		Transacao:          transacao,
		PessoaNome:         pessoa.Nome,
		CategoriaDescricao: categoria.Descricao,
	}, nil
}

// GetTransacoes returns one page of transactions, newest first, optionally
// filtered by person and type. Pagination parameters below 1 are rejected
// rather than clamped.
func (s *TransacaoService) GetTransacoes(ctx context.Context, page, pageSize int, pessoaID *int, tipo string) (*TransacoesListResponse, error) {
	if page < 1 || pageSize < 1 {
		return nil, budgetErrors.NewValidationError("invalid pagination parameters")
	}

	transacoes, pageCount, totalCount, err := s.repo.GetTransacoesAndCount(ctx, page, pageSize, pessoaID, tipo)
	if err != nil {
		return nil, err
	}
	if transacoes == nil {
		transacoes = []domain.TransacaoComNomes{}
	}

	slog.Info("Transactions retrieved", "page", page, "pageSize", pageSize, "count", pageCount, "totalCount", totalCount)

	return &TransacoesListResponse{
		MaxPage:    maxPage(totalCount, pageSize),
		TotalCount: totalCount,
		PageCount:  pageCount,
		Transacoes: transacoes,
	}, nil
}

func maxPage(totalCount, pageSize int) int {
	pages := totalCount / pageSize
	if totalCount%pageSize != 0 {
		pages++
	}
	return pages
}
