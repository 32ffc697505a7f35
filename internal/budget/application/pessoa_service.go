package application

import (
	"context"
	"log/slog"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/HouseholdBudget/internal/budget/errors"
)

type PessoaService struct {
	repo          domain.PessoaRepository
	transacaoRepo domain.TransacaoRepository
}

func NewPessoaService(repo domain.PessoaRepository, transacaoRepo domain.TransacaoRepository) *PessoaService {
	return &PessoaService{repo: repo, transacaoRepo: transacaoRepo}
}

type PessoasListResponse struct {
	MaxPage    int             `json:"maxPage"`
	TotalCount int             `json:"totalCount"`
	PageCount  int             `json:"pageCount"`
	Items      []domain.Pessoa `json:"items"`
}

func (s *PessoaService) CreatePessoa(ctx context.Context, req domain.CreatePessoaRequest) (*domain.Pessoa, error) {
	slog.Info("Validating pessoa creation request", "nome", req.Nome, "idade", req.Idade)

	if messages := req.Validate(); len(messages) > 0 {
		return nil, budgetErrors.NewValidationError(messages...)
	}

	pessoa := domain.Pessoa{Nome: req.Nome, Idade: req.Idade}
	if err := s.repo.Create(ctx, &pessoa); err != nil {
		return nil, err
	}

	slog.Info("Pessoa created", "id", pessoa.ID)
	return &pessoa, nil
}

func (s *PessoaService) GetPessoas(ctx context.Context, page, pageSize int) (*PessoasListResponse, error) {
	if page < 1 || pageSize < 1 {
		return nil, budgetErrors.NewValidationError("invalid pagination parameters")
	}

	pessoas, pageCount, totalCount, err := s.repo.GetPessoasAndCount(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	if pessoas == nil {
		pessoas = []domain.Pessoa{}
	}

	return &PessoasListResponse{
		MaxPage:    maxPage(totalCount, pageSize),
		TotalCount: totalCount,
		PageCount:  pageCount,
		Items:      pessoas,
	}, nil
}

// DeletePessoa removes the person and every transaction referencing them.
// Both deletes run inside one unit of work so a failure mid-sequence can
// never leave orphaned transactions behind.
func (s *PessoaService) DeletePessoa(ctx context.Context, id int) (int, error) {
	if id <= 0 {
		return 0, budgetErrors.NewValidationError("pessoa id must be greater than zero")
	}

	pessoa, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if pessoa == nil {
		slog.Warn("Pessoa not found for deletion", "id", id)
		return 0, budgetErrors.NewNotFoundError("pessoa", id)
	}

	tx, err := s.transacaoRepo.Begin(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.transacaoRepo.DeleteAllForPessoa(ctx, tx, id); err != nil {
		s.transacaoRepo.Rollback(tx)
		return 0, err
	}
	if err := s.repo.Delete(ctx, tx, id); err != nil {
		s.transacaoRepo.Rollback(tx)
		return 0, err
	}
	if err := s.transacaoRepo.Commit(tx); err != nil {
		s.transacaoRepo.Rollback(tx)
		return 0, err
	}

	slog.Info("Pessoa deleted with transaction cascade", "id", id)
	return id, nil
}
