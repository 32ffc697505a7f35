package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
	budgetErrors "github.com/sebuszqo/HouseholdBudget/internal/budget/errors"
)

type CategoriaService struct {
	repo domain.CategoriaRepository
}

func NewCategoriaService(repo domain.CategoriaRepository) *CategoriaService {
	return &CategoriaService{repo: repo}
}

// CreateCategoria validates the request and enforces case-insensitive
// uniqueness of the description. Categories are append-only; there are no
// update or delete operations.
func (s *CategoriaService) CreateCategoria(ctx context.Context, req domain.CreateCategoriaRequest) (*domain.Categoria, error) {
	slog.Info("Validating categoria creation request", "descricao", req.Descricao, "finalidade", req.Finalidade)

	if messages := req.Validate(); len(messages) > 0 {
		return nil, budgetErrors.NewValidationError(messages...)
	}

	descricao := strings.TrimSpace(req.Descricao)

	exists, err := s.repo.ExistsByDescricao(ctx, descricao)
	if err != nil {
		return nil, err
	}
	if exists {
		slog.Warn("Duplicate categoria descricao", "descricao", descricao)
		return nil, budgetErrors.NewValidationError("a categoria with this Descricao already exists")
	}

	categoria := domain.Categoria{
		Descricao:  descricao,
		Finalidade: domain.FinalidadeCategoria(req.Finalidade),
	}
	if err := s.repo.Create(ctx, &categoria); err != nil {
		return nil, err
	}

	slog.Info("Categoria created", "id", categoria.ID)
	return &categoria, nil
}

func (s *CategoriaService) GetCategorias(ctx context.Context) ([]domain.Categoria, error) {
	categorias, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if categorias == nil {
		categorias = []domain.Categoria{}
	}
	return categorias, nil
}
