package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
)

type CategoriaRepository struct {
	db *sql.DB
}

func NewCategoriaRepository(db *sql.DB) *CategoriaRepository {
	return &CategoriaRepository{db: db}
}

func (r *CategoriaRepository) Create(ctx context.Context, categoria *domain.Categoria) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO categorias (descricao, finalidade)
         VALUES ($1, $2)
         RETURNING id`,
		categoria.Descricao, string(categoria.Finalidade),
	).Scan(&categoria.ID)
	if err != nil {
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID returns nil without error when the category does not exist.
func (r *CategoriaRepository) GetByID(ctx context.Context, id int) (*domain.Categoria, error) {
	var categoria domain.Categoria
	err := r.db.QueryRowContext(ctx,
		`SELECT id, descricao, finalidade FROM categorias WHERE id = $1`, id,
	).Scan(&categoria.ID, &categoria.Descricao, &categoria.Finalidade)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query categoria %d: %w", id, err)
	}
	return &categoria, nil
}

func (r *CategoriaRepository) GetAll(ctx context.Context) ([]domain.Categoria, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, descricao, finalidade FROM categorias ORDER BY descricao`)
	if err != nil {
		return nil, fmt.Errorf("query categorias: %w", err)
	}
	defer rows.Close()

	var categorias []domain.Categoria
	for rows.Next() {
		var categoria domain.Categoria
		if err := rows.Scan(&categoria.ID, &categoria.Descricao, &categoria.Finalidade); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		categorias = append(categorias, categoria)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categorias: %w", err)
	}
	return categorias, nil
}

// ExistsByDescricao matches case-insensitively; category descriptions are
// unique regardless of casing.
func (r *CategoriaRepository) ExistsByDescricao(ctx context.Context, descricao string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categorias WHERE LOWER(descricao) = LOWER($1))`, descricao,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check categoria descricao: %w", err)
	}
	return exists, nil
}
