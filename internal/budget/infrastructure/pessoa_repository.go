package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
)

type PessoaRepository struct {
	db *sql.DB
}

func NewPessoaRepository(db *sql.DB) *PessoaRepository {
	return &PessoaRepository{db: db}
}

func (r *PessoaRepository) Create(ctx context.Context, pessoa *domain.Pessoa) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO pessoas (nome, idade)
         VALUES ($1, $2)
         RETURNING id, created_at, updated_at`,
		pessoa.Nome, pessoa.Idade,
	).Scan(&pessoa.ID, &pessoa.CreatedAt, &pessoa.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert pessoa: %w", err)
	}
	return nil
}

// GetByID returns nil without error when the person does not exist.
func (r *PessoaRepository) GetByID(ctx context.Context, id int) (*domain.Pessoa, error) {
	var pessoa domain.Pessoa
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nome, idade, created_at, updated_at FROM pessoas WHERE id = $1`, id,
	).Scan(&pessoa.ID, &pessoa.Nome, &pessoa.Idade, &pessoa.CreatedAt, &pessoa.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query pessoa %d: %w", id, err)
	}
	return &pessoa, nil
}

func (r *PessoaRepository) GetPessoasAndCount(ctx context.Context, page, pageSize int) ([]domain.Pessoa, int, int, error) {
	var totalCount int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pessoas`).Scan(&totalCount); err != nil {
		return nil, 0, 0, fmt.Errorf("count pessoas: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, nome, idade, created_at, updated_at
         FROM pessoas
         ORDER BY id
         LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("query pessoas: %w", err)
	}
	defer rows.Close()

	var pessoas []domain.Pessoa
	for rows.Next() {
		var pessoa domain.Pessoa
		if err := rows.Scan(&pessoa.ID, &pessoa.Nome, &pessoa.Idade, &pessoa.CreatedAt, &pessoa.UpdatedAt); err != nil {
			return nil, 0, 0, fmt.Errorf("scan pessoa: %w", err)
		}
		pessoas = append(pessoas, pessoa)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("iterate pessoas: %w", err)
	}

	return pessoas, len(pessoas), totalCount, nil
}

// Delete removes the person inside the caller's unit of work so it commits
// together with the transaction cascade.
func (r *PessoaRepository) Delete(ctx context.Context, tx *sql.Tx, id int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM pessoas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete pessoa %d: %w", id, err)
	}
	return nil
}
