package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
)

// RelatorioRepository rolls transactions up into per-entity totals with
// LEFT JOIN queries, so entities without transactions still appear with
// zero totals. Sums run on the centavos column and never touch floats.
type RelatorioRepository struct {
	db *sql.DB
}

func NewRelatorioRepository(db *sql.DB) *RelatorioRepository {
	return &RelatorioRepository{db: db}
}

func (r *RelatorioRepository) TotaisPorPessoa(ctx context.Context) ([]domain.PessoaTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.nome, p.idade,
                COALESCE(SUM(CASE WHEN t.tipo = 'Income' THEN t.valor_centavos ELSE 0 END), 0) AS receitas,
                COALESCE(SUM(CASE WHEN t.tipo = 'Expense' THEN t.valor_centavos ELSE 0 END), 0) AS despesas
         FROM pessoas p
         LEFT JOIN transacoes t ON t.pessoa_id = p.id
         GROUP BY p.id, p.nome, p.idade
         ORDER BY receitas - despesas DESC, p.nome ASC`)
	if err != nil {
		return nil, fmt.Errorf("query totais por pessoa: %w", err)
	}
	defer rows.Close()

	var totais []domain.PessoaTotal
	for rows.Next() {
		var (
			total              domain.PessoaTotal
			receitas, despesas int64
		)
		if err := rows.Scan(&total.PessoaID, &total.Nome, &total.Idade, &receitas, &despesas); err != nil {
			return nil, fmt.Errorf("scan pessoa total: %w", err)
		}
		total.TotalReceitas = domain.Valor(receitas)
		total.TotalDespesas = domain.Valor(despesas)
		total.Saldo = total.TotalReceitas - total.TotalDespesas
		totais = append(totais, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pessoa totais: %w", err)
	}
	return totais, nil
}

func (r *RelatorioRepository) TotaisPorCategoria(ctx context.Context) ([]domain.CategoriaTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.descricao, c.finalidade,
                COALESCE(SUM(CASE WHEN t.tipo = 'Income' THEN t.valor_centavos ELSE 0 END), 0) AS receitas,
                COALESCE(SUM(CASE WHEN t.tipo = 'Expense' THEN t.valor_centavos ELSE 0 END), 0) AS despesas
         FROM categorias c
         LEFT JOIN transacoes t ON t.categoria_id = c.id
         GROUP BY c.id, c.descricao, c.finalidade
         ORDER BY receitas + despesas DESC, c.descricao ASC`)
	if err != nil {
		return nil, fmt.Errorf("query totais por categoria: %w", err)
	}
	defer rows.Close()

	var totais []domain.CategoriaTotal
	for rows.Next() {
		var (
			total              domain.CategoriaTotal
			receitas, despesas int64
		)
		if err := rows.Scan(&total.CategoriaID, &total.Descricao, &total.Finalidade, &receitas, &despesas); err != nil {
			return nil, fmt.Errorf("scan categoria total: %w", err)
		}
		total.TotalReceitas = domain.Valor(receitas)
		total.TotalDespesas = domain.Valor(despesas)
		total.Saldo = total.TotalReceitas - total.TotalDespesas
		totais = append(totais, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categoria totais: %w", err)
	}
	return totais, nil
}

// TotaisGerais sums straight over the transaction table, independent of the
// per-entity breakdowns, so a grouping bug can never skew the grand total.
func (r *RelatorioRepository) TotaisGerais(ctx context.Context) (domain.TotalGeral, error) {
	var receitas, despesas int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(CASE WHEN tipo = 'Income' THEN valor_centavos ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN tipo = 'Expense' THEN valor_centavos ELSE 0 END), 0)
         FROM transacoes`).Scan(&receitas, &despesas)
	if err != nil {
		return domain.TotalGeral{}, fmt.Errorf("query totais gerais: %w", err)
	}

	total := domain.TotalGeral{
		TotalReceitas: domain.Valor(receitas),
		TotalDespesas: domain.Valor(despesas),
	}
	total.SaldoLiquido = total.TotalReceitas - total.TotalDespesas
	return total, nil
}
