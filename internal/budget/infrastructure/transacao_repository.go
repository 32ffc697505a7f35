package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/sebuszqo/HouseholdBudget/internal/budget/domain"
)

type TransacaoRepository struct {
	db *sql.DB
}

func NewTransacaoRepository(db *sql.DB) *TransacaoRepository {
	return &TransacaoRepository{db: db}
}

func (r *TransacaoRepository) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return tx, nil
}

func (r *TransacaoRepository) Commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *TransacaoRepository) Rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("Error during transaction rollback", "error", err)
	}
}

// Create stages a new transaction inside the given unit of work and
// backfills the server-assigned id. The row is not visible until Commit.
func (r *TransacaoRepository) Create(ctx context.Context, tx *sql.Tx, transacao *domain.Transacao) error {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO transacoes (descricao, valor_centavos, tipo, data, categoria_id, pessoa_id)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id`,
		transacao.Descricao, int64(transacao.Valor), string(transacao.Tipo),
		transacao.Data, transacao.CategoriaID, transacao.PessoaID,
	).Scan(&transacao.ID)
	if err != nil {
		return fmt.Errorf("insert transacao: %w", err)
	}
	return nil
}

// DeleteByID removes a transaction; deleting an absent id is a no-op.
func (r *TransacaoRepository) DeleteByID(ctx context.Context, tx *sql.Tx, id int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM transacoes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete transacao %d: %w", id, err)
	}
	return nil
}

// DeleteAllForPessoa removes every transaction owned by the person inside
// the given unit of work, so the cascade commits together with the person
// delete.
func (r *TransacaoRepository) DeleteAllForPessoa(ctx context.Context, tx *sql.Tx, pessoaID int) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM transacoes WHERE pessoa_id = $1`, pessoaID); err != nil {
		return fmt.Errorf("delete transacoes for pessoa %d: %w", pessoaID, err)
	}
	return nil
}

// GetTransacoesAndCount fetches one page of transactions plus the total
// count matching the filters. The two reads are independent and run
// concurrently over pooled connections. An unrecognized tipo value is
// treated as no filter at this layer; the HTTP boundary rejects it earlier.
func (r *TransacaoRepository) GetTransacoesAndCount(ctx context.Context, page, pageSize int, pessoaID *int, tipo string) ([]domain.TransacaoComNomes, int, int, error) {
	where, args := transacaoFilters(pessoaID, tipo)

	var (
		transacoes []domain.TransacaoComNomes
		totalCount int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transacoes, err = r.getTransacoes(gctx, page, pageSize, where, args)
		return err
	})
	g.Go(func() error {
		row := r.db.QueryRowContext(gctx, `SELECT COUNT(*) FROM transacoes t`+where, args...)
		if err := row.Scan(&totalCount); err != nil {
			return fmt.Errorf("count transacoes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, 0, err
	}

	return transacoes, len(transacoes), totalCount, nil
}

func (r *TransacaoRepository) getTransacoes(ctx context.Context, page, pageSize int, where string, args []interface{}) ([]domain.TransacaoComNomes, error) {
	query := `SELECT t.id, t.descricao, t.valor_centavos, t.tipo, t.data, t.categoria_id, t.pessoa_id,
                     p.nome, c.descricao
              FROM transacoes t
              JOIN pessoas p ON p.id = t.pessoa_id
              JOIN categorias c ON c.id = t.categoria_id` + where +
		` ORDER BY t.data DESC, t.id DESC
              LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transacoes: %w", err)
	}
	defer rows.Close()

	var transacoes []domain.TransacaoComNomes
	for rows.Next() {
		var (
			t             domain.TransacaoComNomes
			valorCentavos int64
			tipo          string
		)
		if err := rows.Scan(&t.ID, &t.Descricao, &valorCentavos, &tipo, &t.Data,
			&t.CategoriaID, &t.PessoaID, &t.PessoaNome, &t.CategoriaDescricao); err != nil {
			return nil, fmt.Errorf("scan transacao: %w", err)
		}
		t.Valor = domain.Valor(valorCentavos)
		t.Tipo = domain.TipoTransacao(tipo)
		transacoes = append(transacoes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transacoes: %w", err)
	}
	return transacoes, nil
}

func transacaoFilters(pessoaID *int, tipo string) (string, []interface{}) {
	where := ""
	var args []interface{}

	appendCondition := func(condition string) {
		if where == "" {
			where = " WHERE " + condition
		} else {
			where += " AND " + condition
		}
	}

	if pessoaID != nil {
		args = append(args, *pessoaID)
		appendCondition("t.pessoa_id = $" + strconv.Itoa(len(args)))
	}
	if domain.TipoTransacao(tipo).Valid() {
		args = append(args, tipo)
		appendCondition("t.tipo = $" + strconv.Itoa(len(args)))
	}

	return where, args
}
