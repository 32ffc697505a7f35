package domain

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// TipoTransacao is the direction of money flow represented by a transaction.
// The canonical wire representation is the string form; integer-coded enums
// from older clients are not accepted.
type TipoTransacao string

const (
	TipoExpense TipoTransacao = "Expense"
	TipoIncome  TipoTransacao = "Income"
)

func (t TipoTransacao) Valid() bool {
	return t == TipoExpense || t == TipoIncome
}

type Transacao struct {
	ID          int           `json:"Id"`
	Descricao   string        `json:"Descricao"`
	Valor       Valor         `json:"Valor"`
	Tipo        TipoTransacao `json:"Tipo"`
	Data        time.Time     `json:"Data"`
	CategoriaID int           `json:"CategoriaId"`
	PessoaID    int           `json:"PessoaId"`
}

// TransacaoComNomes is the read projection of a transaction with the person
// name and category description resolved at read time.
type TransacaoComNomes struct {
	Transacao
	PessoaNome         string `json:"PessoaNome"`
	CategoriaDescricao string `json:"CategoriaDescricao"`
}

// CreateTransacaoRequest carries the wire fields of a transaction creation
// request before any validation has happened.
type CreateTransacaoRequest struct {
	Descricao   string     `json:"Descricao"`
	Valor       ValorInput `json:"Valor"`
	Tipo        string     `json:"Tipo"`
	CategoriaID int        `json:"CategoriaId"`
	PessoaID    int        `json:"PessoaId"`
}

// Validate runs the structural stage of the creation rule chain. It collects
// every violated field rather than stopping at the first, and returns the
// parsed amount when the amount field is well formed.
func (r CreateTransacaoRequest) Validate() (Valor, []string) {
	var messages []string

	descricao := strings.TrimSpace(r.Descricao)
	if descricao == "" {
		messages = append(messages, "Descricao is required")
	} else if len(r.Descricao) < 3 || len(r.Descricao) > 200 {
		messages = append(messages, "Descricao must be between 3 and 200 characters")
	}

	valor, err := ParseValor(string(r.Valor))
	if err != nil {
		messages = append(messages, "Valor must be a positive decimal with at most 2 decimal places")
	} else if !valor.Positive() {
		messages = append(messages, "Valor must be greater than zero")
	}

	if !TipoTransacao(r.Tipo).Valid() {
		messages = append(messages, "Tipo must be 'Expense' or 'Income'")
	}

	if r.CategoriaID <= 0 {
		messages = append(messages, "CategoriaId must be greater than zero")
	}
	if r.PessoaID <= 0 {
		messages = append(messages, "PessoaId must be greater than zero")
	}

	return valor, messages
}

// TransacaoRepository is the staged-write and query surface over the
// transaction store. Mutations are staged inside the unit of work returned
// by Begin and become visible only after Commit.
type TransacaoRepository interface {
	Begin(ctx context.Context) (*sql.Tx, error)
	Commit(tx *sql.Tx) error
	Rollback(tx *sql.Tx)
	Create(ctx context.Context, tx *sql.Tx, transacao *Transacao) error
	DeleteByID(ctx context.Context, tx *sql.Tx, id int) error
	DeleteAllForPessoa(ctx context.Context, tx *sql.Tx, pessoaID int) error
	GetTransacoesAndCount(ctx context.Context, page, pageSize int, pessoaID *int, tipo string) ([]TransacaoComNomes, int, int, error)
}
