package domain

import (
	"context"
	"strings"
)

// FinalidadeCategoria declares which transaction types a category may be
// used with.
type FinalidadeCategoria string

const (
	FinalidadeExpense FinalidadeCategoria = "Expense"
	FinalidadeIncome  FinalidadeCategoria = "Income"
	FinalidadeBoth    FinalidadeCategoria = "Both"
)

func (f FinalidadeCategoria) Valid() bool {
	return f == FinalidadeExpense || f == FinalidadeIncome || f == FinalidadeBoth
}

// Permits reports whether a transaction of the given type may reference a
// category with this purpose.
func (f FinalidadeCategoria) Permits(tipo TipoTransacao) bool {
	switch f {
	case FinalidadeExpense:
		return tipo == TipoExpense
	case FinalidadeIncome:
		return tipo == TipoIncome
	case FinalidadeBoth:
		return true
	default:
		return false
	}
}

type Categoria struct {
	ID         int                 `json:"Id"`
	Descricao  string              `json:"Descricao"`
	Finalidade FinalidadeCategoria `json:"Finalidade"`
}

type CreateCategoriaRequest struct {
	Descricao  string `json:"Descricao"`
	Finalidade string `json:"Finalidade"`
}

func (r CreateCategoriaRequest) Validate() []string {
	var messages []string

	descricao := strings.TrimSpace(r.Descricao)
	if descricao == "" {
		messages = append(messages, "Descricao is required")
	} else if len(descricao) < 3 || len(descricao) > 50 {
		messages = append(messages, "Descricao must be between 3 and 50 characters")
	}

	if !FinalidadeCategoria(r.Finalidade).Valid() {
		messages = append(messages, "Finalidade must be 'Expense', 'Income' or 'Both'")
	}

	return messages
}

type CategoriaRepository interface {
	Create(ctx context.Context, categoria *Categoria) error
	GetByID(ctx context.Context, id int) (*Categoria, error)
	GetAll(ctx context.Context) ([]Categoria, error)
	ExistsByDescricao(ctx context.Context, descricao string) (bool, error)
}
