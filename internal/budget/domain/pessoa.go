package domain

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

const maioridade = 18

type Pessoa struct {
	ID        int       `json:"Id"`
	Nome      string    `json:"Nome"`
	Idade     int       `json:"Idade"`
	CreatedAt time.Time `json:"CreatedAt"`
	UpdatedAt time.Time `json:"UpdatedAt"`
}

// Menor reports whether the person is under the age of majority, in which
// case only expense transactions may be recorded for them.
func (p Pessoa) Menor() bool {
	return p.Idade < maioridade
}

type CreatePessoaRequest struct {
	Nome  string `json:"Nome"`
	Idade int    `json:"Idade"`
}

func (r CreatePessoaRequest) Validate() []string {
	var messages []string

	if strings.TrimSpace(r.Nome) == "" {
		messages = append(messages, "Nome is required")
	} else if len(r.Nome) > 100 {
		messages = append(messages, "Nome must not exceed 100 characters")
	}

	if r.Idade < 0 || r.Idade > 150 {
		messages = append(messages, "Idade must be between 0 and 150")
	}

	return messages
}

type PessoaRepository interface {
	Create(ctx context.Context, pessoa *Pessoa) error
	GetByID(ctx context.Context, id int) (*Pessoa, error)
	GetPessoasAndCount(ctx context.Context, page, pageSize int) ([]Pessoa, int, int, error)
	Delete(ctx context.Context, tx *sql.Tx, id int) error
}
