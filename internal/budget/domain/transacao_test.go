package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateTransacaoRequestValidate(t *testing.T) {
	valid := CreateTransacaoRequest{
		Descricao:   "Weekly groceries",
		Valor:       "150.75",
		Tipo:        "Expense",
		CategoriaID: 1,
		PessoaID:    1,
	}

	valor, messages := valid.Validate()
	assert.Empty(t, messages)
	assert.Equal(t, Valor(15075), valor)

	tests := []struct {
		name   string
		mutate func(*CreateTransacaoRequest)
		want   string
	}{
		{"missing descricao", func(r *CreateTransacaoRequest) { r.Descricao = " " }, "Descricao is required"},
		{"short descricao", func(r *CreateTransacaoRequest) { r.Descricao = "ab" }, "between 3 and 200"},
		{"zero valor", func(r *CreateTransacaoRequest) { r.Valor = "0" }, "greater than zero"},
		{"three decimals", func(r *CreateTransacaoRequest) { r.Valor = "1.999" }, "at most 2 decimal places"},
		{"negative valor", func(r *CreateTransacaoRequest) { r.Valor = "-1" }, "at most 2 decimal places"},
		{"bad tipo", func(r *CreateTransacaoRequest) { r.Tipo = "Transfer" }, "Tipo must be"},
		{"zero categoria", func(r *CreateTransacaoRequest) { r.CategoriaID = 0 }, "CategoriaId must be"},
		{"zero pessoa", func(r *CreateTransacaoRequest) { r.PessoaID = 0 }, "PessoaId must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, messages := req.Validate()
			assert.Len(t, messages, 1)
			assert.Contains(t, messages[0], tt.want)
		})
	}
}

func TestCreateTransacaoRequestValidateCollectsAll(t *testing.T) {
	req := CreateTransacaoRequest{Descricao: "", Valor: "x", Tipo: "y"}
	_, messages := req.Validate()
	assert.Len(t, messages, 5)
}

func TestTipoTransacaoValid(t *testing.T) {
	assert.True(t, TipoExpense.Valid())
	assert.True(t, TipoIncome.Valid())
	assert.False(t, TipoTransacao("expense").Valid())
	assert.False(t, TipoTransacao("Both").Valid())
	assert.False(t, TipoTransacao("1").Valid())
}

func TestPessoaMenor(t *testing.T) {
	assert.True(t, Pessoa{Idade: 0}.Menor())
	assert.True(t, Pessoa{Idade: 17}.Menor())
	assert.False(t, Pessoa{Idade: 18}.Menor())
	assert.False(t, Pessoa{Idade: 65}.Menor())
}

func TestFinalidadePermits(t *testing.T) {
	assert.True(t, FinalidadeExpense.Permits(TipoExpense))
	assert.False(t, FinalidadeExpense.Permits(TipoIncome))
	assert.True(t, FinalidadeIncome.Permits(TipoIncome))
	assert.False(t, FinalidadeIncome.Permits(TipoExpense))
	assert.True(t, FinalidadeBoth.Permits(TipoExpense))
	assert.True(t, FinalidadeBoth.Permits(TipoIncome))
}
