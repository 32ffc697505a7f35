package domain

import "context"

// PessoaTotal is one row of the per-person report. Saldo is always
// TotalReceitas minus TotalDespesas.
type PessoaTotal struct {
	PessoaID      int    `json:"PessoaId"`
	Nome          string `json:"Nome"`
	Idade         int    `json:"Idade"`
	TotalReceitas Valor  `json:"TotalReceitas"`
	TotalDespesas Valor  `json:"TotalDespesas"`
	Saldo         Valor  `json:"Saldo"`
}

// CategoriaTotal is one row of the per-category report.
type CategoriaTotal struct {
	CategoriaID   int                 `json:"CategoriaId"`
	Descricao     string              `json:"Descricao"`
	Finalidade    FinalidadeCategoria `json:"Finalidade"`
	TotalReceitas Valor               `json:"TotalReceitas"`
	TotalDespesas Valor               `json:"TotalDespesas"`
	Saldo         Valor               `json:"Saldo"`
}

// TotalGeral sums all transactions directly, independent of the per-entity
// breakdowns.
type TotalGeral struct {
	TotalReceitas Valor `json:"TotalReceitas"`
	TotalDespesas Valor `json:"TotalDespesas"`
	SaldoLiquido  Valor `json:"SaldoLiquido"`
}

// RelatorioRepository computes read-only rollups over the full transaction
// set. Nothing is materialized; every call recomputes from the store.
type RelatorioRepository interface {
	TotaisPorPessoa(ctx context.Context) ([]PessoaTotal, error)
	TotaisPorCategoria(ctx context.Context) ([]CategoriaTotal, error)
	TotaisGerais(ctx context.Context) (TotalGeral, error)
}
